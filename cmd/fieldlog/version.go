// Version command.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/electroterrain/fieldlog/pkg/fieldlog"
)

const modulePath = "github.com/electroterrain/fieldlog"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fieldlog version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "fieldlog v%s\nmodule: %s\n", fieldlog.Version, modulePath)
		return nil
	},
}
