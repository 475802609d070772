// Init command: open (creating or upgrading) the store and write the
// first-run seed data.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the store and write first-run seed data",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := s.EnsureSeed(); err != nil {
			return fmt.Errorf("seeding: %w", err)
		}
		fmt.Println("Store initialized")
		return nil
	},
}
