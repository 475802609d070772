// Package main provides the fieldlog CLI, the display collaborator of the
// storage engine: it collects input, confirms destructive operations, and
// formats output. All persisted state goes through internal/sqlite.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
