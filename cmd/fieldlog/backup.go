// Export and import commands.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/electroterrain/fieldlog/pkg/types"
)

var flagImportYes bool

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write settings, nodes, interventions and checklists to a JSON file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		backup, err := s.ExportAll()
		if err != nil {
			return err
		}
		path := fmt.Sprintf("fieldlog-%s.json", time.Now().Format("20060102-150405"))
		if len(args) > 0 {
			path = args[0]
		}
		data, err := json.MarshalIndent(backup, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding backup: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing backup file: %w", err)
		}
		fmt.Printf("Exported %d nodes, %d interventions, %d checklists to %s\n",
			len(backup.Nodes), len(backup.Interventions), len(backup.Checklists), path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all logbook data with the contents of a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading backup file: %w", err)
		}
		var backup types.Backup
		if err := json.Unmarshal(data, &backup); err != nil {
			return fmt.Errorf("decoding backup: %w", err)
		}

		if !confirm("Importing replaces all current logbook data. Continue?", flagImportYes) {
			fmt.Println("Aborted")
			return nil
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := s.ImportAll(&backup); err != nil {
			return err
		}
		fmt.Printf("Imported %d nodes, %d interventions, %d checklists\n",
			len(backup.Nodes), len(backup.Interventions), len(backup.Checklists))
		return nil
	},
}

func init() {
	importCmd.Flags().BoolVarP(&flagImportYes, "yes", "y", false, "skip the confirmation prompt")
}
