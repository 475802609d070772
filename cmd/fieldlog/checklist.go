// Checklist commands: templates and node-bound instances.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/electroterrain/fieldlog/pkg/types"
)

var checklistCmd = &cobra.Command{
	Use:     "checklist",
	Aliases: []string{"cl"},
	Short:   "Manage checklists and templates",
}

var checklistTemplatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List global checklist templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		cls, err := s.GlobalTemplates()
		if err != nil {
			return err
		}
		return printChecklists(cls)
	},
}

var flagChecklistItems []string

var checklistSetCmd = &cobra.Command{
	Use:   "set <node-id> <title>",
	Short: "Create a checklist on a node from --item texts",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		c, err := s.SetChecklistForNode(args[0], args[1], flagChecklistItems)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(c)
		}
		fmt.Printf("%s  %s (%d items)\n", c.ID, c.Title, len(c.Items))
		return nil
	},
}

var checklistCloneCmd = &cobra.Command{
	Use:   "clone <template-id> <node-id>",
	Short: "Instantiate a template onto a node, all items unchecked",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		c, err := s.CloneTemplate(args[0], args[1])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(c)
		}
		fmt.Printf("%s  %s (%d items)\n", c.ID, c.Title, len(c.Items))
		return nil
	},
}

var checklistLsCmd = &cobra.Command{
	Use:   "ls <node-id>",
	Short: "List a node's checklists with item state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		cls, err := s.ChecklistsForNode(args[0])
		if err != nil {
			return err
		}
		return printChecklists(cls)
	},
}

var checklistToggleCmd = &cobra.Command{
	Use:   "toggle <checklist-id> <item-id>",
	Short: "Flip one item's checked state",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		c, err := s.ToggleChecklistItem(args[0], args[1])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(c)
		}
		printChecklistItems(c)
		return nil
	},
}

var checklistResetCmd = &cobra.Command{
	Use:   "reset <checklist-id>",
	Short: "Uncheck every item of a checklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		c, err := s.ResetChecklist(args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(c)
		}
		printChecklistItems(c)
		return nil
	},
}

var checklistRmCmd = &cobra.Command{
	Use:   "rm <checklist-id>",
	Short: "Delete a checklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := s.DeleteChecklist(args[0]); err != nil {
			return err
		}
		fmt.Println("Removed")
		return nil
	},
}

func printChecklists(cls []*types.Checklist) error {
	if flagJSON {
		return printJSON(cls)
	}
	for _, c := range cls {
		checked := 0
		for _, item := range c.Items {
			if item.Checked {
				checked++
			}
		}
		fmt.Printf("%s  %s  %d/%d\n", c.ID, c.Title, checked, len(c.Items))
	}
	return nil
}

func printChecklistItems(c *types.Checklist) {
	fmt.Printf("%s  %s\n", c.ID, c.Title)
	for _, item := range c.Items {
		mark := " "
		if item.Checked {
			mark = "x"
		}
		fmt.Printf("  [%s] %s  %s\n", mark, item.ID, item.Text)
	}
}

func init() {
	checklistSetCmd.Flags().StringArrayVar(&flagChecklistItems, "item", nil, "item text (repeatable)")

	checklistCmd.AddCommand(checklistTemplatesCmd)
	checklistCmd.AddCommand(checklistSetCmd)
	checklistCmd.AddCommand(checklistCloneCmd)
	checklistCmd.AddCommand(checklistLsCmd)
	checklistCmd.AddCommand(checklistToggleCmd)
	checklistCmd.AddCommand(checklistResetCmd)
	checklistCmd.AddCommand(checklistRmCmd)
}
