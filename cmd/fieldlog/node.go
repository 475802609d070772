// Node commands: the equipment hierarchy.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/electroterrain/fieldlog/pkg/types"
)

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Manage the equipment hierarchy",
}

var (
	flagNodeParent string
	flagNodeLevel  int
	flagNodeYes    bool
)

var nodeAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a node under a parent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		var parentID *string
		if flagNodeParent != "" {
			parentID = &flagNodeParent
		}
		n, err := s.CreateNode(parentID, flagNodeLevel, args[0], nil)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(n)
		}
		fmt.Printf("%s  %s (%s)\n", n.ID, n.Name, n.Type)
		return nil
	},
}

var nodeLsCmd = &cobra.Command{
	Use:   "ls [parent-id]",
	Short: "List children of a parent (roots when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		var parentID *string
		if len(args) == 1 {
			parentID = &args[0]
		}
		kids, err := s.ChildrenOf(parentID)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(kids)
		}
		for _, n := range kids {
			fmt.Printf("%s  %-12s %s\n", n.ID, n.Type, n.Name)
		}
		return nil
	},
}

var nodeRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a node",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		n, err := s.UpdateNode(args[0], types.NodePatch{Name: &args[1]})
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(n)
		}
		fmt.Printf("%s  %s\n", n.ID, n.Name)
		return nil
	},
}

var nodeRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a node, its descendants and their records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm("Delete the node, all descendants, and every linked record?", flagNodeYes) {
			fmt.Println("Aborted")
			return nil
		}
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		count, err := s.DeleteNodeCascade(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d node(s)\n", count)
		return nil
	},
}

func init() {
	nodeAddCmd.Flags().StringVar(&flagNodeParent, "parent", "", "parent node ID (empty for a root)")
	nodeAddCmd.Flags().IntVar(&flagNodeLevel, "level", 0, "0-based hierarchy level")
	nodeRmCmd.Flags().BoolVar(&flagNodeYes, "yes", false, "skip confirmation")

	nodeCmd.AddCommand(nodeAddCmd)
	nodeCmd.AddCommand(nodeLsCmd)
	nodeCmd.AddCommand(nodeRenameCmd)
	nodeCmd.AddCommand(nodeRmCmd)
}
