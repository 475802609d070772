// Fault-code reference table commands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/electroterrain/fieldlog/pkg/types"
)

var faultCmd = &cobra.Command{
	Use:   "fault",
	Short: "Browse and edit the fault-code reference table",
}

var (
	flagFaultVendor  string
	flagFaultProduct string
	flagFaultCode    string
	flagFaultTitle   string
	flagFaultCauses  string
	flagFaultActions string
	flagFaultNotes   string
)

var faultLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List fault codes sorted by vendor, product and code",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		faults, err := s.Faults()
		if err != nil {
			return err
		}
		return printFaults(faults)
	},
}

var faultSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search fault codes, optionally filtered by vendor and product",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		faults, err := s.SearchFaults(query, flagFaultVendor, flagFaultProduct)
		if err != nil {
			return err
		}
		return printFaults(faults)
	},
}

var faultAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a fault code (--vendor, --product and --code are required)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		f, err := s.AddFault(types.Fault{
			Vendor:  flagFaultVendor,
			Product: flagFaultProduct,
			Code:    flagFaultCode,
			Title:   flagFaultTitle,
			Causes:  flagFaultCauses,
			Actions: flagFaultActions,
			Notes:   flagFaultNotes,
		})
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(f)
		}
		fmt.Printf("%s  %s %s %s\n", f.ID, f.Vendor, f.Product, f.Code)
		return nil
	},
}

var faultSetCmd = &cobra.Command{
	Use:   "set <fault-id>",
	Short: "Update a fault code's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		var patch types.FaultPatch
		set := func(name string, dst **string, v *string) {
			if cmd.Flags().Changed(name) {
				*dst = v
			}
		}
		set("vendor", &patch.Vendor, &flagFaultVendor)
		set("product", &patch.Product, &flagFaultProduct)
		set("code", &patch.Code, &flagFaultCode)
		set("title", &patch.Title, &flagFaultTitle)
		set("causes", &patch.Causes, &flagFaultCauses)
		set("actions", &patch.Actions, &flagFaultActions)
		set("notes", &patch.Notes, &flagFaultNotes)

		f, err := s.UpdateFault(args[0], patch)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(f)
		}
		fmt.Printf("%s  %s %s %s\n", f.ID, f.Vendor, f.Product, f.Code)
		return nil
	},
}

var faultRmCmd = &cobra.Command{
	Use:   "rm <fault-id>",
	Short: "Remove a fault code",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := s.DeleteFault(args[0]); err != nil {
			return err
		}
		fmt.Println("Removed")
		return nil
	},
}

func printFaults(faults []*types.Fault) error {
	if flagJSON {
		return printJSON(faults)
	}
	for _, f := range faults {
		fmt.Printf("%s  %-10s %-16s %-8s %s\n",
			f.ID, f.Vendor, f.Product, f.Code, f.Title)
	}
	return nil
}

func addFaultFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagFaultVendor, "vendor", "", "vendor name")
	cmd.Flags().StringVar(&flagFaultProduct, "product", "", "product or drive family")
	cmd.Flags().StringVar(&flagFaultCode, "code", "", "fault code")
	cmd.Flags().StringVar(&flagFaultTitle, "title", "", "short description")
	cmd.Flags().StringVar(&flagFaultCauses, "causes", "", "likely causes")
	cmd.Flags().StringVar(&flagFaultActions, "actions", "", "recommended actions")
	cmd.Flags().StringVar(&flagFaultNotes, "notes", "", "free-form notes")
}

func init() {
	addFaultFieldFlags(faultAddCmd)
	addFaultFieldFlags(faultSetCmd)
	faultSearchCmd.Flags().StringVar(&flagFaultVendor, "vendor", "", "exact vendor filter")
	faultSearchCmd.Flags().StringVar(&flagFaultProduct, "product", "", "exact product filter")

	faultCmd.AddCommand(faultLsCmd)
	faultCmd.AddCommand(faultSearchCmd)
	faultCmd.AddCommand(faultAddCmd)
	faultCmd.AddCommand(faultSetCmd)
	faultCmd.AddCommand(faultRmCmd)
}
