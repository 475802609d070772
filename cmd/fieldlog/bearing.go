// Bearing reference table commands.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/electroterrain/fieldlog/pkg/types"
)

var bearingCmd = &cobra.Command{
	Use:   "bearing",
	Short: "Browse and edit the bearing reference table",
}

var (
	flagBearingD    float64
	flagBearingOD   float64
	flagBearingB    float64
	flagBearingType string
	flagBearingNote string
)

var bearingLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List bearings sorted by reference",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		bearings, err := s.Bearings()
		if err != nil {
			return err
		}
		return printBearings(bearings)
	},
}

var bearingSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search bearings by reference, type or dimensions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		bearings, err := s.SearchBearings(args[0])
		if err != nil {
			return err
		}
		return printBearings(bearings)
	},
}

var bearingAddCmd = &cobra.Command{
	Use:   "add <ref>",
	Short: "Add a bearing to the reference table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		data := types.Bearing{
			Ref:  args[0],
			Type: flagBearingType,
			Note: flagBearingNote,
		}
		if cmd.Flags().Changed("bore") {
			data.D = &flagBearingD
		}
		if cmd.Flags().Changed("outer") {
			data.OD = &flagBearingOD
		}
		if cmd.Flags().Changed("width") {
			data.B = &flagBearingB
		}
		b, err := s.AddBearing(data)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(b)
		}
		fmt.Printf("%s  %s\n", b.ID, b.Ref)
		return nil
	},
}

var flagBearingRef string

var bearingSetCmd = &cobra.Command{
	Use:   "set <bearing-id>",
	Short: "Update a bearing's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		var patch types.BearingPatch
		if cmd.Flags().Changed("ref") {
			patch.Ref = &flagBearingRef
		}
		if cmd.Flags().Changed("bore") {
			patch.D = &flagBearingD
		}
		if cmd.Flags().Changed("outer") {
			patch.OD = &flagBearingOD
		}
		if cmd.Flags().Changed("width") {
			patch.B = &flagBearingB
		}
		if cmd.Flags().Changed("type") {
			patch.Type = &flagBearingType
		}
		if cmd.Flags().Changed("note") {
			patch.Note = &flagBearingNote
		}
		b, err := s.UpdateBearing(args[0], patch)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(b)
		}
		fmt.Printf("%s  %s\n", b.ID, b.Ref)
		return nil
	},
}

var bearingRmCmd = &cobra.Command{
	Use:   "rm <bearing-id>",
	Short: "Remove a bearing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		if err := s.DeleteBearing(args[0]); err != nil {
			return err
		}
		fmt.Println("Removed")
		return nil
	},
}

func printBearings(bearings []*types.Bearing) error {
	if flagJSON {
		return printJSON(bearings)
	}
	for _, b := range bearings {
		fmt.Printf("%s  %-12s %-10s %s  %s\n",
			b.ID, b.Ref, b.Type, formatDims(b), b.Note)
	}
	return nil
}

// formatDims renders "d x OD x B" with "?" for unknown dimensions.
func formatDims(b *types.Bearing) string {
	dim := func(v *float64) string {
		if v == nil {
			return "?"
		}
		return fmt.Sprintf("%g", *v)
	}
	return fmt.Sprintf("%sx%sx%s", dim(b.D), dim(b.OD), dim(b.B))
}

func addBearingFieldFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&flagBearingD, "bore", 0, "bore diameter d in mm")
	cmd.Flags().Float64Var(&flagBearingOD, "outer", 0, "outer diameter D in mm")
	cmd.Flags().Float64Var(&flagBearingB, "width", 0, "width B in mm")
	cmd.Flags().StringVar(&flagBearingType, "type", "", "bearing type")
	cmd.Flags().StringVar(&flagBearingNote, "note", "", "free-form note")
}

func init() {
	addBearingFieldFlags(bearingAddCmd)
	addBearingFieldFlags(bearingSetCmd)
	bearingSetCmd.Flags().StringVar(&flagBearingRef, "ref", "", "catalog reference")

	bearingCmd.AddCommand(bearingLsCmd)
	bearingCmd.AddCommand(bearingSearchCmd)
	bearingCmd.AddCommand(bearingAddCmd)
	bearingCmd.AddCommand(bearingSetCmd)
	bearingCmd.AddCommand(bearingRmCmd)
}
