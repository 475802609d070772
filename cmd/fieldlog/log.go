// Log commands: intervention records.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/electroterrain/fieldlog/pkg/types"
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record and browse interventions",
}

var (
	flagLogDuration float64
	flagLogCategory string
	flagLogSymptom  string
	flagLogAction   string
	flagLogCause    string
	flagLogParts    string
	flagLogStatus   string
	flagLogTags     []string
	flagLogLimit    int
)

var logAddCmd = &cobra.Command{
	Use:   "add <node-id>",
	Short: "Record an intervention on a node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		iv, err := s.AddIntervention(types.Intervention{
			NodeID:      args[0],
			DurationMin: flagLogDuration,
			Category:    flagLogCategory,
			Symptom:     flagLogSymptom,
			Action:      flagLogAction,
			Cause:       flagLogCause,
			Parts:       flagLogParts,
			Status:      flagLogStatus,
			Tags:        flagLogTags,
		})
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(iv)
		}
		fmt.Printf("%s  %s/%s  %s\n", iv.ID, iv.Category, iv.Status, iv.Symptom)
		return nil
	},
}

var logLsCmd = &cobra.Command{
	Use:   "ls <node-id>",
	Short: "List a node's interventions, most recent first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		ivs, err := s.InterventionsForNode(args[0])
		if err != nil {
			return err
		}
		return printInterventions(ivs)
	},
}

var logRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recent interventions across all nodes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer closeStore()

		ivs, err := s.RecentInterventions(flagLogLimit)
		if err != nil {
			return err
		}
		return printInterventions(ivs)
	},
}

func printInterventions(ivs []*types.Intervention) error {
	if flagJSON {
		return printJSON(ivs)
	}
	for _, iv := range ivs {
		fmt.Printf("%s  %s  %-11s %-16s %s\n",
			iv.ID, formatWhen(iv.CreatedAt), iv.Category, iv.Status, iv.Symptom)
	}
	return nil
}

func init() {
	logAddCmd.Flags().Float64Var(&flagLogDuration, "duration", 0, "duration in minutes")
	logAddCmd.Flags().StringVar(&flagLogCategory, "category", types.CategoryFault, "fault, preventive or improvement")
	logAddCmd.Flags().StringVar(&flagLogSymptom, "symptom", "", "observed symptom")
	logAddCmd.Flags().StringVar(&flagLogAction, "action", "", "action taken")
	logAddCmd.Flags().StringVar(&flagLogCause, "cause", "", "root cause")
	logAddCmd.Flags().StringVar(&flagLogParts, "parts", "", "parts used")
	logAddCmd.Flags().StringVar(&flagLogStatus, "status", types.StatusOK, "ok, watch or waiting-for-part")
	logAddCmd.Flags().StringSliceVar(&flagLogTags, "tag", nil, "tags (repeatable)")
	logRecentCmd.Flags().IntVarP(&flagLogLimit, "limit", "n", 30, "maximum entries")

	logCmd.AddCommand(logAddCmd)
	logCmd.AddCommand(logLsCmd)
	logCmd.AddCommand(logRecentCmd)
}
