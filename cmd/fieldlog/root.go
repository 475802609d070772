// Root command for the fieldlog CLI.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/electroterrain/fieldlog/internal/paths"
	"github.com/electroterrain/fieldlog/internal/sqlite"
	"github.com/electroterrain/fieldlog/pkg/fieldlog"
	"github.com/electroterrain/fieldlog/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
	flagVerbose   bool
)

// configDataDir holds the data_dir value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configDataDir string

// store is the process-wide engine handle, opened once per invocation.
var store *sqlite.Store

var rootCmd = &cobra.Command{
	Use:   "fieldlog",
	Short: "Fieldlog is a local-first field-maintenance logbook",
	Long: "Fieldlog keeps an equipment hierarchy, intervention records, checklists\n" +
		"and personal reference tables (bearings, fault codes) in a local store,\n" +
		"fully usable offline.",
	Version: fieldlog.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		configDataDir = cfg.GetString(cfgKeyDataDir)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(nodeCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(checklistCmd)
	rootCmd.AddCommand(bearingCmd)
	rootCmd.AddCommand(faultCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// newLogger builds the CLI logger: console output on stderr, debug level
// only with --verbose.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()
}

// openStore resolves the data directory and opens the engine. The caller
// must defer closeStore.
func openStore() (*sqlite.Store, error) {
	dataDir, err := paths.ResolveDataDir(flagDataDir, configDataDir)
	if err != nil {
		return nil, err
	}
	s := sqlite.New()
	s.SetLogger(newLogger())
	if err := s.Open(types.Config{DataDir: dataDir}); err != nil {
		return nil, err
	}
	store = s
	return s, nil
}

// closeStore closes the process-wide handle.
func closeStore() {
	if store != nil {
		store.Close()
		store = nil
	}
}
