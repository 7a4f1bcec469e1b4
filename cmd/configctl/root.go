package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-layered-config/internal/config"
	"github.com/MKhiriev/go-layered-config/internal/logger"
)

// cli carries the state shared by all subcommands.
type cli struct {
	opts     config.Options
	logLevel string
	log      *logger.Logger
}

func newRootCommand(version, date, commit string) *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "configctl",
		Short: "Resolve layered configuration and named resource instances",
		Long: `configctl resolves configuration from files (YAML, TOML or JSON) and
environment variables ({PREFIX}_{SECTION}_{FIELD}), discovers named resource
instances declared as {PREFIX}_{FAMILY}_INSTANCES_{INDEX}_* variables and
merges them with the instances declared in files.`,
		Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(cmd.ErrOrStderr(), "configctl").WithLevel(c.logLevel)
			if err != nil {
				return err
			}
			c.log = log
			c.opts.Logger = log
			return nil
		},
	}

	config.BindFlags(rootCmd.PersistentFlags(), &c.opts)
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newShowCommand(c))
	rootCmd.AddCommand(newCheckCommand(c))

	return rootCmd
}
