package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-layered-config/internal/clients"
	"github.com/MKhiriev/go-layered-config/internal/config"
)

var errChecksFailed = errors.New("resource checks failed")

func newCheckCommand(c *cli, checkerOpts ...clients.CheckerOption) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve the configuration and health-check every resource",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Resolve(c.opts)
			if err != nil {
				return err
			}

			opts := append([]clients.CheckerOption{clients.WithTimeout(timeout)}, checkerOpts...)
			results := clients.NewChecker(c.log, opts...).Check(cmd.Context(), cfg)

			failed := 0
			for _, r := range results {
				fmt.Fprintln(cmd.OutOrStdout(), r)
				if !r.OK() {
					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errChecksFailed, failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", clients.DefaultCheckTimeout, "Timeout of each resource probe")

	return cmd
}
