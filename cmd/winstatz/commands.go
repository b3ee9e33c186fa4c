package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Dicklesworthstone/winstatz/internal/config"
	"github.com/Dicklesworthstone/winstatz/internal/exporter"
	"github.com/Dicklesworthstone/winstatz/internal/inventory"
	"github.com/Dicklesworthstone/winstatz/internal/logger"
	"github.com/Dicklesworthstone/winstatz/internal/sampler"
)

// setup loads the config and a stderr logger for the non-interactive
// subcommands.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cmd)
	if err != nil {
		return cfg, nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return cfg, nil, fmt.Errorf("creating logger: %w", err)
	}
	return cfg, log, nil
}

func newUsageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "usage",
		Short: "Print one usage snapshot as JSON",
		Long: `Print one usage snapshot as JSON. With --json-stream, print one
snapshot per line every interval until interrupted. Groups that could not be
read are null.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync(log)

			s := sampler.New(cfg, log)
			out := cmd.OutOrStdout()
			if !cfg.JSONStream {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(s.Sample(cmd.Context()))
			}
			return streamJSON(out, s.Stream(cmd.Context()))
		},
	}
	cmd.Flags().Bool("json-stream", false, "print newline-delimited snapshots until interrupted")
	return cmd
}

func streamJSON[T any](w io.Writer, stream <-chan T) error {
	enc := json.NewEncoder(w)
	for v := range stream {
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("writing snapshot: %w", err)
		}
	}
	return nil
}

func newSpecsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "specs",
		Short: "Print the hardware inventory as JSON",
		Long: `Print CPU, GPU, memory module, disk drive, network adapter and
battery identity as JSON. Groups the platform cannot report are null.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync(log)

			inv := inventory.New(log).Read(cmd.Context())
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(inv)
		},
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Export samples as Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync(log)

			ctx := cmd.Context()
			s := sampler.New(cfg, log)
			return exporter.New(log).Run(ctx, cfg.Listen, s.Stream(ctx))
		},
	}
	cmd.Flags().String("listen", config.Default().Listen, "address for the /metrics endpoint")
	return cmd
}
