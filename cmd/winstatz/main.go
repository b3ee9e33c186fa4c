package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/winstatz/internal/config"
	"github.com/Dicklesworthstone/winstatz/internal/logger"
	"github.com/Dicklesworthstone/winstatz/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "winstatz:", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "winstatz",
		Short: "Live CPU, memory, disk, network and battery monitor",
		Long: `winstatz samples host counters and shows per-interval rates:
per-core CPU percent, memory in MB, disk MB/s, network Mb/s and battery
time left. Run without a subcommand for the live terminal view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}
			// The terminal belongs to the UI; logs go to a file or nowhere.
			log, err := logger.ForTUI(cfg.LogLevel, cfg.LogFile)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer logger.Sync(log)
			return ui.RunTUI(cmd.Context(), cfg, log)
		},
	}
	config.AddFlags(root)
	root.AddCommand(newUsageCmd(), newSpecsCmd(), newServeCmd())
	return root
}
