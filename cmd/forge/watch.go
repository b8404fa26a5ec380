package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Load all global extensions and hot-reload them on change",
	Long: `Loads every extension under the global extensions directory and keeps
running, reloading directories as their files change. Useful while
developing an extension: edit the source, save, and watch it reload.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := m.Init(ctx); err != nil {
		return err
	}
	defer m.Dispose()

	stats := m.Stats()
	fmt.Printf("Watching %s (%d loaded, %d failed). Ctrl-C to stop.\n",
		cfg.GlobalExtensionsDir(), stats.Loaded, stats.LoadFailures)

	<-ctx.Done()
	logger.Info("shutting down", zap.Int("reloads", m.Stats().Reloads))
	return nil
}
