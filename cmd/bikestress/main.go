package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfg *Config

var rootCmd = &cobra.Command{
	Use:   "bikestress",
	Short: "Bicycle route stress scoring and routing",
	Long:  "Scores street segments for low-stress cycling (speed, lanes, separation, street class) and routes over the scored network.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := Load()
		if err != nil {
			return errors.Wrap(err, "load config")
		}
		cfg = c

		if err := InitLogger(cfg.Log); err != nil {
			return errors.Wrap(err, "init logger")
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(configCmd, scoreCmd, routeCmd, batchCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
