package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verte-zerg/flowkeys/internal/config"
	"github.com/verte-zerg/flowkeys/internal/replay"
	"github.com/verte-zerg/flowkeys/internal/stats"
)

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay FILE",
		Short: "Run a keystroke script and print the report",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplayCmd,
	}
}

func runReplayCmd(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv()
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	script, err := replay.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}
	logger.Debug("replaying script",
		zap.String("path", args[0]),
		zap.Int("words", len(script.Words)),
		zap.Int("steps", len(script.Steps)),
	)

	res := replay.Run(script)
	logger.Info("replay finished",
		zap.Bool("finished", res.Finished),
		zap.Int("wpm", res.Stats.WPM),
		zap.Int("accuracy", res.Stats.Accuracy),
	)

	out := cmd.OutOrStdout()
	if !res.Finished {
		if _, err := fmt.Fprintln(out, "session still running; live stats:"); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	if err := stats.RenderReport(out, res.Stats); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
