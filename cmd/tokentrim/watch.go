package main

import (
	"github.com/spf13/cobra"

	"github.com/abemedia/tokentrim/internal/logger"
	"github.com/abemedia/tokentrim/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [flags] <input-dir> <output-dir>",
		Short: "Mirror a tree once, then keep it trimmed as files change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.runner(args[0], args[1])
			if err != nil {
				return err
			}

			stats, err := r.Run(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.writeSummary(cmd, stats); err != nil {
				return err
			}

			w, err := watch.New(r, nil)
			if err != nil {
				return err
			}
			defer w.Close()

			logger.Info("watching for changes", "input", r.Input())
			return w.Run(cmd.Context())
		},
	}
}
