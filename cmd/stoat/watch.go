package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/stoat/pkg/loader"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-check notes as they change",
	Long: `Watch checks every note below dir once, then re-checks each note file
that is created or written until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		l, err := newLoader(dirArg(args), loader.WithErrorHandler(func(err error) {
			slog.Error("watch error", "error", err)
		}))
		if err != nil {
			return err
		}

		c := newChecker(cmd.OutOrStdout())
		paths, err := l.List()
		if err != nil {
			return err
		}
		for _, path := range paths {
			if src, err := l.Load(path); err != nil {
				c.fail(path, err)
			} else {
				c.check(src)
			}
		}

		sources, err := l.Watch(ctx)
		if err != nil {
			return err
		}
		slog.Info("watching for changes", "root", l.Root(), "pattern", l.Pattern())

		for src := range sources {
			c.check(src)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
