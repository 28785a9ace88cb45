package main

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Azhovan/confit"
	"github.com/spf13/cobra"
)

func newWatchCmd(flags *rootFlags) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Print the configuration every time it changes",
		Long: `Load <file> and print every value, then print them again whenever the
file or one of its includes changes. Reload errors are logged and the
previous configuration stays current. Stop with Ctrl-C.

Examples:
  confit watch app.conf
  confit watch app.conf --debounce 500ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			logger := flags.logger(cmd)
			snapshots, errs, err := flags.loader(cmd, args[0]).Debounce(debounce).Watch(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for snapshots != nil || errs != nil {
				select {
				case snap, ok := <-snapshots:
					if !ok {
						snapshots = nil
						continue
					}
					fmt.Fprintf(out, "# version %d (%s)\n", snap.Version, snap.Source)
					if err := confit.Dump(out, snap.Store); err != nil {
						return err
					}
				case err, ok := <-errs:
					if !ok {
						errs = nil
						continue
					}
					logger.Warn("configuration reload failed", "error", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", confit.DefaultDebounce, "quiet period before reloading")
	return cmd
}
