package main

import (
	"errors"
	"fmt"

	"github.com/Azhovan/confit"
	"github.com/Azhovan/confit/sourcefile"
	"github.com/spf13/cobra"
)

func newPathsCmd(flags *rootFlags) *cobra.Command {
	var opts sourcefile.Options

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "List the default locations of the configuration file",
		Long: `List where <app>.conf is looked for, most system-wide first, and which
location is used. The application name comes from --app.

Examples:
  confit paths --app myapp
  confit paths --app myapp --root /srv/chroot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range sourcefile.SearchPaths(flags.appName, opts) {
				fmt.Fprintln(out, path)
			}

			found, err := sourcefile.Find(flags.appName, opts)
			if errors.Is(err, confit.ErrNotFound) {
				fmt.Fprintln(out, "no configuration file found")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "using %s\n", found)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Root, "root", "", "prefix for the system locations")
	cmd.Flags().StringVar(&opts.HomeDir, "home", "", "home directory (default: current user's)")
	cmd.Flags().StringVar(&opts.ExecDir, "exec-dir", "", "executable directory (default: this binary's)")
	return cmd
}
