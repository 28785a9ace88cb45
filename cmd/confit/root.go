package main

import (
	"log/slog"

	"github.com/Azhovan/confit"
	"github.com/Azhovan/confit/sourceenv"
	"github.com/Azhovan/confit/sourcefile"
	"github.com/spf13/cobra"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	appName   string
	envPrefix string
	overlays  []string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "confit",
		Short: "Inspect, convert and validate configuration files",
		Long: `confit reads configuration in ini, TOML, YAML or JSON form.

The format of a file is chosen by a "#!config/<format>" first line and
defaults to ini. Files may include other files, in any format, with an
"include" key holding a path or glob pattern.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.appName, "app", "confit", "application name")
	root.PersistentFlags().StringVar(&flags.envPrefix, "env-prefix", "", "overlay environment variables with this prefix (PREFIX_SECTION__KEY)")
	root.PersistentFlags().StringSliceVar(&flags.overlays, "overlay", nil, "merge this file over the loaded one, skipped if missing (repeatable)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log file loads and include resolution to stderr")

	root.AddCommand(
		newGetCmd(flags),
		newDumpCmd(flags),
		newConvertCmd(flags),
		newValidateCmd(flags),
		newWatchCmd(flags),
		newPathsCmd(flags),
	)
	return root
}

func (f *rootFlags) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// loader builds a Loader for path with the file overlays, then the
// environment overlay, if any.
func (f *rootFlags) loader(cmd *cobra.Command, path string) *confit.Loader {
	loader := confit.NewLoader(f.appName, path, confit.WithLogger(f.logger(cmd)))
	for _, overlay := range f.overlays {
		loader.WithSource(sourcefile.New(overlay, sourcefile.Options{}))
	}
	if f.envPrefix != "" {
		loader.WithSource(sourceenv.New(sourceenv.Options{Prefix: f.envPrefix}))
	}
	return loader
}

func (f *rootFlags) load(cmd *cobra.Command, path string) (*confit.Store, error) {
	return f.loader(cmd, path).Load(cmd.Context())
}
