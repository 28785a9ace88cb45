package main

import (
	"github.com/Azhovan/confit"
	"github.com/spf13/cobra"
)

func newDumpCmd(flags *rootFlags) *cobra.Command {
	var (
		asJSON  bool
		sources bool
		redact  []string
	)

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print every value",
		Long: `Print every value as "section.key: value", sorted, or as JSON.

Examples:
  confit dump app.conf --sources
  confit dump app.conf --json --redact database.password`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := flags.load(cmd, args[0])
			if err != nil {
				return err
			}

			opts := []confit.DumpOption{confit.WithRedacted(redact...)}
			if asJSON {
				opts = append(opts, confit.AsJSON())
			}
			if sources {
				opts = append(opts, confit.WithSources())
			}
			return confit.Dump(cmd.OutOrStdout(), store, opts...)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON")
	cmd.Flags().BoolVar(&sources, "sources", false, "show where each value came from")
	cmd.Flags().StringSliceVar(&redact, "redact", nil, "hide the value of section.key (repeatable)")
	return cmd
}
