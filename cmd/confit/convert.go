package main

import (
	"fmt"

	"github.com/Azhovan/confit"
	"github.com/spf13/cobra"
)

func newConvertCmd(flags *rootFlags) *cobra.Command {
	var to string

	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Rewrite a configuration file in another format",
		Long: `Load <in>, with its includes merged, and save it to <out> in the format
named by --to. Lists and maps written as ini become quoted strings.

Examples:
  confit convert app.conf app.yaml --to yaml
  confit convert app.toml app.json --to json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := confit.ParseFormat(to)
			if format == confit.FormatUnknown {
				return fmt.Errorf("%w: %q", confit.ErrUnsupportedFormat, to)
			}

			store, err := flags.load(cmd, args[0])
			if err != nil {
				return err
			}

			if err := store.SetFormat(format).SaveToFile(args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", args[1], format)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "target format: ini, toml, yaml, json")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
