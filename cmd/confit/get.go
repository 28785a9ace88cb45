package main

import (
	"fmt"

	"github.com/Azhovan/confit"
	"github.com/Azhovan/confit/internal/normalize"
	"github.com/spf13/cobra"
)

func newGetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <file> <section.key>",
		Short: "Print one value",
		Long: `Print the value stored under section.key. A path without a dot names a
key in the default section. Text is printed without quotes.

Examples:
  confit get app.conf server.port
  confit get app.conf debug`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := flags.load(cmd, args[0])
			if err != nil {
				return err
			}

			section, key := normalize.SplitKeyPath(args[1], confit.DefaultSection)
			v, ok := store.Get(section, key)
			if !ok {
				return fmt.Errorf("%s: key not found", normalize.JoinKeyPath(section, key))
			}

			if s, ok := v.AsString(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), v.String())
			return nil
		},
	}
}
