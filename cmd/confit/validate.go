package main

import (
	"fmt"

	"github.com/Azhovan/confit"
	"github.com/Azhovan/confit/internal/normalize"
	"github.com/Azhovan/confit/schema"
	"github.com/spf13/cobra"
)

func newValidateCmd(flags *rootFlags) *cobra.Command {
	var (
		require  []string
		sections []string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that required sections and keys are present",
		Long: `Load <file> and check it against a schema built from the flags. Every
failure is reported, not just the first.

Examples:
  confit validate app.conf --require server.port --require database.url
  confit validate app.conf --section server --strict`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := schema.New()
			for _, name := range sections {
				s.RequiredSection(name)
			}
			for _, path := range require {
				section, key := normalize.SplitKeyPath(path, confit.DefaultSection)
				s.RequiredSection(section).Field(section, key, schema.NewField(schema.TypeAny).Required())
			}
			if strict {
				s.AllowUnknownSections(false)
			}

			if _, err := flags.loader(cmd, args[0]).WithValidator(s).Load(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&require, "require", nil, "required section.key (repeatable)")
	cmd.Flags().StringSliceVar(&sections, "section", nil, "required section (repeatable)")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject sections not named by --section or --require")
	return cmd
}
