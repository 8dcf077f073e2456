package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wippyai/textcore/locale"
)

func getCmdLocales(gs *globalState) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the codesets a locale may name",
		Long: `List built-in and registered codesets. Other names are resolved through
the IANA and WHATWG encoding indexes on first use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := ""
			if loc, err := gs.resolveLocale(); err == nil {
				current = loc.Codec().Name()
			}
			for _, name := range locale.Codesets() {
				mark := "  "
				if name == current {
					mark = "* "
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), mark+name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
