package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <dir>",
		Short: "Check concept documents against the authoring schema",
		Long:  "validate loads <dir>/<collection>/**/*.{yaml,yml,json} and reports every schema violation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			checked, err := checkDirectory(cmd.Context(), args[0], cfg.Store.Collection)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			invalid := 0
			for _, c := range checked {
				if len(c.problems) == 0 {
					continue
				}
				invalid++
				fmt.Fprintf(out, "%s (%s):\n", c.doc.ID, c.path)
				for _, p := range c.problems {
					fmt.Fprintf(out, "  - %s\n", p)
				}
			}
			fmt.Fprintf(out, "%d documents checked, %d invalid\n", len(checked), invalid)

			if invalid > 0 {
				return fmt.Errorf("%d invalid documents", invalid)
			}
			return nil
		},
	}
}
