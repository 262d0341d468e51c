package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check pipeline documents against the AST schema",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				ast, err := opts.readAST(cmd, path)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "invalid: %v\n", err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %s (%d nodes)\n", path, ast.Len())
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d documents failed validation", failed, len(args))
			}
			return nil
		},
	}
}
