package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zoobzio/transproc"
)

func newInspectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the nodes of a pipeline document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ast, err := opts.readAST(cmd, args[0])
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tTRANSFORM\tARGS")
			var walkErr error
			ast.Walk(func(i int, node transproc.Node) {
				if walkErr != nil {
					return
				}
				args, err := json.Marshal(nodeArgs(node))
				if err != nil {
					walkErr = fmt.Errorf("node %d: %w", i, err)
					return
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", i, node.Identifier, args)
			})
			if walkErr != nil {
				return walkErr
			}
			return w.Flush()
		},
	}
}

func nodeArgs(node transproc.Node) []any {
	if node.Args == nil {
		return []any{}
	}
	return node.Args
}
