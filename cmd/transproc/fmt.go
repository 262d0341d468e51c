package main

import (
	"github.com/spf13/cobra"

	"github.com/zoobzio/transproc"
)

func newFmtCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt FILE",
		Short: "Re-encode a pipeline document",
		Long: `Decode a pipeline document and write it back in the configured output
format. Bare names are expanded to [name, []] pairs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.settings()
			if err != nil {
				return err
			}
			format, err := cfg.Format()
			if err != nil {
				return err
			}

			ast, err := opts.readAST(cmd, args[0])
			if err != nil {
				return err
			}

			data, err := transproc.EncodeAST(ast, format, transproc.WithIndent(cfg.Indent))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(data); err != nil {
				return err
			}
			if format == transproc.FormatJSON {
				_, err = out.Write([]byte("\n"))
			}
			return err
		},
	}
}
