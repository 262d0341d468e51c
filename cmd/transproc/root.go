package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoobzio/transproc"
	"github.com/zoobzio/transproc/internal/config"
)

// options are the global flags shared by every command.
type options struct {
	configPath string
	output     string
	from       string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "transproc",
		Short: "Work with serialized transformation pipelines",
		Long: `transproc reads pipeline ASTs written as JSON, YAML or msgpack.

Every document is a list of nodes. A node is either a bare name or a
[name, [args...]] pair, for example:

  - symbolize_keys
  - [rename_keys, [{user_name: name}]]

Settings come from a YAML file (--config, or transproc.yaml in the
working directory when present) and TRANSPROC_* environment variables;
flags win over both.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a YAML config file (default "+config.DefaultPath+" if present)")
	flags.StringVarP(&opts.output, "output", "o", "", "output format: json, yaml or msgpack")
	flags.StringVar(&opts.from, "from", "", "input format, inferred from the file extension when empty")

	rootCmd.AddCommand(newFmtCmd(opts))
	rootCmd.AddCommand(newInspectCmd(opts))
	rootCmd.AddCommand(newValidateCmd(opts))
	return rootCmd
}

// settings resolves the effective config: file, then environment, then
// flags. A file named with --config must exist; the default one may not.
func (o *options) settings() (config.Config, error) {
	path := o.configPath
	opts := []config.Option{config.WithOutput(o.output)}
	if path == "" {
		path = config.DefaultPath
	} else {
		opts = append(opts, config.RequireFile())
	}
	return config.Load(path, opts...)
}

// readAST reads and decodes the document at path. A path of "-" reads
// standard input and requires --from.
func (o *options) readAST(cmd *cobra.Command, path string) (transproc.AST, error) {
	format, err := o.inputFormat(path)
	if err != nil {
		return nil, err
	}

	var data []byte
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	ast, err := transproc.DecodeAST(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ast, nil
}

func (o *options) inputFormat(path string) (transproc.Format, error) {
	if o.from != "" {
		return transproc.ParseFormat(o.from)
	}
	if path == "-" {
		return "", fmt.Errorf("%w: --from is required when reading standard input", transproc.ErrUnsupportedFormat)
	}
	return transproc.FormatFromPath(path)
}
