package transproc

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the wire encoding of an AST document.
type Format string

// Supported formats.
const (
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// ParseFormat returns the Format named by s. Matching is case-insensitive
// and accepts "yml" for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath infers the Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

type encodeConfig struct {
	indent int
}

// EncodeOption configures EncodeAST and Encode.
type EncodeOption func(*encodeConfig)

// WithIndent indents JSON and YAML output by n spaces per level.
// It has no effect on msgpack.
func WithIndent(n int) EncodeOption {
	return func(c *encodeConfig) {
		c.indent = n
	}
}

// Encode serializes the AST of t. A single Function is encoded as a
// one-node document, so every document has the same shape.
func Encode(t Transform, format Format, opts ...EncodeOption) ([]byte, error) {
	return EncodeAST(t.Nodes(), format, opts...)
}

// EncodeAST serializes ast as a list of [identifier, args] pairs.
// Named identifiers are written as strings and opaque identifiers as
// {"ref": "<uuid>"}.
func EncodeAST(ast AST, format Format, opts ...EncodeOption) ([]byte, error) {
	if len(ast) == 0 {
		return nil, ErrEmptyAST
	}

	var cfg encodeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	doc := make([]any, len(ast))
	for i, node := range ast {
		doc[i] = node.wire()
	}

	switch format {
	case FormatJSON:
		if cfg.indent > 0 {
			return json.MarshalIndent(doc, "", strings.Repeat(" ", cfg.indent))
		}
		return json.Marshal(doc)
	case FormatYAML:
		if cfg.indent > 0 {
			return yaml.MarshalWithOptions(doc, yaml.Indent(cfg.indent))
		}
		return yaml.Marshal(doc)
	case FormatMsgpack:
		return msgpack.Marshal(doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// DecodeAST parses an AST document. Every node in the document must be a
// registered name: either "name", [name] or [name, [args...]]. Opaque
// identifiers cannot be decoded because their callables only exist in the
// process that created them.
//
// The document is checked against the AST schema before it is converted,
// so structural problems are reported as ErrInvalidAST with the schema
// violations attached.
func DecodeAST(data []byte, format Format) (AST, error) {
	var doc any
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAST, err)
	}
	return documentToAST(doc)
}

func documentToAST(doc any) (AST, error) {
	items, ok := doc.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: document must be a list of nodes", ErrInvalidAST)
	}
	if len(items) == 0 {
		return nil, ErrEmptyAST
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}

	ast := make(AST, 0, len(items))
	for i, item := range items {
		node, err := documentToNode(item)
		if err != nil {
			return nil, &BuildError{Index: i, Err: err}
		}
		ast = append(ast, node)
	}
	return ast, nil
}

func documentToNode(item any) (Node, error) {
	switch v := item.(type) {
	case string:
		return Node{Identifier: NamedIdentifier(v), Args: []any{}}, nil
	case []any:
		if len(v) == 0 || len(v) > 2 {
			return Node{}, fmt.Errorf("%w: node must have an identifier and optional args", ErrInvalidAST)
		}
		var identifier Identifier
		switch id := v[0].(type) {
		case string:
			identifier = NamedIdentifier(id)
		case map[string]any:
			return Node{}, ErrOpaqueIdentifier
		default:
			return Node{}, fmt.Errorf("%w: identifier must be a string, got %T", ErrInvalidAST, id)
		}
		args := []any{}
		if len(v) == 2 {
			list, ok := v[1].([]any)
			if !ok {
				return Node{}, fmt.Errorf("%w: args must be a list, got %T", ErrInvalidAST, v[1])
			}
			args = list
		}
		return Node{Identifier: identifier, Args: args}, nil
	default:
		return Node{}, fmt.Errorf("%w: unexpected node %T", ErrInvalidAST, item)
	}
}
