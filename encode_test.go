package transproc

import (
	"errors"
	"strings"
	"testing"
)

func userPipeline() Composite {
	return Named("symbolize_keys", toString).
		Then(Named("rename_keys", toString, map[string]any{"user_name": "name"})).
		Then(Named("nest", toString, "details", []any{"name"}))
}

func TestFormat(t *testing.T) {
	t.Run("ParseFormat", func(t *testing.T) {
		tests := map[string]Format{
			"json":    FormatJSON,
			"JSON":    FormatJSON,
			"yaml":    FormatYAML,
			"yml":     FormatYAML,
			"msgpack": FormatMsgpack,
			" mpk ":   FormatMsgpack,
		}
		for in, want := range tests {
			got, err := ParseFormat(in)
			if err != nil {
				t.Errorf("ParseFormat(%q): unexpected error %v", in, err)
			}
			if got != want {
				t.Errorf("ParseFormat(%q) = %q, want %q", in, got, want)
			}
		}

		if _, err := ParseFormat("toml"); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("FormatFromPath", func(t *testing.T) {
		if f, err := FormatFromPath("pipelines/user.yml"); err != nil || f != FormatYAML {
			t.Errorf("expected yaml, got %q (%v)", f, err)
		}
		if f, err := FormatFromPath("user.json"); err != nil || f != FormatJSON {
			t.Errorf("expected json, got %q (%v)", f, err)
		}
		if _, err := FormatFromPath("user"); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})
}

func TestEncode(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		pipeline := Named("symbolize_keys", toString).
			Then(Named("rename_keys", toString, map[string]any{"user_name": "name"}))

		data, err := Encode(pipeline, FormatJSON)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := `[["symbolize_keys",[]],["rename_keys",[{"user_name":"name"}]]]`
		if string(data) != want {
			t.Errorf("expected %s, got %s", want, data)
		}
	})

	t.Run("Single Function Is One Node Document", func(t *testing.T) {
		data, err := Encode(Named("symbolize_keys", toString), FormatJSON)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `[["symbolize_keys",[]]]` {
			t.Errorf("unexpected %s", data)
		}
	})

	t.Run("JSON Indent", func(t *testing.T) {
		data, err := Encode(Named("symbolize_keys", toString), FormatJSON, WithIndent(2))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(data), "\n  [") {
			t.Errorf("expected indented output, got %s", data)
		}
	})

	t.Run("Empty AST", func(t *testing.T) {
		if _, err := EncodeAST(nil, FormatJSON); !errors.Is(err, ErrEmptyAST) {
			t.Errorf("expected ErrEmptyAST, got %v", err)
		}
	})

	t.Run("Unsupported Format", func(t *testing.T) {
		if _, err := Encode(userPipeline(), Format("toml")); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})

	t.Run("Unencodable Args", func(t *testing.T) {
		withFunc := Named("bad", toString, func() {})
		if _, err := Encode(withFunc, FormatJSON); err == nil {
			t.Error("expected an error for a func argument")
		}
	})
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML, FormatMsgpack} {
		t.Run(string(format), func(t *testing.T) {
			original := userPipeline().ToAST()

			data, err := EncodeAST(original, format, WithIndent(2))
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			decoded, err := DecodeAST(data, format)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			if !decoded.Equal(original) {
				t.Errorf("round trip changed the AST:\n got  %#v\n want %#v", decoded, original)
			}
		})
	}
}

func TestDecodeAST(t *testing.T) {
	t.Run("YAML Shorthand", func(t *testing.T) {
		doc := `
- symbolize_keys
- [rename_keys, [{user_name: name}]]
- [nest, [details, [name]]]
`
		ast, err := DecodeAST([]byte(doc), FormatYAML)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := AST{
			{Identifier: NamedIdentifier("symbolize_keys")},
			{Identifier: NamedIdentifier("rename_keys"), Args: []any{map[string]any{"user_name": "name"}}},
			{Identifier: NamedIdentifier("nest"), Args: []any{"details", []any{"name"}}},
		}
		if !ast.Equal(want) {
			t.Errorf("expected %#v, got %#v", want, ast)
		}
	})

	t.Run("JSON Name Only Node", func(t *testing.T) {
		ast, err := DecodeAST([]byte(`[["to_string"], ["add", [1]]]`), FormatJSON)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ast.Len() != 2 || len(ast[0].Args) != 0 {
			t.Fatalf("unexpected %#v", ast)
		}
		if ast[1].Args[0] != float64(1) {
			t.Errorf("expected float64(1), got %#v", ast[1].Args[0])
		}
	})

	t.Run("Errors", func(t *testing.T) {
		tests := []struct {
			name string
			doc  string
			want error
		}{
			{"malformed", `[`, ErrInvalidAST},
			{"not a list", `{"a": 1}`, ErrInvalidAST},
			{"empty", `[]`, ErrEmptyAST},
			{"numeric identifier", `[[1, []]]`, ErrInvalidAST},
			{"too many elements", `[["a", [], "extra"]]`, ErrInvalidAST},
			{"args not a list", `[["a", "b"]]`, ErrInvalidAST},
			{"empty name", `[""]`, ErrInvalidAST},
			{"opaque", `[[{"ref": "6ba7b810-9dad-11d1-80b4-00c04fd430c8"}, [2]]]`, ErrOpaqueIdentifier},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := DecodeAST([]byte(tt.doc), FormatJSON)
				if !errors.Is(err, tt.want) {
					t.Errorf("expected %v, got %v", tt.want, err)
				}
			})
		}
	})

	t.Run("Opaque Reports Index", func(t *testing.T) {
		doc := `["a", [{"ref": "6ba7b810-9dad-11d1-80b4-00c04fd430c8"}]]`
		_, err := DecodeAST([]byte(doc), FormatJSON)

		var buildErr *BuildError
		if !errors.As(err, &buildErr) {
			t.Fatalf("expected *BuildError, got %v", err)
		}
		if buildErr.Index != 1 {
			t.Errorf("expected index 1, got %d", buildErr.Index)
		}
	})

	t.Run("Encoded Opaque Cannot Be Decoded", func(t *testing.T) {
		data, err := Encode(New(multiply, 2), FormatJSON)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := DecodeAST(data, FormatJSON); !errors.Is(err, ErrOpaqueIdentifier) {
			t.Errorf("expected ErrOpaqueIdentifier, got %v", err)
		}
	})

	t.Run("Unsupported Format", func(t *testing.T) {
		if _, err := DecodeAST([]byte(`[]`), Format("xml")); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("expected ErrUnsupportedFormat, got %v", err)
		}
	})
}
