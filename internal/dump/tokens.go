// Package dump renders scanner output in machine-readable formats for
// tooling built around the interpreter.
package dump

import (
	"encoding/json"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/boksimamba3/lox/internal/lox"
)

// Current schema version - increment when TokenRecord format changes
const tokenSchemaVersion uint16 = 1

// TokenRecord mirrors one scanned token with the source position narrowed to
// a fixed-width field so encoded streams stay stable across platforms.
type TokenRecord struct {
	Kind    string      `json:"kind" msgpack:"kind"`
	Lexeme  string      `json:"lexeme,omitempty" msgpack:"lexeme,omitempty"`
	Literal interface{} `json:"literal,omitempty" msgpack:"literal,omitempty"`
	Line    uint32      `json:"line" msgpack:"line"`
}

// TokenStream wraps the records with a schema tag for binary consumers.
type TokenStream struct {
	Schema uint16        `json:"schema" msgpack:"schema"`
	Tokens []TokenRecord `json:"tokens" msgpack:"tokens"`
}

func newTokenStream(tokens []*lox.Token) (*TokenStream, error) {
	records := make([]TokenRecord, 0, len(tokens))
	for _, tok := range tokens {
		line, err := safecast.Conv[uint32](tok.Line)
		if err != nil {
			return nil, fmt.Errorf("token on line %d: %w", tok.Line, err)
		}
		records = append(records, TokenRecord{
			Kind:    tok.Typ.String(),
			Lexeme:  tok.Lexeme,
			Literal: tok.Literal,
			Line:    line,
		})
	}
	return &TokenStream{Schema: tokenSchemaVersion, Tokens: records}, nil
}

// TokensPretty writes one token per line in a human-readable layout.
func TokensPretty(w io.Writer, tokens []*lox.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-13s", i, tok.Typ); err != nil {
			return err
		}
		if tok.Lexeme != "" {
			if _, err := fmt.Fprintf(w, " %q", tok.Lexeme); err != nil {
				return err
			}
		}
		if tok.Literal != nil {
			if _, err := fmt.Fprintf(w, " (%v)", tok.Literal); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, " at line %d\n", tok.Line); err != nil {
			return err
		}
	}
	return nil
}

// TokensJSON writes the token stream as indented JSON.
func TokensJSON(w io.Writer, tokens []*lox.Token) error {
	stream, err := newTokenStream(tokens)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(stream)
}

// TokensMsgpack writes the token stream in msgpack for compact interchange.
func TokensMsgpack(w io.Writer, tokens []*lox.Token) error {
	stream, err := newTokenStream(tokens)
	if err != nil {
		return err
	}
	enc := msgpack.NewEncoder(w)
	enc.SetCustomStructTag("msgpack")
	return enc.Encode(stream)
}

// ReadTokensMsgpack decodes a stream written by TokensMsgpack. A schema
// mismatch is an error, not a silent misread.
func ReadTokensMsgpack(r io.Reader) (*TokenStream, error) {
	dec := msgpack.NewDecoder(r)
	dec.SetCustomStructTag("msgpack")
	var stream TokenStream
	if err := dec.Decode(&stream); err != nil {
		return nil, err
	}
	if stream.Schema != tokenSchemaVersion {
		return nil, fmt.Errorf("unsupported token stream schema %d", stream.Schema)
	}
	return &stream, nil
}
