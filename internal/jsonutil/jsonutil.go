// Package jsonutil wraps github.com/go-json-experiment/json behind the
// familiar encoding/json surface used across this module.
package jsonutil

import (
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Unmarshal parses the JSON-encoded data and stores the result in v
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Marshal returns the JSON encoding of v
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent returns the indented JSON encoding of v
func MarshalIndent(v any, indent string) ([]byte, error) {
	return json.Marshal(v, jsontext.WithIndent(indent))
}

// MarshalWrite writes the JSON encoding of v to w followed by a newline
func MarshalWrite(w io.Writer, v any) error {
	if err := json.MarshalWrite(w, v); err != nil {
		return err
	}
	_, err := w.Write([]byte{'\n'})
	return err
}

// Valid reports whether data is a valid JSON encoding
func Valid(data []byte) bool {
	return jsontext.Value(data).IsValid()
}
