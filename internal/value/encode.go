package value

import (
	"bytes"
	"fmt"

	"github.com/go-json-experiment/json/jsontext"
)

// Indent is the indentation unit of serialized snapshots
const Indent = "    "

// Encode normalizes v and serializes it to the canonical snapshot form:
// 4-space indentation, keys in insertion order, non-ASCII characters
// preserved literally, and a single trailing newline.
func Encode(v any) ([]byte, error) {
	norm, err := Normalize(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf, jsontext.WithIndent(Indent))
	if err := writeTokens(enc, norm); err != nil {
		return nil, err
	}
	// last line of file convention: the streaming encoder already terminates
	// the top-level value with a single newline on flush
	return buf.Bytes(), nil
}

// writeTokens walks an already-normalized value and streams it through the
// token encoder. The token API is what preserves Map insertion order;
// a struct-based Marshal would not.
func writeTokens(enc *jsontext.Encoder, v any) error {
	switch val := v.(type) {
	case nil:
		return enc.WriteToken(jsontext.Null)
	case bool:
		return enc.WriteToken(jsontext.Bool(val))
	case string:
		return enc.WriteToken(jsontext.String(val))
	case float64:
		return enc.WriteToken(jsontext.Float(val))
	case int64:
		return enc.WriteToken(jsontext.Int(val))
	case uint64:
		return enc.WriteToken(jsontext.Uint(val))
	case []any:
		if err := enc.WriteToken(jsontext.ArrayStart); err != nil {
			return err
		}
		for _, elem := range val {
			if err := writeTokens(enc, elem); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.ArrayEnd)
	case *Map:
		if err := enc.WriteToken(jsontext.ObjectStart); err != nil {
			return err
		}
		for _, k := range val.keys {
			if err := enc.WriteToken(jsontext.String(k)); err != nil {
				return err
			}
			if err := writeTokens(enc, val.values[k]); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.ObjectEnd)
	default:
		// Normalize never emits anything else
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}
