package value

import (
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ErrUnsupportedType is returned when a value falls outside the closed set
// of snapshot kinds. Unknown types are rejected instead of being passed
// through, so a snapshot can never silently capture an unstable rendering.
var ErrUnsupportedType = fmt.Errorf("unsupported snapshot value type")

// DateTimeLayout matches the rendering used for time.Time leaves
const DateTimeLayout = "2006-01-02 15:04:05.000000"

// Normalize recursively converts v into a JSON-ready equivalent:
//
//	decimal.Decimal      -> float64
//	time.Time            -> "YYYY-MM-DD HH:MM:SS.ffffff"
//	Date                 -> "YYYY-MM-DD"
//	[]byte               -> UTF-8 string
//	slices               -> []any with normalized elements
//	*Map                 -> *Map with normalized values, key order kept
//	map[string]any       -> *Map with keys sorted for determinism
//	primitives           -> unchanged (ints widened to int64)
//
// Normalization is idempotent: applying it to its own output returns an
// equal value.
func Normalize(v any) (any, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case bool, string, float64, int64, uint64:
		return val, nil
	case int:
		return int64(val), nil
	case int8:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case uint:
		return uint64(val), nil
	case uint8:
		return uint64(val), nil
	case uint16:
		return uint64(val), nil
	case uint32:
		return uint64(val), nil
	case float32:
		return float64(val), nil
	case decimal.Decimal:
		f, _ := val.Float64()
		return f, nil
	case time.Time:
		return val.Format(DateTimeLayout), nil
	case Date:
		return val.String(), nil
	case []byte:
		if !utf8.Valid(val) {
			return nil, fmt.Errorf("byte string is not valid UTF-8")
		}
		return string(val), nil
	case []any:
		return normalizeSlice(val)
	case *Map:
		return normalizeMap(val)
	case map[string]any:
		// Plain Go maps carry no insertion order; sort keys so the
		// serialized form is stable across runs.
		m := NewMap()
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			m.Set(k, val[k])
		}
		return normalizeMap(m)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}

func normalizeSlice(in []any) ([]any, error) {
	out := make([]any, len(in))
	for i, elem := range in {
		norm, err := Normalize(elem)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = norm
	}
	return out, nil
}

func normalizeMap(in *Map) (*Map, error) {
	out := NewMap()
	for _, k := range in.keys {
		norm, err := Normalize(in.values[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out.Set(k, norm)
	}
	return out, nil
}
