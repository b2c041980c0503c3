package transparent

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Value is a single parameter value: String, Int or a nested Params.
type Value interface {
	isValue()
}

type String string

type Int int64

// Params is a parameter tree. Iteration order of the map does not matter;
// QueryString always walks it in sorted key order.
type Params map[string]Value

func (String) isValue() {}
func (Int) isValue()    {}
func (Params) isValue() {}

// FromMap converts loosely typed input, typically a decoded JSON object, into
// Params. Integral numbers become Int; anything that is not a string, an
// integer or a nested object is rejected.
func FromMap(m map[string]any) (Params, error) {
	return fromMap("", m)
}

func fromMap(prefix string, m map[string]any) (Params, error) {
	p := make(Params, len(m))
	for k, raw := range m {
		path := nestedKey(prefix, k)
		v, err := toValue(path, raw)
		if err != nil {
			return nil, err
		}
		p[k] = v
	}
	return p, nil
}

func toValue(path string, raw any) (Value, error) {
	switch v := raw.(type) {
	case Value:
		return v, nil
	case string:
		return String(v), nil
	case int:
		return Int(v), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint8:
		return Int(v), nil
	case uint16:
		return Int(v), nil
	case uint32:
		return Int(v), nil
	case uint:
		return fromUint(path, uint64(v))
	case uint64:
		return fromUint(path, v)
	case json.Number:
		n, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return nil, newError("FromMap", ErrUnsupportedValue,
				fmt.Sprintf("%s: %q is not an integer", path, v.String()))
		}
		return Int(n), nil
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return nil, newError("FromMap", ErrUnsupportedValue,
				fmt.Sprintf("%s: %v is not an integer", path, v))
		}
		return Int(int64(v)), nil
	case map[string]any:
		return fromMap(path, v)
	case map[string]string:
		p := make(Params, len(v))
		for k, s := range v {
			p[k] = String(s)
		}
		return p, nil
	default:
		return nil, newError("FromMap", ErrUnsupportedValue,
			fmt.Sprintf("%s: unsupported type %T", path, raw))
	}
}

func fromUint(path string, v uint64) (Value, error) {
	if v > math.MaxInt64 {
		return nil, newError("FromMap", ErrUnsupportedValue,
			fmt.Sprintf("%s: %d overflows int64", path, v))
	}
	return Int(int64(v)), nil
}
