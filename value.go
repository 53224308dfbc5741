package cascade

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind tags the scalar type carried by a Value.
type Kind uint8

const (
	// KindInvalid is the zero Value. It never equals anything, itself included.
	KindInvalid Kind = iota
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "invalid"
	}
}

// Value is a tagged scalar used for option values and path elements. Two
// values are equal only when both kind and payload match, so Bool(true) and
// String("true") are distinct.
type Value struct {
	kind Kind
	str  string
	num  float64
	bit  bool
}

// String builds a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number builds a numeric Value.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// Int builds a numeric Value from an integer.
func Int(n int) Value {
	return Number(float64(n))
}

// Bool builds a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, bit: b}
}

// ValueOf lifts a Go scalar into a Value. It reports false for anything that
// is not a string, bool, number or json.Number.
func ValueOf(v any) (Value, bool) {
	switch typed := v.(type) {
	case Value:
		return typed, typed.IsValid()
	case string:
		return String(typed), true
	case bool:
		return Bool(typed), true
	case int:
		return Number(float64(typed)), true
	case int8:
		return Number(float64(typed)), true
	case int16:
		return Number(float64(typed)), true
	case int32:
		return Number(float64(typed)), true
	case int64:
		return Number(float64(typed)), true
	case uint:
		return Number(float64(typed)), true
	case uint8:
		return Number(float64(typed)), true
	case uint16:
		return Number(float64(typed)), true
	case uint32:
		return Number(float64(typed)), true
	case uint64:
		return Number(float64(typed)), true
	case float32:
		return Number(float64(typed)), true
	case float64:
		return Number(typed), true
	case json.Number:
		f, err := typed.Float64()
		if err != nil {
			return Value{}, false
		}
		return Number(f), true
	default:
		return Value{}, false
	}
}

// MustValue is ValueOf for literals known to be scalars. It panics otherwise.
func MustValue(v any) Value {
	out, ok := ValueOf(v)
	if !ok {
		panic(fmt.Sprintf("cascade: %T is not a scalar", v))
	}
	return out
}

// Kind reports the scalar kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsValid reports whether v was built from a scalar.
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

// Equal compares kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.bit == other.bit
	default:
		return false
	}
}

// String renders the value the way a browser would stringify it: integral
// numbers without a fraction, booleans as true/false.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return formatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.bit)
	default:
		return ""
	}
}

// Interface returns the Go scalar behind v (string, float64 or bool).
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.bit
	default:
		return nil
	}
}

// key is a kind-prefixed canonical encoding; distinct kinds never collide.
func (v Value) key() string {
	switch v.kind {
	case KindString:
		return "s" + strconv.Quote(v.str)
	case KindNumber:
		if v.num == 0 {
			return "n0"
		}
		return "n" + formatNumber(v.num)
	case KindBool:
		return "b" + strconv.FormatBool(v.bit)
	default:
		return "x"
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// MarshalJSON encodes the bare scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return nil, fmt.Errorf("cascade: cannot encode %s as JSON", formatNumber(v.num))
		}
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.bit)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON string, number or boolean.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = Value{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = String(s)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return err
		}
		*v = Bool(b)
	case '[', '{':
		return fmt.Errorf("cascade: value must be a scalar, got %s", trimmed)
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		*v = Number(n)
	}
	return nil
}
