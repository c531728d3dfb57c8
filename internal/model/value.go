package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ValueKind identifies which member of a Value is populated.
type ValueKind int

const (
	// KindString is a text detail such as a parameter name.
	KindString ValueKind = iota
	// KindInt is an integral detail such as a count or depth.
	KindInt
	// KindFloat is a fractional detail.
	KindFloat
	// KindBool is a boolean detail.
	KindBool
)

// Value is a detail value attached to a smell warning.
// It is a small tagged union so that equality is well defined: a string
// never equals a number, but integers and floats compare numerically.
type Value struct {
	kind ValueKind
	s    string
	i    int64
	f    float64
	b    bool
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a float Value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// ErrUnsupportedValue is returned by ValueOf for types that have no Value form.
var ErrUnsupportedValue = errors.New("unsupported detail value type")

// ValueOf converts a Go value into a Value. Strings, every integer and
// float kind, and bools are accepted; anything else is an error, as is an
// unsigned value above math.MaxInt64.
func ValueOf(v any) (Value, error) {
	if val, ok := v.(Value); ok {
		return val, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: %T %d overflows int64", ErrUnsupportedValue, v, u)
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// Kind reports which member of the union is set.
func (v Value) Kind() ValueKind { return v.kind }

// Equal reports whether two values are the same. Numbers compare by value
// across KindInt and KindFloat; all other kinds must match exactly.
func (v Value) Equal(other Value) bool {
	if v.isNumber() && other.isNumber() {
		if v.kind == KindInt && other.kind == KindInt {
			return v.i == other.i
		}
		return v.number() == other.number()
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.s == other.s
	case KindBool:
		return v.b == other.b
	default:
		return false
	}
}

func (v Value) isNumber() bool { return v.kind == KindInt || v.kind == KindFloat }

func (v Value) number() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Interface returns the underlying Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	default:
		return v.s
	}
}

// String renders the value the way it appears in reports: strings are
// quoted, everything else is printed bare.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return strconv.Quote(v.s)
	}
}

// MarshalJSON encodes the value as its plain JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON decodes a JSON scalar. Whole numbers become KindInt.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if f, ok := raw.(float64); ok && f == float64(int64(f)) {
		*v = Int(int64(f))
		return nil
	}
	decoded, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}

// MarshalYAML encodes the value as its plain YAML scalar.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}

// UnmarshalYAML decodes a YAML scalar.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	decoded, err := ValueOf(raw)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}
