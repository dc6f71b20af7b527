// SPDX-License-Identifier: MPL-2.0

package properties

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/jlaunch/jlaunch/pkg/ports"
	"github.com/jlaunch/jlaunch/pkg/types"
)

const (
	// KindString is a literal string value.
	KindString Kind = iota + 1
	// KindBool is a boolean rendered as "true" or "false".
	KindBool
	// KindInt is an integer rendered in decimal.
	KindInt
	// KindPort is a lazy port source resolved at realization time.
	KindPort
)

// ErrUnsupportedValue is the sentinel error wrapped by UnsupportedValueError.
var ErrUnsupportedValue = errors.New("unsupported property value")

type (
	// Kind identifies which variant a Value holds.
	Kind uint8

	// Value is a closed variant over the property value types a launch
	// schema accepts. The zero Value is invalid; build values with
	// String, Bool, Int, Port or ValueOf.
	Value struct {
		kind Kind
		str  string
		b    bool
		i    int64
		port ports.Source
	}

	// UnsupportedValueError is returned by ValueOf for Go values that have
	// no Value variant.
	UnsupportedValueError struct {
		Type string
	}
)

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Port returns a Value backed by a lazy port source. A nil src yields a
// Value that IsValid rejects.
func Port(src ports.Source) Value { return Value{kind: KindPort, port: src} }

// ValueOf converts a Go value to a Value. Accepted: Value, string, bool, any
// integer type, types.ListenPort and ports.Source. Untyped nil is rejected.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		if !x.IsValid() {
			return Value{}, &UnsupportedValueError{Type: "invalid properties.Value"}
		}
		return x, nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return fromUint(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return fromUint(x)
	case types.ListenPort:
		return Int(int64(x)), nil
	case ports.Source:
		if ports.IsNil(x) {
			return Value{}, &UnsupportedValueError{Type: fmt.Sprintf("nil %T", x)}
		}
		return Port(x), nil
	}
	return Value{}, &UnsupportedValueError{Type: fmt.Sprintf("%T", v)}
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, &UnsupportedValueError{Type: "uint64 overflowing int64"}
	}
	return Int(int64(u)), nil
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v was built by one of the constructors, with a
// non-nil source for port values.
func (v Value) IsValid() bool {
	if v.kind == KindPort {
		return !ports.IsNil(v.port)
	}
	return v.kind >= KindString && v.kind < KindPort
}

// AsString returns the string variant.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsBool returns the boolean variant.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the integer variant.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsPort returns the port source variant.
func (v Value) AsPort() (ports.Source, bool) { return v.port, v.kind == KindPort }

// Resolve renders v as the string passed to the runtime. Port values call
// the source's Next, so resolving the same Value twice may give different
// ports.
func (v Value) Resolve() (string, error) {
	switch v.kind {
	case KindString:
		return v.str, nil
	case KindBool:
		return strconv.FormatBool(v.b), nil
	case KindInt:
		return strconv.FormatInt(v.i, 10), nil
	case KindPort:
		if ports.IsNil(v.port) {
			return "", &UnsupportedValueError{Type: "nil port source"}
		}
		p, err := v.port.Next()
		if err != nil {
			return "", fmt.Errorf("resolving port: %w", err)
		}
		return p.String(), nil
	default:
		return "", &UnsupportedValueError{Type: "zero properties.Value"}
	}
}

// String implements fmt.Stringer. Port values are shown as "<port>" since
// rendering must not consume a port.
func (v Value) String() string {
	if v.kind == KindPort {
		if f, ok := v.port.(ports.Fixed); ok {
			return f.String()
		}
		return "<port>"
	}
	s, err := v.Resolve()
	if err != nil {
		return "<invalid>"
	}
	return s
}

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindPort:
		return "port"
	default:
		return "invalid"
	}
}

// Error implements the error interface for UnsupportedValueError.
func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("unsupported property value of type %s: want string, bool, integer or port source", e.Type)
}

// Unwrap returns ErrUnsupportedValue for errors.Is() compatibility.
func (e *UnsupportedValueError) Unwrap() error { return ErrUnsupportedValue }
