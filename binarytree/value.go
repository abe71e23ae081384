package binarytree

import (
	"fmt"
	"strconv"
)

// Kind discriminates the payload held by a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindString
	KindByte
	KindUInt
	KindInt
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindString:
		return "string"
	case KindByte:
		return "byte"
	case KindUInt:
		return "uint"
	case KindInt:
		return "int"
	default:
		return "invalid"
	}
}

// Value is the small tagged union stored in tree nodes. The zero Value
// is the nil variant, and values are comparable with ==, so they can be
// used directly as map keys.
type Value struct {
	kind Kind
	str  string
	bits uint64
}

// NilValue returns the nil variant.
func NilValue() Value {
	return Value{}
}

// Str wraps a string payload.
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// Byte wraps a single byte payload.
func Byte(b byte) Value {
	return Value{kind: KindByte, bits: uint64(b)}
}

// UInt wraps an unsigned integer payload.
func UInt(u uint64) Value {
	return Value{kind: KindUInt, bits: u}
}

// Int wraps a signed integer payload.
func Int(i int64) Value {
	return Value{kind: KindInt, bits: uint64(i)}
}

// ValueOf converts common Go scalars into a Value. Unsupported types
// fall back to their fmt representation as a string payload.
func ValueOf(v any) Value {
	switch v := v.(type) {
	case nil:
		return Value{}
	case Value:
		return v
	case string:
		return Str(v)
	case byte:
		return Byte(v)
	case uint64:
		return UInt(v)
	case uint:
		return UInt(uint64(v))
	case int64:
		return Int(v)
	case int:
		return Int(int64(v))
	case fmt.Stringer:
		return Str(v.String())
	default:
		return Str(fmt.Sprint(v))
	}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil reports whether the value is the nil variant.
func (v Value) IsNil() bool {
	return v.kind == KindNil
}

// Text returns the string payload, or "" for other variants.
func (v Value) Text() string {
	return v.str
}

// Uint64 returns the numeric payload widened to uint64. Signed payloads
// keep their two's-complement bits.
func (v Value) Uint64() uint64 {
	return v.bits
}

// Equal reports whether both values hold the same variant and payload.
func (v Value) Equal(other Value) bool {
	return v == other
}

// String renders the payload without any type decoration: "nil" for
// the nil variant, the raw text for strings, decimal for numbers.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindByte, KindUInt:
		return strconv.FormatUint(v.bits, 10)
	case KindInt:
		return strconv.FormatInt(int64(v.bits), 10)
	default:
		return "nil"
	}
}

// GoString renders the debug form used in node dumps: quoted strings
// and kind-tagged numbers.
func (v Value) GoString() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindByte:
		return fmt.Sprintf("byte(%d)", v.bits)
	case KindUInt:
		return fmt.Sprintf("uint64(%d)", v.bits)
	case KindInt:
		return fmt.Sprintf("int64(%d)", int64(v.bits))
	default:
		return "nil"
	}
}
