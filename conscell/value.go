package conscell

import "strconv"

// Kind discriminates the payload held by a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindSymbol
	KindString
	KindInt
	KindUInt
)

// Value is the atom stored in list cells. The zero Value is nil, and
// values are comparable with ==.
type Value struct {
	kind Kind
	str  string
	bits uint64
}

// NilValue returns the nil atom.
func NilValue() Value {
	return Value{}
}

// Sym wraps a symbol name.
func Sym(name string) Value {
	return Value{kind: KindSymbol, str: name}
}

// Str wraps a string payload.
func Str(s string) Value {
	return Value{kind: KindString, str: s}
}

// Int wraps a signed integer payload.
func Int(i int64) Value {
	return Value{kind: KindInt, bits: uint64(i)}
}

// UInt wraps an unsigned integer payload.
func UInt(u uint64) Value {
	return Value{kind: KindUInt, bits: u}
}

// Kind reports which variant the value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil reports whether the value is the nil atom.
func (v Value) IsNil() bool {
	return v.kind == KindNil
}

// Text returns the symbol name or string payload, "" otherwise.
func (v Value) Text() string {
	return v.str
}

// Equal reports whether both values hold the same variant and payload.
func (v Value) Equal(other Value) bool {
	return v == other
}

// String renders the atom the way a list printer would: symbols bare,
// strings quoted, numbers decimal, nil as "nil".
func (v Value) String() string {
	switch v.kind {
	case KindSymbol:
		return v.str
	case KindString:
		return strconv.Quote(v.str)
	case KindInt:
		return strconv.FormatInt(int64(v.bits), 10)
	case KindUInt:
		return strconv.FormatUint(v.bits, 10)
	default:
		return "nil"
	}
}
