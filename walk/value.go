package walk

import (
	"math"
	"strconv"
	"strings"

	"cfgs/logging"
)

// Value is a runtime value.  The set of value types is closed: only types in
// this package implement Value.
type Value interface {
	value()
}

// Null is the absence of a value.
type Null struct{}

// Number is a double-precision number.
type Number float64

// String is an immutable string.
type String string

// Char is a single character.
type Char rune

// Bool is a boolean.
type Bool bool

// List is an ordered, mutable list of values.  Lists are reference values.
type List struct {
	Elems []Value
}

// NewList creates a new list holding the given elements.
func NewList(elems ...Value) *List {
	return &List{Elems: elems}
}

func (Null) value()            {}
func (Number) value()          {}
func (String) value()          {}
func (Char) value()            {}
func (Bool) value()            {}
func (*List) value()           {}
func (*StructInstance) value() {}
func (*EnumDef) value()        {}
func (EnumMember) value()      {}
func (*Handle) value()         {}

// TypeName returns the user-facing name of a value's type.
func TypeName(v Value) string {
	switch v.(type) {
	case Null:
		return "null"
	case Number:
		return "number"
	case String:
		return "string"
	case Char:
		return "char"
	case Bool:
		return "bool"
	case *List:
		return "list"
	case *StructInstance:
		return "struct"
	case *EnumDef:
		return "enum"
	case EnumMember:
		return "enum member"
	case *Handle:
		return "file handle"
	}

	return "unknown"
}

// -----------------------------------------------------------------------------

// Equal tests two values for equality.  Primitives compare by value; lists,
// struct instances, enum definitions and handles compare by identity.  Enum
// members compare by value only: a member equals any member or number holding
// the same value.  Values of different types are never equal.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Number:
		switch bv := b.(type) {
		case Number:
			return av == bv
		case EnumMember:
			return float64(av) == float64(bv.Value)
		}
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Char:
		bv, ok := b.(Char)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case *List:
		bv, ok := b.(*List)
		return ok && av == bv
	case *StructInstance:
		bv, ok := b.(*StructInstance)
		return ok && av == bv
	case *EnumDef:
		bv, ok := b.(*EnumDef)
		return ok && av == bv
	case EnumMember:
		switch bv := b.(type) {
		case EnumMember:
			return av.Value == bv.Value
		case Number:
			return float64(av.Value) == float64(bv)
		}
	case *Handle:
		bv, ok := b.(*Handle)
		return ok && av == bv
	}

	return false
}

// Truthy converts a value to a boolean.  Strings must spell out `true` or
// `false` (in any case); lists, structs, enums and handles have no truth value.
func Truthy(v Value) (bool, error) {
	switch tv := v.(type) {
	case Bool:
		return bool(tv), nil
	case Number:
		return tv != 0, nil
	case Null:
		return false, nil
	case Char:
		return tv != 0, nil
	case EnumMember:
		return tv.Value != 0, nil
	case String:
		switch strings.ToLower(strings.TrimSpace(string(tv))) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}

		return false, typeErrorf("string `%s` is not a valid boolean", tv)
	}

	return false, typeErrorf("value of type %s cannot be used as a boolean", TypeName(v))
}

// ToNumber converts a value to a number.  Numeric strings are parsed.
func ToNumber(v Value) (float64, error) {
	switch tv := v.(type) {
	case Number:
		return float64(tv), nil
	case Char:
		return float64(tv), nil
	case Bool:
		if tv {
			return 1, nil
		}

		return 0, nil
	case Null:
		return 0, nil
	case EnumMember:
		return float64(tv.Value), nil
	case String:
		n, err := strconv.ParseFloat(strings.TrimSpace(string(tv)), 64)
		if err != nil {
			return 0, typeErrorf("string `%s` is not a valid number", tv)
		}

		return n, nil
	}

	return 0, typeErrorf("value of type %s cannot be converted to a number", TypeName(v))
}

// toIndex converts a value to an integer index rounding to the nearest even
// integer on ties.
func toIndex(v Value) (int, error) {
	n, err := ToNumber(v)
	if err != nil {
		return 0, err
	}

	n = math.RoundToEven(n)
	if math.IsNaN(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, logging.NewFault(logging.LMKRange, nil, "value `%s` is not a valid index", formatNumber(n))
	}

	return int(n), nil
}

// toInt64 converts a value to a 64-bit integer truncating any fraction.
func toInt64(v Value) (int64, error) {
	n, err := ToNumber(v)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, logging.NewFault(logging.LMKRange, nil, "value `%s` is not representable as an integer", formatNumber(n))
	}

	return int64(n), nil
}

// typeErrorf creates a type fault with no position.  The interpreter fills in
// the position of the node being evaluated.
func typeErrorf(msg string, args ...interface{}) error {
	return logging.NewFault(logging.LMKTyping, nil, msg, args...)
}
