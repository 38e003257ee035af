package ast

// NumberLit is a numeric literal.
type NumberLit struct {
	NodeBase

	Value float64
}

// StringLit is a string literal.
type StringLit struct {
	NodeBase

	Value string
}

// CharLit is a character literal.
type CharLit struct {
	NodeBase

	Value rune
}

// BoolLit is a boolean literal.
type BoolLit struct {
	NodeBase

	Value bool
}

// NullLit is the `null` literal.
type NullLit struct {
	NodeBase
}

// Var is a reference to a variable by name.
type Var struct {
	NodeBase

	Name string
}

// ArrayLit is a list literal: `[a, b, c]`.
type ArrayLit struct {
	NodeBase

	Elements []Node
}

// BinOp is a binary operator application.  Op is the operator's token kind.
type BinOp struct {
	NodeBase

	Op       int
	Lhs, Rhs Node
}

// UnaryOp is a prefix or postfix unary operator application.
type UnaryOp struct {
	NodeBase

	Op       int
	Operand  Node
	IsPrefix bool
}

// ArrayAccess is an index into a list or string: `a[i]`.  Index is nil for the
// empty brackets of an append target: `a[] = v`.
type ArrayAccess struct {
	NodeBase

	Array Node
	Index Node
}

// Slice is a slice of a list or string: `a[start:end]`.  Either bound may be
// nil.
type Slice struct {
	NodeBase

	Target     Node
	Start, End Node
}

// MemberAccess accesses a struct field or an enum member: `obj.name`.
type MemberAccess struct {
	NodeBase

	Object Node
	Member string
}

// EnumAccess is a direct access to a member of a named enum: `Color.Red`
// where `Color` is known to be an enum.
type EnumAccess struct {
	NodeBase

	EnumName   string
	MemberName string
}

// FuncCall is a call to a built-in or user function by name.
type FuncCall struct {
	NodeBase

	Name string
	Args []Node
}

// StructInstance constructs a new struct instance: `new Point(1, 2)`.
type StructInstance struct {
	NodeBase

	StructName  string
	FieldValues []Node
}
