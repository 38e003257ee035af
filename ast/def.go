package ast

// FuncDef declares a function.
type FuncDef struct {
	NodeBase

	Name   string
	Params []string
	Body   *Block
}

// StructDef declares a struct.  Methods are parsed but never evaluated.
type StructDef struct {
	NodeBase

	Name    string
	Fields  []string
	Methods []*FuncDef
}

// EnumMember is a single member of an enum declaration.  Value is nil when
// the member's value is implicit.
type EnumMember struct {
	Name  string
	Value *int
}

// EnumDef declares an enum.
type EnumDef struct {
	NodeBase

	Name    string
	Members []EnumMember
}
