package ast

// Block is a sequence of statements.  Blocks never introduce a new scope.
type Block struct {
	NodeBase

	Stmts []Node
}

// Print writes the formatted value of an expression.  Newline is false for
// `printc`.
type Print struct {
	NodeBase

	Value   Node
	Newline bool
}

// Assign assigns a value to a Var, MemberAccess, Slice or indexed
// ArrayAccess target.
type Assign struct {
	NodeBase

	Target Node
	Value  Node
}

// Append appends a value to a list: `a[] = v`.
type Append struct {
	NodeBase

	Array Node
	Value Node
}

// ArrayDelete removes an element of a list, or clears the list when Index is
// nil.
type ArrayDelete struct {
	NodeBase

	Array Node
	Index Node
}

// If is a conditional.  Else is nil, a *Block or a nested *If.
type If struct {
	NodeBase

	Cond Node
	Then *Block
	Else Node
}

// While is a loop.
type While struct {
	NodeBase

	Cond Node
	Body *Block
}

// Break exits the nearest enclosing loop.
type Break struct {
	NodeBase
}

// Continue skips to the next iteration of the nearest enclosing loop.
type Continue struct {
	NodeBase
}

// Return exits the current function with a value.
type Return struct {
	NodeBase

	Value Node
}

// Import loads the declarations of another source file.
type Import struct {
	NodeBase

	FileName string
}

// Try is a try/catch/finally statement.  CatchVar is empty when the catch
// clause binds no variable; Catch and Finally may be nil.
type Try struct {
	NodeBase

	Body     *Block
	CatchVar string
	Catch    *Block
	Finally  *Block
}

// Throw raises a user error carrying the textual form of a value.
type Throw struct {
	NodeBase

	Value Node
}

// Match selects the first case whose values equal the scrutinee.
type Match struct {
	NodeBase

	Value   Node
	Cases   []*MatchCase
	Default *Block
}

// MatchCase is a single `case v1, v2 { ... }` arm of a match statement.
type MatchCase struct {
	NodeBase

	Values []Node
	Body   *Block
}
