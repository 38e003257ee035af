// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the interpreter.  Nodes are immutable once built.  The set of
// node types is closed: only types in this package implement Node.
package ast

import "cfgs/logging"

// Node is the abstract interface for all AST nodes.
type Node interface {
	// Position returns the position of the node's first (or operator) token.
	Position() *logging.TextPosition

	node()
}

// NodeBase is a utility base struct for all AST nodes.
type NodeBase struct {
	pos *logging.TextPosition
}

// NewNodeBase creates a new node base at the given position.
func NewNodeBase(pos *logging.TextPosition) NodeBase {
	return NodeBase{pos: pos}
}

func (nb NodeBase) Position() *logging.TextPosition {
	return nb.pos
}

func (NodeBase) node() {}
