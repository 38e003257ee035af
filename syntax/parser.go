package syntax

import (
	"cfgs/ast"
	"cfgs/logging"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is a recursive descent parser for CFGS source text.  It acts as a
// state machine that moves over the token stream one token at a time deciding
// what to parse based on the token it is currently positioned over.  All
// parsing functions assume that they begin with the parser centered on the
// first token of their production and must consume all tokens (including the
// last) of their production, leaving the parser on the next token.  Parse
// errors are raised as fault panics and are caught at the API boundary: there
// is no error recovery.
type Parser struct {
	// toks is the token stream being parsed.  It always ends with EOF.
	toks []*Token

	// ndx is the index of the current token in `toks`.
	ndx int

	// tok is the current token the parser is positioned on.
	tok *Token

	// enums is the set of enum names declared so far in this compilation unit.
	// It is used to distinguish `Enum.Member` from ordinary member access.
	enums map[string]struct{}
}

// NewParser creates a new parser over a token stream.
func NewParser(toks []*Token) *Parser {
	// guarantee the stream is terminated so the parser never runs off the end
	if len(toks) == 0 || toks[len(toks)-1].Kind != EOF {
		line, col := 1, 1
		if len(toks) > 0 {
			last := toks[len(toks)-1]
			line, col = last.Line, last.Col+len(last.Value)
		}

		toks = append(toks, &Token{Kind: EOF, Line: line, Col: col})
	}

	return &Parser{toks: toks, tok: toks[0], enums: make(map[string]struct{})}
}

// Parse parses a token stream into the root block of a program.
func Parse(toks []*Token) (*ast.Block, error) {
	return NewParser(toks).ParseProgram()
}

// ParseSource lexes and parses a source text.
func ParseSource(src string) (*ast.Block, error) {
	return Parse(Tokenize(src))
}

// ParseExpr parses a source text consisting of exactly one expression.
func ParseExpr(src string) (expr ast.Node, err error) {
	p := NewParser(Tokenize(src))
	defer logging.CatchFault(&err)

	expr = p.parseExpr()
	if !p.got(EOF) {
		p.reject()
	}

	return
}

// ParseProgram parses the whole token stream as the root block of a program.
func (p *Parser) ParseProgram() (block *ast.Block, err error) {
	defer logging.CatchFault(&err)

	block = p.parseStmtList()
	if !p.got(EOF) {
		p.reject()
	}

	return
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token.  The parser never moves past EOF.
func (p *Parser) next() {
	if p.ndx < len(p.toks)-1 {
		p.ndx++
		p.tok = p.toks[p.ndx]
	}
}

// got returns true if the parser is on a token of a given kind.
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// gotOneOf returns if the parser's current token kind is one of given kinds.
func (p *Parser) gotOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// eat asserts that the parser is on a token of the given kind, moves past it
// and returns it.  Any other token is rejected.
func (p *Parser) eat(kind int) *Token {
	if !p.got(kind) {
		p.raiseOn(p.tok, "expected %s, got %s", KindName(kind), KindName(p.tok.Kind))
	}

	tok := p.tok
	p.next()
	return tok
}

// reject raises an unexpected token error on the current token.
func (p *Parser) reject() {
	if p.got(EOF) {
		p.raiseOn(p.tok, "unexpected end of input")
	}

	p.raiseOn(p.tok, "unexpected token: %s", KindName(p.tok.Kind))
}

// raiseOn raises a syntax fault on the given token.  Faults raised on the EOF
// token are marked incomplete.
func (p *Parser) raiseOn(tok *Token, msg string, args ...interface{}) {
	f := logging.NewFault(logging.LMKSyntax, tok.Position(), msg, args...)
	f.Incomplete = tok.Kind == EOF
	panic(f)
}

// base creates a node base positioned at the given token.
func base(tok *Token) ast.NodeBase {
	return ast.NewNodeBase(tok.Position())
}
