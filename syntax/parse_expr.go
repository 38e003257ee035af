package syntax

import (
	"strconv"

	"cfgs/ast"
)

// expr = or_expr
func (p *Parser) parseExpr() ast.Node {
	return p.parseBinOpExpr()
}

// expr_list = [expr {',' expr}]
//
// The list is terminated by `closer` which is NOT consumed.
func (p *Parser) parseExprList(closer int) []ast.Node {
	var exprs []ast.Node
	if p.got(closer) {
		return exprs
	}

	for {
		exprs = append(exprs, p.parseExpr())

		if p.got(COMMA) {
			p.next()
		} else {
			return exprs
		}
	}
}

// -----------------------------------------------------------------------------

// or_expr = and_expr {'||' and_expr}
// and_expr = bor_expr {'&&' bor_expr}
// bor_expr = xor_expr {'|' xor_expr}
// xor_expr = band_expr {'^' band_expr}
// band_expr = eq_expr {'&' eq_expr}
// eq_expr = comp_expr {('==' | '!=') comp_expr}
// comp_expr = shift_expr {('<' | '>' | '<=' | '>=') shift_expr}
// shift_expr = arith_expr {('>>' | '<<') arith_expr}
// arith_expr = term {('+' | '-') term}
// term = factor {('*' | '/' | '%') factor}
// factor = unary_expr ['**' factor]
func (p *Parser) parseBinOpExpr() ast.Node {
	return p.precedenceParse(p.parseUnaryExpr(), len(precTable))
}

// precTable is the operator precedence table for binary operators. The table is
// ordered highest to lowest precedence.
var precTable = [][]int{
	{POWER},
	{STAR, DIVIDE, MOD},
	{PLUS, MINUS},
	{LSHIFT, RSHIFT},
	{LT, GT, LTEQ, GTEQ},
	{EQ, NEQ},
	{AMP},
	{BXOR},
	{PIPE},
	{AND},
	{OR},
}

// precedenceParse performs operator precedence parsing for binary operators
// whose precedence is strictly less than `maxPrec` (as an index in the table).
func (p *Parser) precedenceParse(lhs ast.Node, maxPrec int) ast.Node {
	for {
		// check to see if the lookahead matches any of the operators at or
		// above our precedence level.
		var op *Token
		var opPrec int
		for prec, precLevel := range precTable[:maxPrec] {
			if p.gotOneOf(precLevel...) {
				op = p.tok
				opPrec = prec
				break
			}
		}

		// no matching operator
		if op == nil {
			return lhs
		}

		p.next()
		rhs := p.parseUnaryExpr()

	nextOpLoop:
		for {
			// `**` is right associative
			precBound := opPrec
			if opPrec == 0 {
				precBound = 1
			}

			for _, precLevel := range precTable[:precBound] {
				if p.gotOneOf(precLevel...) {
					rhs = p.precedenceParse(rhs, precBound)
					continue nextOpLoop
				}
			}

			break nextOpLoop
		}

		lhs = &ast.BinOp{
			NodeBase: base(op),
			Op:       op.Kind,
			Lhs:      lhs,
			Rhs:      rhs,
		}
	}
}

// unary_expr = ('-' | '!' | '++' | '--') unary_expr | postfix_expr
func (p *Parser) parseUnaryExpr() ast.Node {
	if p.gotOneOf(MINUS, NOT, INCREM, DECREM) {
		op := p.tok
		p.next()

		return &ast.UnaryOp{
			NodeBase: base(op),
			Op:       op.Kind,
			Operand:  p.parseUnaryExpr(),
			IsPrefix: true,
		}
	}

	return p.parsePostfixExpr()
}

// postfix_expr = atom_expr {'++' | '--'}
func (p *Parser) parsePostfixExpr() ast.Node {
	node := p.parseAtomExpr()

	for p.gotOneOf(INCREM, DECREM) {
		node = &ast.UnaryOp{
			NodeBase: base(p.tok),
			Op:       p.tok.Kind,
			Operand:  node,
		}

		p.next()
	}

	return node
}

// atom_expr = new_expr trailers | literal | array_lit | '(' expr ')' trailers
//           | 'IDENTIFIER' ['(' expr_list ')'] trailers
//           | 'IDENTIFIER' '.' 'IDENTIFIER'   (when the first name is an enum)
func (p *Parser) parseAtomExpr() ast.Node {
	switch p.tok.Kind {
	case NEW:
		return p.parseTrailers(p.parseNewExpr())
	case NUMLIT, STRINGLIT, CHARLIT, BOOLLIT, NULL:
		return p.parseLiteral()
	case LBRACKET:
		start := p.tok
		p.next()

		elems := p.parseExprList(RBRACKET)
		p.eat(RBRACKET)

		return p.parseTrailers(&ast.ArrayLit{NodeBase: base(start), Elements: elems})
	case LPAREN:
		p.next()
		expr := p.parseExpr()
		p.eat(RPAREN)

		return p.parseTrailers(expr)
	case IDENTIFIER:
		idTok := p.tok
		p.next()

		if p.got(LPAREN) {
			p.next()
			args := p.parseExprList(RPAREN)
			p.eat(RPAREN)

			return p.parseTrailers(&ast.FuncCall{NodeBase: base(idTok), Name: idTok.Value, Args: args})
		}

		if _, ok := p.enums[idTok.Value]; ok && p.got(DOT) {
			p.next()
			memberTok := p.eat(IDENTIFIER)

			return p.parseTrailers(&ast.EnumAccess{
				NodeBase:   base(idTok),
				EnumName:   idTok.Value,
				MemberName: memberTok.Value,
			})
		}

		return p.parseTrailers(&ast.Var{NodeBase: base(idTok), Name: idTok.Value})
	}

	p.reject()
	return nil
}

// trailers = {'[' ']' | '[' expr ']' | '[' [expr] ':' [expr] ']' | '.' 'IDENTIFIER'}
func (p *Parser) parseTrailers(node ast.Node) ast.Node {
	for {
		switch p.tok.Kind {
		case LBRACKET:
			bracket := p.tok
			p.next()

			// empty brackets denote an append target
			if p.got(RBRACKET) {
				p.next()
				node = &ast.ArrayAccess{NodeBase: base(bracket), Array: node}
				continue
			}

			var start, end ast.Node
			if !p.got(COLON) {
				start = p.parseExpr()
			}

			if p.got(COLON) {
				p.next()

				if !p.got(RBRACKET) {
					end = p.parseExpr()
				}

				node = &ast.Slice{NodeBase: base(bracket), Target: node, Start: start, End: end}
			} else {
				node = &ast.ArrayAccess{NodeBase: base(bracket), Array: node, Index: start}
			}

			p.eat(RBRACKET)
		case DOT:
			p.next()
			memberTok := p.eat(IDENTIFIER)

			node = &ast.MemberAccess{NodeBase: base(memberTok), Object: node, Member: memberTok.Value}
		default:
			return node
		}
	}
}

// new_expr = 'new' 'IDENTIFIER' '(' expr_list ')'
func (p *Parser) parseNewExpr() ast.Node {
	newTok := p.eat(NEW)
	name := p.eat(IDENTIFIER)

	p.eat(LPAREN)
	args := p.parseExprList(RPAREN)
	p.eat(RPAREN)

	return &ast.StructInstance{NodeBase: base(newTok), StructName: name.Value, FieldValues: args}
}

// literal = 'NUMLIT' | 'STRINGLIT' | 'CHARLIT' | 'BOOLLIT' | 'null'
func (p *Parser) parseLiteral() ast.Node {
	tok := p.tok
	p.next()

	switch tok.Kind {
	case NUMLIT:
		n, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			p.raiseOn(tok, "malformed number literal: `%s`", tok.Value)
		}

		return &ast.NumberLit{NodeBase: base(tok), Value: n}
	case STRINGLIT:
		return &ast.StringLit{NodeBase: base(tok), Value: tok.Value}
	case CHARLIT:
		// multi-character literals keep only their first character
		for _, r := range tok.Value {
			return &ast.CharLit{NodeBase: base(tok), Value: r}
		}

		p.raiseOn(tok, "empty character literal")
	case BOOLLIT:
		return &ast.BoolLit{NodeBase: base(tok), Value: tok.Value == "true"}
	}

	return &ast.NullLit{NodeBase: base(tok)}
}
