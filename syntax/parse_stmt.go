package syntax

import (
	"cfgs/ast"
)

// stmt_list = {stmt}
//
// The list runs until a closing brace or the end of input, neither of which is
// consumed.
func (p *Parser) parseStmtList() *ast.Block {
	block := &ast.Block{NodeBase: base(p.tok)}

	for !p.gotOneOf(RBRACE, EOF) {
		block.Stmts = append(block.Stmts, p.parseStmt())
	}

	return block
}

// block = '{' stmt_list '}'
func (p *Parser) parseBlock() *ast.Block {
	start := p.eat(LBRACE)

	block := p.parseStmtList()
	block.NodeBase = base(start)

	p.eat(RBRACE)
	return block
}

// stmt = print_stmt | delete_stmt | import_stmt | func_def | return_stmt
//      | try_stmt | throw_stmt | match_stmt | if_stmt | while_stmt
//      | 'break' ';' | 'continue' ';' | struct_def | enum_def | block
//      | expr_stmt
func (p *Parser) parseStmt() ast.Node {
	switch p.tok.Kind {
	case PRINT, PRINTC:
		return p.parsePrintStmt()
	case DELETE:
		return p.parseDeleteStmt()
	case IMPORT:
		return p.parseImportStmt()
	case FUNC:
		return p.parseFuncDef()
	case RETURN:
		return p.parseReturnStmt()
	case TRY:
		return p.parseTryStmt()
	case THROW:
		throwTok := p.eat(THROW)
		value := p.parseExpr()
		p.eat(SEMICOLON)

		return &ast.Throw{NodeBase: base(throwTok), Value: value}
	case MATCH:
		return p.parseMatchStmt()
	case IF:
		return p.parseIfStmt()
	case WHILE:
		whileTok := p.eat(WHILE)
		cond := p.parseCondition()

		return &ast.While{NodeBase: base(whileTok), Cond: cond, Body: p.parseBlock()}
	case BREAK:
		breakTok := p.eat(BREAK)
		p.eat(SEMICOLON)

		return &ast.Break{NodeBase: base(breakTok)}
	case CONTINUE:
		contTok := p.eat(CONTINUE)
		p.eat(SEMICOLON)

		return &ast.Continue{NodeBase: base(contTok)}
	case STRUCT:
		return p.parseStructDef()
	case ENUM:
		return p.parseEnumDef()
	case LBRACE:
		return p.parseBlock()
	case IDENTIFIER, LPAREN, LBRACKET, NEW, NUMLIT, STRINGLIT, CHARLIT, BOOLLIT,
		NULL, MINUS, NOT, INCREM, DECREM:
		return p.parseExprStmt()
	}

	p.reject()
	return nil
}

// print_stmt = ('print' | 'printc') '(' expr ')' ';'
func (p *Parser) parsePrintStmt() ast.Node {
	printTok := p.tok
	p.next()

	p.eat(LPAREN)
	value := p.parseExpr()
	p.eat(RPAREN)
	p.eat(SEMICOLON)

	return &ast.Print{NodeBase: base(printTok), Value: value, Newline: printTok.Kind == PRINT}
}

// delete_stmt = 'delete' expr ';'
//
// The expression is either a list (which is cleared) or an indexed list access
// (which removes that element).
func (p *Parser) parseDeleteStmt() ast.Node {
	delTok := p.eat(DELETE)
	target := p.parseExpr()
	p.eat(SEMICOLON)

	if aa, ok := target.(*ast.ArrayAccess); ok {
		return &ast.ArrayDelete{NodeBase: base(delTok), Array: aa.Array, Index: aa.Index}
	}

	return &ast.ArrayDelete{NodeBase: base(delTok), Array: target}
}

// return_stmt = 'return' [expr] ';'
func (p *Parser) parseReturnStmt() ast.Node {
	retTok := p.eat(RETURN)

	var value ast.Node
	if !p.got(SEMICOLON) {
		value = p.parseExpr()
	}

	p.eat(SEMICOLON)
	return &ast.Return{NodeBase: base(retTok), Value: value}
}

// try_stmt = 'try' block ['catch' ['(' 'IDENTIFIER' ')'] block] ['finally' block]
func (p *Parser) parseTryStmt() ast.Node {
	tryNode := &ast.Try{NodeBase: base(p.eat(TRY))}
	tryNode.Body = p.parseBlock()

	if p.got(CATCH) {
		p.next()

		if p.got(LPAREN) {
			p.next()
			tryNode.CatchVar = p.eat(IDENTIFIER).Value
			p.eat(RPAREN)
		}

		tryNode.Catch = p.parseBlock()
	}

	if p.got(FINALLY) {
		p.next()
		tryNode.Finally = p.parseBlock()
	}

	return tryNode
}

// match_stmt = 'match' '(' expr ')' '{' {match_case} ['default' block] '}'
// match_case = 'case' expr {',' expr} block
func (p *Parser) parseMatchStmt() ast.Node {
	matchNode := &ast.Match{NodeBase: base(p.eat(MATCH))}
	matchNode.Value = p.parseCondition()

	p.eat(LBRACE)
	for !p.got(RBRACE) {
		switch p.tok.Kind {
		case CASE:
			caseTok := p.eat(CASE)
			values := p.parseExprList(LBRACE)
			if len(values) == 0 {
				p.reject()
			}

			matchNode.Cases = append(matchNode.Cases, &ast.MatchCase{
				NodeBase: base(caseTok),
				Values:   values,
				Body:     p.parseBlock(),
			})
		case DEFAULT:
			defaultTok := p.eat(DEFAULT)
			if matchNode.Default != nil {
				p.raiseOn(defaultTok, "multiple default cases in match")
			}

			matchNode.Default = p.parseBlock()
		default:
			p.reject()
		}
	}
	p.eat(RBRACE)

	return matchNode
}

// if_stmt = 'if' '(' expr ')' block ['else' (if_stmt | block)]
func (p *Parser) parseIfStmt() ast.Node {
	ifNode := &ast.If{NodeBase: base(p.eat(IF))}
	ifNode.Cond = p.parseCondition()
	ifNode.Then = p.parseBlock()

	if p.got(ELSE) {
		p.next()

		if p.got(IF) {
			ifNode.Else = p.parseIfStmt()
		} else {
			ifNode.Else = p.parseBlock()
		}
	}

	return ifNode
}

// condition = '(' expr ')'
func (p *Parser) parseCondition() ast.Node {
	p.eat(LPAREN)
	cond := p.parseExpr()
	p.eat(RPAREN)

	return cond
}

// expr_stmt = expr ['=' expr] ';'
//
// Assignment targets are restricted to variables, member accesses, slices and
// list accesses.  A list access with empty brackets is an append.
func (p *Parser) parseExprStmt() ast.Node {
	expr := p.parseExpr()

	if p.got(ASSIGN) {
		assignTok := p.eat(ASSIGN)
		value := p.parseExpr()
		p.eat(SEMICOLON)

		switch v := expr.(type) {
		case *ast.Var, *ast.MemberAccess, *ast.Slice:
			return &ast.Assign{NodeBase: base(assignTok), Target: expr, Value: value}
		case *ast.ArrayAccess:
			if v.Index == nil {
				return &ast.Append{NodeBase: base(assignTok), Array: v.Array, Value: value}
			}

			return &ast.Assign{NodeBase: base(assignTok), Target: expr, Value: value}
		default:
			p.raiseOn(assignTok, "invalid assignment target")
		}
	}

	p.eat(SEMICOLON)
	return expr
}
