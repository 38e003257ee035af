package syntax

import (
	"strconv"

	"cfgs/ast"
)

// import_stmt = 'import' 'STRINGLIT' ';'
func (p *Parser) parseImportStmt() ast.Node {
	importTok := p.eat(IMPORT)
	fileName := p.eat(STRINGLIT).Value
	p.eat(SEMICOLON)

	return &ast.Import{NodeBase: base(importTok), FileName: fileName}
}

// func_def = 'func' 'IDENTIFIER' '(' [id_list] ')' block
// id_list = 'IDENTIFIER' {',' 'IDENTIFIER'}
func (p *Parser) parseFuncDef() *ast.FuncDef {
	p.eat(FUNC)
	nameTok := p.eat(IDENTIFIER)

	var params []string
	p.eat(LPAREN)
	if !p.got(RPAREN) {
		for {
			params = append(params, p.eat(IDENTIFIER).Value)

			if p.got(COMMA) {
				p.next()
			} else {
				break
			}
		}
	}
	p.eat(RPAREN)

	return &ast.FuncDef{
		NodeBase: base(nameTok),
		Name:     nameTok.Value,
		Params:   params,
		Body:     p.parseBlock(),
	}
}

// struct_def = 'struct' 'IDENTIFIER' '{' {'IDENTIFIER' ';' | func_def} '}'
func (p *Parser) parseStructDef() ast.Node {
	p.eat(STRUCT)
	nameTok := p.eat(IDENTIFIER)
	sdef := &ast.StructDef{NodeBase: base(nameTok), Name: nameTok.Value}

	p.eat(LBRACE)
	for !p.got(RBRACE) {
		if p.got(FUNC) {
			sdef.Methods = append(sdef.Methods, p.parseFuncDef())
			continue
		}

		sdef.Fields = append(sdef.Fields, p.eat(IDENTIFIER).Value)
		p.eat(SEMICOLON)
	}
	p.eat(RBRACE)

	return sdef
}

// enum_def = 'enum' 'IDENTIFIER' '{' [enum_member {',' enum_member} [',']] '}'
// enum_member = 'IDENTIFIER' ['=' ['-'] 'NUMLIT']
func (p *Parser) parseEnumDef() ast.Node {
	p.eat(ENUM)
	nameTok := p.eat(IDENTIFIER)
	edef := &ast.EnumDef{NodeBase: base(nameTok), Name: nameTok.Value}

	// the name is known as an enum from here on so that `Name.Member` parses as
	// an enum access
	p.enums[nameTok.Value] = struct{}{}

	p.eat(LBRACE)
	for !p.got(RBRACE) {
		member := ast.EnumMember{Name: p.eat(IDENTIFIER).Value}

		if p.got(ASSIGN) {
			p.next()

			negate := p.got(MINUS)
			if negate {
				p.next()
			}

			valueTok := p.eat(NUMLIT)
			value, err := strconv.Atoi(valueTok.Value)
			if err != nil {
				p.raiseOn(valueTok, "enum value must be an integer")
			}

			if negate {
				value = -value
			}

			member.Value = &value
		}

		edef.Members = append(edef.Members, member)

		if p.got(COMMA) {
			p.next()
		} else {
			break
		}
	}
	p.eat(RBRACE)

	return edef
}
