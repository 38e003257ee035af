package syntax

import (
	"testing"

	"cfgs/ast"
	"cfgs/logging"
)

func mustParse(t *testing.T, src string) *ast.Block {
	t.Helper()
	block, err := ParseSource(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return block
}

func mustFail(t *testing.T, src string) *logging.Fault {
	t.Helper()
	_, err := ParseSource(src)
	if err == nil {
		t.Fatalf("expected parse error for %q", src)
	}
	f, ok := err.(*logging.Fault)
	if !ok {
		t.Fatalf("expected *logging.Fault, got %T", err)
	}
	if f.Kind != logging.LMKSyntax {
		t.Fatalf("expected syntax fault, got %s", f.KindName())
	}
	return f
}

func singleStmt(t *testing.T, src string) ast.Node {
	t.Helper()
	block := mustParse(t, src)
	if len(block.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(block.Stmts))
	}
	return block.Stmts[0]
}

func TestParseEmptyProgram(t *testing.T) {
	if block := mustParse(t, "  # nothing\n"); len(block.Stmts) != 0 {
		t.Fatalf("expected no statements, got %d", len(block.Stmts))
	}
}

func TestParsePrecedence(t *testing.T) {
	stmt := singleStmt(t, `x = 1 + 2 * 3;`)
	assign, ok := stmt.(*ast.Assign)
	if !ok {
		t.Fatalf("expected *ast.Assign, got %T", stmt)
	}
	add, ok := assign.Value.(*ast.BinOp)
	if !ok || add.Op != PLUS {
		t.Fatalf("expected + at the root, got %#v", assign.Value)
	}
	if mul, ok := add.Rhs.(*ast.BinOp); !ok || mul.Op != STAR {
		t.Fatalf("expected * on the right, got %#v", add.Rhs)
	}
}

func TestParseLeftAssociative(t *testing.T) {
	expr, err := ParseExpr(`10 - 4 - 3`)
	if err != nil {
		t.Fatal(err)
	}
	root := expr.(*ast.BinOp)
	if _, ok := root.Lhs.(*ast.BinOp); !ok {
		t.Fatalf("expected (10 - 4) - 3, got rhs %T", root.Rhs)
	}
}

func TestParsePowerRightAssociative(t *testing.T) {
	expr, err := ParseExpr(`2 ** 3 ** 2`)
	if err != nil {
		t.Fatal(err)
	}
	root := expr.(*ast.BinOp)
	if _, ok := root.Rhs.(*ast.BinOp); !ok {
		t.Fatalf("expected 2 ** (3 ** 2), got lhs %T", root.Lhs)
	}
	if _, ok := root.Lhs.(*ast.NumberLit); !ok {
		t.Fatalf("expected number on the left, got %T", root.Lhs)
	}
}

func TestParseLogicalBindsLooserThanBitwise(t *testing.T) {
	expr, err := ParseExpr(`a || b && c | d`)
	if err != nil {
		t.Fatal(err)
	}
	or := expr.(*ast.BinOp)
	if or.Op != OR {
		t.Fatalf("expected || at the root, got %s", KindName(or.Op))
	}
	and := or.Rhs.(*ast.BinOp)
	if and.Op != AND {
		t.Fatalf("expected && below ||, got %s", KindName(and.Op))
	}
	if pipe := and.Rhs.(*ast.BinOp); pipe.Op != PIPE {
		t.Fatalf("expected | below &&, got %s", KindName(pipe.Op))
	}
}

func TestParseBinOpPositionIsOperator(t *testing.T) {
	expr, err := ParseExpr(`a  + b`)
	if err != nil {
		t.Fatal(err)
	}
	if pos := expr.Position(); pos.StartLn != 1 || pos.StartCol != 4 {
		t.Fatalf("expected operator position 1:4, got %d:%d", pos.StartLn, pos.StartCol)
	}
}

func TestParseUnary(t *testing.T) {
	expr, err := ParseExpr(`-x++`)
	if err != nil {
		t.Fatal(err)
	}
	neg := expr.(*ast.UnaryOp)
	if neg.Op != MINUS || !neg.IsPrefix {
		t.Fatalf("expected prefix -, got %#v", neg)
	}
	post := neg.Operand.(*ast.UnaryOp)
	if post.Op != INCREM || post.IsPrefix {
		t.Fatalf("expected postfix ++, got %#v", post)
	}
}

func TestParseAppendAndAssignTargets(t *testing.T) {
	block := mustParse(t, `a[] = 1; a[0] = 2; p.x = 3; a[1:2] = [4]; x = 5;`)
	if _, ok := block.Stmts[0].(*ast.Append); !ok {
		t.Fatalf("expected *ast.Append, got %T", block.Stmts[0])
	}
	for i, stmt := range block.Stmts[1:] {
		if _, ok := stmt.(*ast.Assign); !ok {
			t.Fatalf("statement %d: expected *ast.Assign, got %T", i+1, stmt)
		}
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	mustFail(t, `f() = 1;`)
	mustFail(t, `1 = 2;`)
}

func TestParseSliceForms(t *testing.T) {
	tests := []struct {
		src             string
		hasStart, hasEnd bool
	}{
		{`a[1:2]`, true, true},
		{`a[:2]`, false, true},
		{`a[1:]`, true, false},
		{`a[:]`, false, false},
	}

	for _, test := range tests {
		expr, err := ParseExpr(test.src)
		if err != nil {
			t.Fatalf("%s: %v", test.src, err)
		}
		slice, ok := expr.(*ast.Slice)
		if !ok {
			t.Fatalf("%s: expected *ast.Slice, got %T", test.src, expr)
		}
		if (slice.Start != nil) != test.hasStart || (slice.End != nil) != test.hasEnd {
			t.Fatalf("%s: wrong bounds %v %v", test.src, slice.Start, slice.End)
		}
	}
}

func TestParseAccessChain(t *testing.T) {
	expr, err := ParseExpr(`f(1)[2].name[3]`)
	if err != nil {
		t.Fatal(err)
	}
	outer := expr.(*ast.ArrayAccess)
	member := outer.Array.(*ast.MemberAccess)
	if member.Member != "name" {
		t.Fatalf("expected member `name`, got %q", member.Member)
	}
	inner := member.Object.(*ast.ArrayAccess)
	if call := inner.Array.(*ast.FuncCall); call.Name != "f" || len(call.Args) != 1 {
		t.Fatalf("unexpected call %#v", call)
	}
}

func TestParseDelete(t *testing.T) {
	block := mustParse(t, `delete a[1]; delete a;`)
	withIndex := block.Stmts[0].(*ast.ArrayDelete)
	if withIndex.Index == nil {
		t.Fatal("expected an index")
	}
	if _, ok := withIndex.Array.(*ast.Var); !ok {
		t.Fatalf("expected var array, got %T", withIndex.Array)
	}
	if clear := block.Stmts[1].(*ast.ArrayDelete); clear.Index != nil {
		t.Fatal("expected no index")
	}
}

func TestParseIfElseChain(t *testing.T) {
	stmt := singleStmt(t, `if (a) { x = 1; } else if (b) { x = 2; } else { x = 3; }`)
	outer := stmt.(*ast.If)
	inner, ok := outer.Else.(*ast.If)
	if !ok {
		t.Fatalf("expected else-if, got %T", outer.Else)
	}
	if _, ok := inner.Else.(*ast.Block); !ok {
		t.Fatalf("expected final else block, got %T", inner.Else)
	}
}

func TestParseTryForms(t *testing.T) {
	block := mustParse(t, `
try { throw "x"; } catch (e) { print(e); } finally { print(1); }
try { } catch { }
try { } finally { }
`)
	full := block.Stmts[0].(*ast.Try)
	if full.CatchVar != "e" || full.Catch == nil || full.Finally == nil {
		t.Fatalf("unexpected try %#v", full)
	}
	if noVar := block.Stmts[1].(*ast.Try); noVar.CatchVar != "" || noVar.Catch == nil {
		t.Fatalf("unexpected try %#v", noVar)
	}
	if onlyFinally := block.Stmts[2].(*ast.Try); onlyFinally.Catch != nil || onlyFinally.Finally == nil {
		t.Fatalf("unexpected try %#v", onlyFinally)
	}
}

func TestParseMatch(t *testing.T) {
	stmt := singleStmt(t, `match (x) { case 1, 2 { print("a"); } case 3 { } default { print("d"); } }`)
	m := stmt.(*ast.Match)
	if len(m.Cases) != 2 || len(m.Cases[0].Values) != 2 || m.Default == nil {
		t.Fatalf("unexpected match %#v", m)
	}
}

func TestParseMatchRejectsDuplicateDefault(t *testing.T) {
	mustFail(t, `match (x) { default { } default { } }`)
}

func TestParseFuncDef(t *testing.T) {
	stmt := singleStmt(t, `func add(a, b) { return a + b; }`)
	fn := stmt.(*ast.FuncDef)
	if fn.Name != "add" || len(fn.Params) != 2 || fn.Params[1] != "b" || len(fn.Body.Stmts) != 1 {
		t.Fatalf("unexpected func %#v", fn)
	}
}

func TestParseStructWithMethods(t *testing.T) {
	stmt := singleStmt(t, `struct Point { x; y; func len() { return 0; } }`)
	sd := stmt.(*ast.StructDef)
	if sd.Name != "Point" || len(sd.Fields) != 2 || len(sd.Methods) != 1 {
		t.Fatalf("unexpected struct %#v", sd)
	}
}

func TestParseEnumDef(t *testing.T) {
	stmt := singleStmt(t, `enum Color { Red, Green = 5, Blue, Dark = -1, }`)
	ed := stmt.(*ast.EnumDef)
	if ed.Name != "Color" || len(ed.Members) != 4 {
		t.Fatalf("unexpected enum %#v", ed)
	}
	if ed.Members[0].Value != nil {
		t.Fatal("expected implicit value for Red")
	}
	if v := ed.Members[1].Value; v == nil || *v != 5 {
		t.Fatalf("expected Green = 5, got %v", v)
	}
	if v := ed.Members[3].Value; v == nil || *v != -1 {
		t.Fatalf("expected Dark = -1, got %v", v)
	}
}

func TestParseEnumAccessOnlyForDeclaredEnums(t *testing.T) {
	block := mustParse(t, `x = Color.Red; enum Color { Red } y = Color.Red;`)
	before := block.Stmts[0].(*ast.Assign).Value
	if _, ok := before.(*ast.MemberAccess); !ok {
		t.Fatalf("expected member access before the declaration, got %T", before)
	}
	after := block.Stmts[2].(*ast.Assign).Value
	ea, ok := after.(*ast.EnumAccess)
	if !ok || ea.EnumName != "Color" || ea.MemberName != "Red" {
		t.Fatalf("expected enum access after the declaration, got %#v", after)
	}
}

func TestParseLiterals(t *testing.T) {
	block := mustParse(t, `print('c'); print(null); print(true); print("s"); print([1, 2]);`)
	wantTypes := []interface{}{&ast.CharLit{}, &ast.NullLit{}, &ast.BoolLit{}, &ast.StringLit{}, &ast.ArrayLit{}}
	for i, stmt := range block.Stmts {
		value := stmt.(*ast.Print).Value
		switch wantTypes[i].(type) {
		case *ast.CharLit:
			if c, ok := value.(*ast.CharLit); !ok || c.Value != 'c' {
				t.Fatalf("statement %d: got %#v", i, value)
			}
		case *ast.NullLit:
			if _, ok := value.(*ast.NullLit); !ok {
				t.Fatalf("statement %d: got %#v", i, value)
			}
		case *ast.BoolLit:
			if b, ok := value.(*ast.BoolLit); !ok || !b.Value {
				t.Fatalf("statement %d: got %#v", i, value)
			}
		case *ast.StringLit:
			if s, ok := value.(*ast.StringLit); !ok || s.Value != "s" {
				t.Fatalf("statement %d: got %#v", i, value)
			}
		case *ast.ArrayLit:
			if a, ok := value.(*ast.ArrayLit); !ok || len(a.Elements) != 2 {
				t.Fatalf("statement %d: got %#v", i, value)
			}
		}
	}
}

func TestParsePrintc(t *testing.T) {
	if p := singleStmt(t, `printc("x");`).(*ast.Print); p.Newline {
		t.Fatal("printc must not add a newline")
	}
	if p := singleStmt(t, `print("x");`).(*ast.Print); !p.Newline {
		t.Fatal("print must add a newline")
	}
}

func TestParseErrorNamesExpectedAndActual(t *testing.T) {
	f := mustFail(t, `print(1));`)
	if f.Message != "expected `;`, got `)`" {
		t.Fatalf("unexpected message %q", f.Message)
	}
	if f.Position == nil || f.Position.StartCol != 9 {
		t.Fatalf("unexpected position %v", f.Position)
	}
	if f.Incomplete {
		t.Fatal("fault should not be incomplete")
	}
}

func TestParseErrorAtEndIsIncomplete(t *testing.T) {
	for _, src := range []string{`func f() {`, `x = 1 +`, `if (x) { print(1);`} {
		if f := mustFail(t, src); !f.Incomplete {
			t.Fatalf("%q: expected incomplete fault, got %v", src, f)
		}
	}
}

func TestParseMalformedNumber(t *testing.T) {
	mustFail(t, `x = 1.2.3;`)
}

func TestParseEmptyCharLiteral(t *testing.T) {
	mustFail(t, `x = '';`)
}

func TestParseExprRejectsTrailingTokens(t *testing.T) {
	if _, err := ParseExpr(`f(1) g`); err == nil {
		t.Fatal("expected an error")
	}
	expr, err := ParseExpr(`add(1, "two")`)
	if err != nil {
		t.Fatal(err)
	}
	if call, ok := expr.(*ast.FuncCall); !ok || len(call.Args) != 2 {
		t.Fatalf("unexpected call %#v", expr)
	}
}
