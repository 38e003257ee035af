package walk

import (
	"math"

	"cfgs/ast"
	"cfgs/logging"
	"cfgs/syntax"
)

// evalBinOp evaluates a binary operator.  `&&` and `||` short-circuit.
func (in *Interpreter) evalBinOp(b *ast.BinOp) (Value, error) {
	lhs, err := in.eval(b.Lhs)
	if err != nil {
		return nil, err
	}

	if b.Op == syntax.AND || b.Op == syntax.OR {
		lb, err := Truthy(lhs)
		if err != nil {
			return nil, logging.AtPosition(err, b.Lhs.Position())
		}

		// the left operand decides the result
		if lb == (b.Op == syntax.OR) {
			return Bool(lb), nil
		}

		rb, err := in.evalCond(b.Rhs)
		return Bool(rb), err
	}

	rhs, err := in.eval(b.Rhs)
	if err != nil {
		return nil, err
	}

	result, err := BinaryOp(b.Op, lhs, rhs)
	return result, logging.AtPosition(err, b.Position())
}

// BinaryOp applies a non-short-circuiting binary operator to two values.  Null
// operands are treated as zero by every operator except `==` and `!=`.
func BinaryOp(op int, lhs, rhs Value) (Value, error) {
	switch op {
	case syntax.EQ:
		return Bool(Equal(lhs, rhs)), nil
	case syntax.NEQ:
		return Bool(!Equal(lhs, rhs)), nil
	}

	if _, ok := lhs.(Null); ok {
		lhs = Number(0)
	}

	if _, ok := rhs.(Null); ok {
		rhs = Number(0)
	}

	switch op {
	case syntax.PLUS:
		return add(lhs, rhs)
	case syntax.MINUS, syntax.STAR, syntax.DIVIDE, syntax.MOD, syntax.POWER:
		x, y, err := arithOperands(op, lhs, rhs)
		if err != nil {
			return nil, err
		}

		switch op {
		case syntax.MINUS:
			return Number(x - y), nil
		case syntax.STAR:
			return Number(x * y), nil
		case syntax.DIVIDE:
			return Number(x / y), nil
		case syntax.MOD:
			return Number(math.Mod(x, y)), nil
		default:
			return Number(math.Pow(x, y)), nil
		}
	case syntax.LSHIFT, syntax.RSHIFT, syntax.AMP, syntax.BXOR, syntax.PIPE:
		x, y, err := arithOperands(op, lhs, rhs)
		if err != nil {
			return nil, err
		}

		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, logging.NewFault(logging.LMKRange, nil, "operands of %s must be finite", syntax.KindName(op))
		}

		a, b := int64(x), int64(y)
		switch op {
		case syntax.LSHIFT:
			return Number(a << uint(b&63)), nil
		case syntax.RSHIFT:
			return Number(a >> uint(b&63)), nil
		case syntax.AMP:
			return Number(a & b), nil
		case syntax.BXOR:
			return Number(a ^ b), nil
		default:
			return Number(a | b), nil
		}
	case syntax.LT, syntax.LTEQ, syntax.GT, syntax.GTEQ:
		return compare(op, lhs, rhs)
	}

	return nil, logging.NewFault(logging.LMKSyntax, nil, "unknown binary operator %s", syntax.KindName(op))
}

// add implements `+`: if either operand is a string or a list the textual forms
// of the operands are concatenated, otherwise they are added numerically.
func add(lhs, rhs Value) (Value, error) {
	_, lstr := lhs.(String)
	_, rstr := rhs.(String)
	_, llist := lhs.(*List)
	_, rlist := rhs.(*List)

	if lstr || rstr || llist || rlist {
		return String(Format(lhs) + Format(rhs)), nil
	}

	x, err := ToNumber(lhs)
	if err != nil {
		return nil, operandError(syntax.PLUS, lhs, rhs)
	}

	y, err := ToNumber(rhs)
	if err != nil {
		return nil, operandError(syntax.PLUS, lhs, rhs)
	}

	return Number(x + y), nil
}

// arithOperands extracts the numeric values of the operands of an arithmetic
// operator.  Only numbers, chars and enum members are numeric.
func arithOperands(op int, lhs, rhs Value) (float64, float64, error) {
	x, ok := numericValue(lhs)
	if !ok {
		return 0, 0, operandError(op, lhs, rhs)
	}

	y, ok := numericValue(rhs)
	if !ok {
		return 0, 0, operandError(op, lhs, rhs)
	}

	return x, y, nil
}

// numericValue returns the numeric value of a number, char or enum member.
func numericValue(v Value) (float64, bool) {
	switch tv := v.(type) {
	case Number:
		return float64(tv), true
	case Char:
		return float64(tv), true
	case EnumMember:
		return float64(tv.Value), true
	}

	return 0, false
}

// compare implements the relational operators over numeric operands or over
// two strings (compared by code point).
func compare(op int, lhs, rhs Value) (Value, error) {
	var c int

	if ls, ok := lhs.(String); ok {
		rs, ok := rhs.(String)
		if !ok {
			return nil, operandError(op, lhs, rhs)
		}

		switch {
		case ls < rs:
			c = -1
		case ls > rs:
			c = 1
		}
	} else {
		x, y, err := arithOperands(op, lhs, rhs)
		if err != nil {
			return nil, err
		}

		// comparisons involving NaN are always false
		if math.IsNaN(x) || math.IsNaN(y) {
			return Bool(false), nil
		}

		switch {
		case x < y:
			c = -1
		case x > y:
			c = 1
		}
	}

	switch op {
	case syntax.LT:
		return Bool(c < 0), nil
	case syntax.LTEQ:
		return Bool(c <= 0), nil
	case syntax.GT:
		return Bool(c > 0), nil
	default:
		return Bool(c >= 0), nil
	}
}

func operandError(op int, lhs, rhs Value) error {
	return typeErrorf("operator %s cannot be applied to %s and %s", syntax.KindName(op), TypeName(lhs), TypeName(rhs))
}

// -----------------------------------------------------------------------------

// evalUnaryOp evaluates a unary operator.
func (in *Interpreter) evalUnaryOp(u *ast.UnaryOp) (Value, error) {
	switch u.Op {
	case syntax.MINUS:
		val, err := in.eval(u.Operand)
		if err != nil {
			return nil, err
		}

		n, err := ToNumber(val)
		if err != nil {
			return nil, logging.AtPosition(err, u.Position())
		}

		return Number(-n), nil
	case syntax.NOT:
		b, err := in.evalCond(u.Operand)
		if err != nil {
			return nil, err
		}

		return Bool(!b), nil
	case syntax.INCREM, syntax.DECREM:
		return in.evalIncDec(u)
	}

	return nil, logging.NewFault(logging.LMKSyntax, u.Position(), "unknown unary operator %s", syntax.KindName(u.Op))
}

// evalIncDec evaluates an increment or a decrement.  The prefix forms produce
// the new value and the postfix forms the old value.
func (in *Interpreter) evalIncDec(u *ast.UnaryOp) (Value, error) {
	valid := false
	switch operand := u.Operand.(type) {
	case *ast.Var, *ast.MemberAccess:
		valid = true
	case *ast.ArrayAccess:
		valid = operand.Index != nil
	}

	if !valid {
		return nil, logging.NewFault(
			logging.LMKTyping,
			u.Position(),
			"%s can only be applied to variables, list elements and struct fields",
			syntax.KindName(u.Op),
		)
	}

	lv, err := in.resolve(u.Operand)
	if err != nil {
		return nil, err
	}

	old, err := lv.get()
	if err != nil {
		return nil, err
	}

	x, err := ToNumber(old)
	if err != nil {
		return nil, logging.AtPosition(err, u.Position())
	}

	nx := x + 1
	if u.Op == syntax.DECREM {
		nx = x - 1
	}

	lv.set(Number(nx))

	if u.IsPrefix {
		return Number(nx), nil
	}

	return Number(x), nil
}
