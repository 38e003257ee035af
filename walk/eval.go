package walk

import (
	"strings"

	"cfgs/ast"
	"cfgs/logging"
)

// Eval evaluates an expression.
func (in *Interpreter) Eval(node ast.Node) (Value, error) {
	return in.eval(node)
}

// eval evaluates an expression.
func (in *Interpreter) eval(node ast.Node) (Value, error) {
	switch v := node.(type) {
	case *ast.NumberLit:
		return Number(v.Value), nil
	case *ast.StringLit:
		return String(v.Value), nil
	case *ast.CharLit:
		return Char(v.Value), nil
	case *ast.BoolLit:
		return Bool(v.Value), nil
	case *ast.NullLit:
		return Null{}, nil
	case *ast.Var:
		if val, ok := in.Lookup(v.Name); ok {
			return val, nil
		}

		return nil, logging.NewFault(logging.LMKName, v.Position(), "variable `%s` is not defined", v.Name)
	case *ast.ArrayLit:
		elems := make([]Value, len(v.Elements))
		for i, elem := range v.Elements {
			val, err := in.eval(elem)
			if err != nil {
				return nil, err
			}

			elems[i] = val
		}

		return NewList(elems...), nil
	case *ast.ArrayAccess:
		return in.evalAccess(v)
	case *ast.Slice:
		return in.evalSlice(v)
	case *ast.MemberAccess:
		return in.evalMember(v)
	case *ast.EnumAccess:
		ed, ok := in.enums[v.EnumName]
		if !ok {
			return nil, logging.NewFault(logging.LMKName, v.Position(), "enum `%s` is not defined", v.EnumName)
		}

		if member, ok := ed.Member(v.MemberName); ok {
			return member, nil
		}

		return nil, logging.NewFault(logging.LMKName, v.Position(), "enum `%s` has no member `%s`", v.EnumName, v.MemberName)
	case *ast.StructInstance:
		sdef, ok := in.structs[v.StructName]
		if !ok {
			return nil, logging.NewFault(logging.LMKName, v.Position(), "struct `%s` is not defined", v.StructName)
		}

		args, err := in.evalArgs(v.FieldValues)
		if err != nil {
			return nil, err
		}

		return newStructInstance(sdef, args), nil
	case *ast.FuncCall:
		return in.evalCall(v)
	case *ast.BinOp:
		return in.evalBinOp(v)
	case *ast.UnaryOp:
		return in.evalUnaryOp(v)
	}

	return nil, logging.NewFault(logging.LMKSyntax, node.Position(), "statement used as an expression")
}

// evalArgs evaluates a list of expressions left to right.
func (in *Interpreter) evalArgs(exprs []ast.Node) ([]Value, error) {
	vals := make([]Value, len(exprs))
	for i, expr := range exprs {
		val, err := in.eval(expr)
		if err != nil {
			return nil, err
		}

		vals[i] = val
	}

	return vals, nil
}

// evalCond evaluates a condition to a boolean.
func (in *Interpreter) evalCond(node ast.Node) (bool, error) {
	val, err := in.eval(node)
	if err != nil {
		return false, err
	}

	b, err := Truthy(val)
	return b, logging.AtPosition(err, node.Position())
}

// evalIndex evaluates an index checking it against the length of its target.
func (in *Interpreter) evalIndex(node ast.Node, length int) (int, error) {
	val, err := in.eval(node)
	if err != nil {
		return 0, err
	}

	ndx, err := toIndex(val)
	if err != nil {
		return 0, logging.AtPosition(err, node.Position())
	}

	if ndx < 0 || ndx >= length {
		return 0, logging.NewFault(logging.LMKRange, node.Position(), "index %d out of bounds for length %d", ndx, length)
	}

	return ndx, nil
}

// -----------------------------------------------------------------------------

// evalAccess evaluates an index into a list or a string.
func (in *Interpreter) evalAccess(aa *ast.ArrayAccess) (Value, error) {
	if aa.Index == nil {
		return nil, logging.NewFault(logging.LMKTyping, aa.Position(), "empty brackets can only be used to append")
	}

	target, err := in.eval(aa.Array)
	if err != nil {
		return nil, err
	}

	switch tv := target.(type) {
	case *List:
		ndx, err := in.evalIndex(aa.Index, len(tv.Elems))
		if err != nil {
			return nil, err
		}

		return tv.Elems[ndx], nil
	case String:
		runes := []rune(string(tv))
		ndx, err := in.evalIndex(aa.Index, len(runes))
		if err != nil {
			return nil, err
		}

		return Char(runes[ndx]), nil
	}

	return nil, logging.NewFault(logging.LMKTyping, aa.Position(), "cannot index a value of type %s", TypeName(target))
}

// evalSlice evaluates a slice of a list (which is copied) or a string.
func (in *Interpreter) evalSlice(s *ast.Slice) (Value, error) {
	target, err := in.eval(s.Target)
	if err != nil {
		return nil, err
	}

	switch tv := target.(type) {
	case *List:
		start, end, err := in.evalSliceBounds(s, len(tv.Elems))
		if err != nil {
			return nil, err
		}

		elems := make([]Value, end-start)
		copy(elems, tv.Elems[start:end])
		return NewList(elems...), nil
	case String:
		runes := []rune(string(tv))
		start, end, err := in.evalSliceBounds(s, len(runes))
		if err != nil {
			return nil, err
		}

		return String(runes[start:end]), nil
	}

	return nil, logging.NewFault(logging.LMKTyping, s.Position(), "cannot slice a value of type %s", TypeName(target))
}

// evalSliceBounds evaluates the bounds of a slice.  Omitted bounds default to
// the whole target and out of range bounds are clamped to it.
func (in *Interpreter) evalSliceBounds(s *ast.Slice, length int) (int, int, error) {
	start, end := 0, length

	if s.Start != nil {
		val, err := in.eval(s.Start)
		if err != nil {
			return 0, 0, err
		}

		if start, err = toIndex(val); err != nil {
			return 0, 0, logging.AtPosition(err, s.Start.Position())
		}
	}

	if s.End != nil {
		val, err := in.eval(s.End)
		if err != nil {
			return 0, 0, err
		}

		if end, err = toIndex(val); err != nil {
			return 0, 0, logging.AtPosition(err, s.End.Position())
		}
	}

	if start < 0 {
		start = 0
	}

	if end > length {
		end = length
	}

	if start > end {
		return 0, 0, logging.NewFault(logging.LMKRange, s.Position(), "invalid slice bounds [%d:%d] for length %d", start, end, length)
	}

	return start, end, nil
}

// evalMember evaluates a struct field or an enum member.
func (in *Interpreter) evalMember(ma *ast.MemberAccess) (Value, error) {
	obj, err := in.eval(ma.Object)
	if err != nil {
		return nil, err
	}

	switch ov := obj.(type) {
	case *StructInstance:
		if val, ok := ov.Field(ma.Member); ok {
			return val, nil
		}

		return nil, logging.NewFault(logging.LMKName, ma.Position(), "struct `%s` has no field `%s`", ov.Name, ma.Member)
	case *EnumDef:
		if member, ok := ov.Member(ma.Member); ok {
			return member, nil
		}

		return nil, logging.NewFault(logging.LMKName, ma.Position(), "enum `%s` has no member `%s`", ov.Name, ma.Member)
	}

	return nil, logging.NewFault(logging.LMKTyping, ma.Position(), "cannot access member `%s` of a value of type %s", ma.Member, TypeName(obj))
}

// -----------------------------------------------------------------------------

// evalCall evaluates a function call.  Built-in functions take priority over
// user functions.
func (in *Interpreter) evalCall(fc *ast.FuncCall) (Value, error) {
	if builtin, ok := in.builtins[strings.ToLower(fc.Name)]; ok {
		args, err := in.evalArgs(fc.Args)
		if err != nil {
			return nil, err
		}

		val, err := builtin(in, args)
		if err != nil {
			return nil, logging.AtPosition(logging.AsFault(err, logging.LMKResource), fc.Position())
		}

		return val, nil
	}

	fdef, ok := in.funcs[fc.Name]
	if !ok {
		return nil, logging.NewFault(logging.LMKName, fc.Position(), "function `%s` is not defined", fc.Name)
	}

	args, err := in.evalArgs(fc.Args)
	if err != nil {
		return nil, err
	}

	val, err := in.callFunction(fdef, args)
	return val, logging.AtPosition(err, fc.Position())
}

// CallFunctionByName calls a user function with a list of arguments.
func (in *Interpreter) CallFunctionByName(name string, args []Value) (Value, error) {
	fdef, ok := in.funcs[name]
	if !ok {
		return nil, logging.NewFault(logging.LMKName, nil, "function `%s` is not defined", name)
	}

	return in.callFunction(fdef, args)
}

// callFunction invokes a user function.  Parameters are bound positionally in
// a new scope: missing arguments are null and extra arguments are ignored.
func (in *Interpreter) callFunction(fdef *ast.FuncDef, args []Value) (Value, error) {
	if in.callDepth >= in.maxCallDepth {
		return nil, logging.NewFault(
			logging.LMKResource,
			nil,
			"maximum call depth of %d exceeded calling `%s`",
			in.maxCallDepth,
			fdef.Name,
		)
	}

	in.callDepth++
	in.pushScope()
	defer func() {
		in.popScope()
		in.callDepth--
	}()

	for i, param := range fdef.Params {
		if i < len(args) {
			in.declare(param, args[i])
		} else {
			in.declare(param, Null{})
		}
	}

	sig, err := in.exec(fdef.Body)
	if err != nil {
		return nil, err
	}

	switch sig.kind {
	case sigReturn:
		return sig.value, nil
	case sigBreak, sigContinue:
		return nil, sig.misuse()
	}

	return Null{}, nil
}
