package walk

import (
	"cfgs/ast"
	"cfgs/logging"
)

// lvalue is a resolved assignment target: a variable, a list element or a
// struct field.  Resolving a target evaluates its subexpressions exactly once.
type lvalue struct {
	in  *Interpreter
	pos *logging.TextPosition

	// set for variables
	name string

	// set for list elements
	list *List
	ndx  int

	// set for struct fields
	inst  *StructInstance
	field string
}

// get reads the current value of the target.
func (lv *lvalue) get() (Value, error) {
	switch {
	case lv.list != nil:
		return lv.list.Elems[lv.ndx], nil
	case lv.inst != nil:
		val, _ := lv.inst.Field(lv.field)
		return val, nil
	}

	if val, ok := lv.in.Lookup(lv.name); ok {
		return val, nil
	}

	return nil, logging.NewFault(logging.LMKName, lv.pos, "variable `%s` is not defined", lv.name)
}

// set writes a new value to the target.
func (lv *lvalue) set(val Value) {
	switch {
	case lv.list != nil:
		lv.list.Elems[lv.ndx] = val
	case lv.inst != nil:
		lv.inst.SetField(lv.field, val)
	default:
		lv.in.setVar(lv.name, val)
	}
}

// resolve resolves an assignment target.
func (in *Interpreter) resolve(target ast.Node) (*lvalue, error) {
	switch v := target.(type) {
	case *ast.Var:
		return &lvalue{in: in, pos: v.Position(), name: v.Name}, nil
	case *ast.ArrayAccess:
		if v.Index == nil {
			break
		}

		arr, err := in.eval(v.Array)
		if err != nil {
			return nil, err
		}

		list, ok := arr.(*List)
		if !ok {
			return nil, logging.NewFault(logging.LMKTyping, v.Position(), "cannot assign to an element of a value of type %s", TypeName(arr))
		}

		ndx, err := in.evalIndex(v.Index, len(list.Elems))
		if err != nil {
			return nil, err
		}

		return &lvalue{in: in, pos: v.Position(), list: list, ndx: ndx}, nil
	case *ast.MemberAccess:
		obj, err := in.eval(v.Object)
		if err != nil {
			return nil, err
		}

		inst, ok := obj.(*StructInstance)
		if !ok {
			return nil, logging.NewFault(logging.LMKTyping, v.Position(), "cannot assign to member `%s` of a value of type %s", v.Member, TypeName(obj))
		}

		if _, ok := inst.Field(v.Member); !ok {
			return nil, logging.NewFault(logging.LMKName, v.Position(), "struct `%s` has no field `%s`", inst.Name, v.Member)
		}

		return &lvalue{in: in, pos: v.Position(), inst: inst, field: v.Member}, nil
	}

	return nil, logging.NewFault(logging.LMKTyping, target.Position(), "invalid assignment target")
}

// -----------------------------------------------------------------------------

// assign executes an assignment.  The value is evaluated before the target.
func (in *Interpreter) assign(a *ast.Assign) error {
	val, err := in.eval(a.Value)
	if err != nil {
		return err
	}

	if s, ok := a.Target.(*ast.Slice); ok {
		return in.assignSlice(s, val)
	}

	lv, err := in.resolve(a.Target)
	if err != nil {
		return err
	}

	lv.set(val)
	return nil
}

// assignSlice replaces a slice of a list or a string with a list or string of
// the same length.  Lists are updated in place; strings are rebuilt and stored
// back to the slice's target.
func (in *Interpreter) assignSlice(s *ast.Slice, val Value) error {
	var lv *lvalue
	var target Value
	var err error

	switch s.Target.(type) {
	case *ast.Var, *ast.ArrayAccess, *ast.MemberAccess:
		if lv, err = in.resolve(s.Target); err != nil {
			return err
		}

		target, err = lv.get()
	default:
		target, err = in.eval(s.Target)
	}

	if err != nil {
		return err
	}

	switch tv := target.(type) {
	case *List:
		start, end, err := in.evalSliceBounds(s, len(tv.Elems))
		if err != nil {
			return err
		}

		repl, ok := val.(*List)
		if !ok {
			return logging.NewFault(logging.LMKTyping, s.Position(), "cannot assign a value of type %s to a slice of a list", TypeName(val))
		}

		if len(repl.Elems) != end-start {
			return sliceLengthError(s, end-start, len(repl.Elems))
		}

		copy(tv.Elems[start:end], repl.Elems)
		return nil
	case String:
		runes := []rune(string(tv))
		start, end, err := in.evalSliceBounds(s, len(runes))
		if err != nil {
			return err
		}

		repl, ok := val.(String)
		if !ok {
			return logging.NewFault(logging.LMKTyping, s.Position(), "cannot assign a value of type %s to a slice of a string", TypeName(val))
		}

		replRunes := []rune(string(repl))
		if len(replRunes) != end-start {
			return sliceLengthError(s, end-start, len(replRunes))
		}

		if lv == nil {
			return logging.NewFault(logging.LMKTyping, s.Position(), "cannot assign to a slice of a temporary string")
		}

		copy(runes[start:end], replRunes)
		lv.set(String(runes))
		return nil
	}

	return logging.NewFault(logging.LMKTyping, s.Position(), "cannot slice a value of type %s", TypeName(target))
}

func sliceLengthError(s *ast.Slice, want, got int) error {
	return logging.NewFault(logging.LMKRange, s.Position(), "slice assignment length mismatch: expected %d elements, got %d", want, got)
}
