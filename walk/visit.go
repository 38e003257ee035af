package walk

import (
	"io"

	"cfgs/ast"
	"cfgs/logging"
)

// Visit executes a statement (usually the root block of a program).  Control
// signals that escape it are usage errors.
func (in *Interpreter) Visit(node ast.Node) error {
	sig, err := in.exec(node)
	if err != nil {
		return err
	}

	return sig.misuse()
}

// exec executes a single statement.
func (in *Interpreter) exec(node ast.Node) (signal, error) {
	switch v := node.(type) {
	case *ast.Block:
		for _, stmt := range v.Stmts {
			if sig, err := in.exec(stmt); err != nil || sig.kind != sigNone {
				return sig, err
			}
		}
	case *ast.Print:
		return signal{}, in.execPrint(v)
	case *ast.Append:
		return signal{}, in.execAppend(v)
	case *ast.ArrayDelete:
		return signal{}, in.execDelete(v)
	case *ast.Assign:
		return signal{}, in.assign(v)
	case *ast.Try:
		return in.execTry(v)
	case *ast.Throw:
		val, err := in.eval(v.Value)
		if err != nil {
			return signal{}, err
		}

		return signal{}, logging.NewFault(logging.LMKUser, v.Position(), "%s", Format(val))
	case *ast.Match:
		return in.execMatch(v)
	case *ast.If:
		cond, err := in.evalCond(v.Cond)
		if err != nil {
			return signal{}, err
		}

		if cond {
			return in.exec(v.Then)
		}

		if v.Else != nil {
			return in.exec(v.Else)
		}
	case *ast.While:
		return in.execWhile(v)
	case *ast.Break:
		return signal{kind: sigBreak, pos: v.Position()}, nil
	case *ast.Continue:
		return signal{kind: sigContinue, pos: v.Position()}, nil
	case *ast.Return:
		var val Value = Null{}
		if v.Value != nil {
			var err error
			if val, err = in.eval(v.Value); err != nil {
				return signal{}, err
			}
		}

		return signal{kind: sigReturn, value: val, pos: v.Position()}, nil
	case *ast.Import:
		return signal{}, in.importFile(v.FileName, v.Position())
	case *ast.FuncDef:
		return signal{}, in.defineFunc(v)
	case *ast.StructDef:
		return signal{}, in.defineStruct(v)
	case *ast.EnumDef:
		return signal{}, in.defineEnum(v)
	default:
		// expression statements: their value is discarded
		_, err := in.eval(node)
		return signal{}, err
	}

	return signal{}, nil
}

// -----------------------------------------------------------------------------

// execPrint writes the formatted value of a print statement.
func (in *Interpreter) execPrint(p *ast.Print) error {
	val, err := in.eval(p.Value)
	if err != nil {
		return err
	}

	text := Format(val)
	if p.Newline {
		text += "\n"
	}

	if _, err := io.WriteString(in.out, text); err != nil {
		return logging.NewFault(logging.LMKResource, p.Position(), "unable to write output: %s", err)
	}

	return nil
}

// execAppend appends a value to a list.
func (in *Interpreter) execAppend(a *ast.Append) error {
	target, err := in.eval(a.Array)
	if err != nil {
		return err
	}

	list, ok := target.(*List)
	if !ok {
		return logging.NewFault(logging.LMKTyping, a.Position(), "cannot append to a value of type %s", TypeName(target))
	}

	val, err := in.eval(a.Value)
	if err != nil {
		return err
	}

	list.Elems = append(list.Elems, val)
	return nil
}

// execDelete removes an element from a list or clears it.
func (in *Interpreter) execDelete(d *ast.ArrayDelete) error {
	target, err := in.eval(d.Array)
	if err != nil {
		return err
	}

	list, ok := target.(*List)
	if !ok {
		return logging.NewFault(logging.LMKTyping, d.Position(), "cannot delete from a value of type %s", TypeName(target))
	}

	if d.Index == nil {
		list.Elems = list.Elems[:0]
		return nil
	}

	ndx, err := in.evalIndex(d.Index, len(list.Elems))
	if err != nil {
		return err
	}

	list.Elems = append(list.Elems[:ndx], list.Elems[ndx+1:]...)
	return nil
}

// execTry executes a try statement.  Catch blocks intercept errors but never
// control signals.  The finally block always runs; an error or signal it
// produces replaces that of the try and catch blocks.
func (in *Interpreter) execTry(t *ast.Try) (signal, error) {
	sig, err := in.exec(t.Body)

	if err != nil && t.Catch != nil {
		if t.CatchVar != "" {
			in.setVar(t.CatchVar, String(logging.AsFault(err, logging.LMKUser).Message))
		}

		sig, err = in.exec(t.Catch)
	}

	if t.Finally != nil {
		fsig, ferr := in.exec(t.Finally)
		if ferr != nil || fsig.kind != sigNone {
			return fsig, ferr
		}
	}

	return sig, err
}

// execMatch runs the first case with a value equal to the scrutinee or else
// the default case.
func (in *Interpreter) execMatch(m *ast.Match) (signal, error) {
	val, err := in.eval(m.Value)
	if err != nil {
		return signal{}, err
	}

	for _, mcase := range m.Cases {
		for _, caseExpr := range mcase.Values {
			caseVal, err := in.eval(caseExpr)
			if err != nil {
				return signal{}, err
			}

			if Equal(caseVal, val) {
				return in.exec(mcase.Body)
			}
		}
	}

	if m.Default != nil {
		return in.exec(m.Default)
	}

	return signal{}, nil
}

// execWhile executes a while loop intercepting break and continue signals.
func (in *Interpreter) execWhile(w *ast.While) (signal, error) {
	for {
		cond, err := in.evalCond(w.Cond)
		if err != nil || !cond {
			return signal{}, err
		}

		sig, err := in.exec(w.Body)
		if err != nil {
			return signal{}, err
		}

		switch sig.kind {
		case sigBreak:
			return signal{}, nil
		case sigReturn:
			return sig, nil
		}
	}
}
