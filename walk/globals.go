package walk

import (
	"cfgs/ast"
	"cfgs/logging"
)

// VisitGlobals runs the declarations-only pass over a program: declarations,
// global assignments and imports are executed and every other statement is
// skipped.  It is used to load imported files.
func (in *Interpreter) VisitGlobals(node ast.Node) error {
	switch v := node.(type) {
	case *ast.Block:
		for _, stmt := range v.Stmts {
			if err := in.VisitGlobals(stmt); err != nil {
				return err
			}
		}
	case *ast.EnumDef:
		return in.defineEnum(v)
	case *ast.FuncDef:
		return in.defineFunc(v)
	case *ast.StructDef:
		return in.defineStruct(v)
	case *ast.Assign:
		return in.assign(v)
	case *ast.Import:
		return in.importFile(v.FileName, v.Position())
	}

	return nil
}

// importFile loads the declarations of a file.  Files are identified by their
// absolute path: importing a file a second time has no effect.
func (in *Interpreter) importFile(path string, pos *logging.TextPosition) error {
	abspath, err := in.resolvePath(path)
	if err != nil {
		return logging.AtPosition(err, pos)
	}

	if _, ok := in.imported[abspath]; ok {
		return nil
	}

	logging.LogInfo("Import", abspath)

	// files which cannot be read or parsed are not marked so a later import
	// can retry them
	block, err := in.parseFile(abspath)
	if err != nil {
		return logging.AtPosition(err, pos)
	}

	// the file is marked before its declarations are loaded so import cycles
	// terminate
	in.imported[abspath] = struct{}{}

	return logging.InFile(in.VisitGlobals(block), abspath)
}

// -----------------------------------------------------------------------------

// defineFunc registers a function.
func (in *Interpreter) defineFunc(fdef *ast.FuncDef) error {
	if _, ok := in.funcs[fdef.Name]; ok {
		return logging.NewFault(logging.LMKDef, fdef.Position(), "function `%s` is defined multiple times", fdef.Name)
	}

	seen := make(map[string]struct{}, len(fdef.Params))
	for _, param := range fdef.Params {
		if _, ok := seen[param]; ok {
			return logging.NewFault(logging.LMKDef, fdef.Position(), "function `%s` has multiple parameters named `%s`", fdef.Name, param)
		}

		seen[param] = struct{}{}
	}

	in.funcs[fdef.Name] = fdef
	return nil
}

// defineStruct registers a struct.
func (in *Interpreter) defineStruct(sdef *ast.StructDef) error {
	if _, ok := in.structs[sdef.Name]; ok {
		return logging.NewFault(logging.LMKDef, sdef.Position(), "struct `%s` is defined multiple times", sdef.Name)
	}

	seen := make(map[string]struct{}, len(sdef.Fields))
	for _, field := range sdef.Fields {
		if _, ok := seen[field]; ok {
			return logging.NewFault(logging.LMKDef, sdef.Position(), "struct `%s` has multiple fields named `%s`", sdef.Name, field)
		}

		seen[field] = struct{}{}
	}

	in.structs[sdef.Name] = sdef
	return nil
}

// defineEnum registers an enum and binds it to a variable of the same name.
func (in *Interpreter) defineEnum(edef *ast.EnumDef) error {
	if _, ok := in.enums[edef.Name]; ok {
		return logging.NewFault(logging.LMKDef, edef.Position(), "enum `%s` is defined multiple times", edef.Name)
	}

	ed, err := NewEnumDef(edef.Name, edef.Members)
	if err != nil {
		return logging.AtPosition(err, edef.Position())
	}

	in.enums[edef.Name] = ed
	in.setVar(edef.Name, ed)
	return nil
}
