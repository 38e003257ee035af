package walk

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cfgs/ast"
	"cfgs/common"
	"cfgs/logging"
	"cfgs/syntax"
)

// Config holds the host collaborators and limits of an interpreter.  Zero
// fields are replaced with defaults.
type Config struct {
	// Stdout receives the output of `print` and `printc`.  Defaults to the
	// process standard output.
	Stdout io.Writer

	// Stdin is read by the console built-ins.  Defaults to the process
	// standard input.
	Stdin io.Reader

	// BaseDir is the directory imports are resolved against.  Defaults to the
	// working directory.
	BaseDir string

	// MaxCallDepth is the maximum depth of nested user function calls.
	MaxCallDepth int
}

// Interpreter executes CFGS programs.  It owns all runtime state: the scope
// stack, the function, struct and enum tables, and the set of imported files.
// An interpreter must not be used from multiple goroutines at once.
type Interpreter struct {
	out     io.Writer
	in      *bufio.Reader
	baseDir string

	// scopes is the scope stack.  The first scope is the global scope.  A
	// scope is pushed for each function invocation only: blocks run in the
	// scope of their enclosing function.
	scopes []map[string]Value

	funcs   map[string]*ast.FuncDef
	structs map[string]*ast.StructDef
	enums   map[string]*EnumDef

	// imported is the set of absolute paths of all loaded files
	imported map[string]struct{}

	// builtins maps lowercased names to built-in functions
	builtins map[string]BuiltinFunc

	callDepth    int
	maxCallDepth int
}

// NewInterpreter creates a new interpreter with an empty global scope and the
// default built-in functions.
func NewInterpreter(cfg Config) *Interpreter {
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}

	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}

	if cfg.BaseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			cfg.BaseDir = wd
		}
	}

	if cfg.MaxCallDepth <= 0 {
		cfg.MaxCallDepth = common.DefaultMaxCallDepth
	}

	in := &Interpreter{
		out:          cfg.Stdout,
		in:           bufio.NewReader(cfg.Stdin),
		baseDir:      cfg.BaseDir,
		scopes:       []map[string]Value{make(map[string]Value)},
		funcs:        make(map[string]*ast.FuncDef),
		structs:      make(map[string]*ast.StructDef),
		enums:        make(map[string]*EnumDef),
		imported:     make(map[string]struct{}),
		builtins:     make(map[string]BuiltinFunc),
		maxCallDepth: cfg.MaxCallDepth,
	}

	for name, fn := range defaultBuiltins {
		in.builtins[name] = fn
	}

	return in
}

// RegisterBuiltin adds or replaces a built-in function.  Built-in names are
// case-insensitive.
func (in *Interpreter) RegisterBuiltin(name string, fn BuiltinFunc) {
	in.builtins[strings.ToLower(name)] = fn
}

// Lookup returns the value of a variable as seen from the current scope.
func (in *Interpreter) Lookup(name string) (Value, bool) {
	for i := len(in.scopes) - 1; i > -1; i-- {
		if v, ok := in.scopes[i][name]; ok {
			return v, true
		}
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// RunSource parses and executes a source text.
func (in *Interpreter) RunSource(src string) error {
	block, err := syntax.ParseSource(src)
	if err != nil {
		return err
	}

	return in.Visit(block)
}

// LoadSource parses a source text and loads only its declarations.
func (in *Interpreter) LoadSource(src string) error {
	block, err := syntax.ParseSource(src)
	if err != nil {
		return err
	}

	return in.VisitGlobals(block)
}

// RunFile parses and executes a source file.  The file counts as imported:
// later imports of it have no effect.
func (in *Interpreter) RunFile(path string) error {
	abspath, err := in.resolvePath(path)
	if err != nil {
		return err
	}

	block, err := in.parseFile(abspath)
	if err != nil {
		return err
	}

	in.imported[abspath] = struct{}{}

	return logging.InFile(in.Visit(block), abspath)
}

// LoadFile loads the declarations of a source file as if it was imported.
func (in *Interpreter) LoadFile(path string) error {
	return in.importFile(path, nil)
}

// resolvePath converts a path to a clean absolute path resolving relative
// paths against the base directory.
func (in *Interpreter) resolvePath(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(in.baseDir, path)
	}

	abspath, err := filepath.Abs(path)
	if err != nil {
		return "", logging.NewFault(logging.LMKImport, nil, "unable to resolve path `%s`: %s", path, err)
	}

	return abspath, nil
}

// parseFile reads and parses a source file.
func (in *Interpreter) parseFile(abspath string) (*ast.Block, error) {
	src, err := os.ReadFile(abspath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, logging.NewFault(logging.LMKImport, nil, "file not found: `%s`", abspath)
		}

		return nil, logging.NewFault(logging.LMKImport, nil, "unable to read `%s`: %s", abspath, err)
	}

	block, err := syntax.ParseSource(string(src))
	return block, logging.InFile(err, abspath)
}

// -----------------------------------------------------------------------------

// pushScope pushes a new local scope.
func (in *Interpreter) pushScope() {
	in.scopes = append(in.scopes, make(map[string]Value))
}

// popScope pops the innermost scope.
func (in *Interpreter) popScope() {
	in.scopes = in.scopes[:len(in.scopes)-1]
}

// setVar assigns to the innermost existing variable of the given name or, if
// there is none, defines a new variable in the current scope.
func (in *Interpreter) setVar(name string, v Value) {
	for i := len(in.scopes) - 1; i > -1; i-- {
		if _, ok := in.scopes[i][name]; ok {
			in.scopes[i][name] = v
			return
		}
	}

	in.declare(name, v)
}

// declare defines a variable in the current scope.
func (in *Interpreter) declare(name string, v Value) {
	in.scopes[len(in.scopes)-1][name] = v
}
