package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cfgs/ast"
	"cfgs/logging"
	"cfgs/mods"
	"cfgs/syntax"
	"cfgs/walk"
)

// runConfig collects the settings of a single run of the interpreter
type runConfig struct {
	// preload is a list of files whose declarations are loaded before the
	// main file is run
	preload []string

	// entry is the name of a function to call once the main file has run
	entry string

	maxCallDepth int

	// baseDir is the directory relative paths are resolved against
	baseDir string

	out io.Writer
	in  io.Reader
}

// newInterpreter creates an interpreter for a run
func (rc *runConfig) newInterpreter() *walk.Interpreter {
	return walk.NewInterpreter(walk.Config{
		Stdout:       rc.out,
		Stdin:        rc.in,
		BaseDir:      rc.baseDir,
		MaxCallDepth: rc.maxCallDepth,
	})
}

// runPath runs either a script file or a module directory.  It returns whether
// the run succeeded.  All errors are logged.
func runPath(path string, rc *runConfig) bool {
	abspath, err := filepath.Abs(path)
	if err != nil {
		logging.LogConfigError("Path", err.Error())
		return false
	}

	if !mods.IsModuleDir(abspath) {
		if rc.baseDir == "" {
			rc.baseDir = filepath.Dir(abspath)
		}

		return runScript(abspath, rc)
	}

	mod, err := mods.LoadModule(abspath)
	if err != nil {
		logging.LogConfigError("Module", err.Error())
		return false
	}

	// preloads named on the command line are loaded after those of the module
	// and an entry named on the command line replaces that of the module
	rc.preload = append(append([]string(nil), mod.PreloadFiles...), rc.preload...)
	if rc.entry == "" {
		rc.entry = mod.Entry
	}

	if rc.maxCallDepth == 0 {
		rc.maxCallDepth = mod.MaxCallDepth
	}

	rc.baseDir = mod.ModuleRoot

	logging.LogInfo("Module", fmt.Sprintf("running module `%s`", mod.Name))
	return runScript(mod.MainFile, rc)
}

// runScript preloads all the requested files, runs a script and then calls
// the entry function if there is one.
func runScript(path string, rc *runConfig) bool {
	in := rc.newInterpreter()

	for _, preload := range rc.preload {
		logging.LogInfo("Preload", preload)

		if err := in.LoadFile(preload); err != nil {
			logging.LogScriptError(&logging.LogContext{FilePath: preload}, err)
			return false
		}
	}

	if err := in.RunFile(path); err != nil {
		logging.LogScriptError(&logging.LogContext{FilePath: path}, err)
		return false
	}

	if rc.entry != "" {
		if _, err := in.CallFunctionByName(rc.entry, nil); err != nil {
			logging.LogScriptError(&logging.LogContext{FilePath: path}, err)
			return false
		}
	}

	return true
}

// execSource runs a piece of inline code
func execSource(src string, rc *runConfig) bool {
	in := rc.newInterpreter()

	if err := in.RunSource(src); err != nil {
		logging.LogScriptError(&logging.LogContext{Source: src}, err)
		return false
	}

	return true
}

// callInFile loads the declarations of a file and then evaluates a call to one
// of its functions printing the result.
func callInFile(path, call string, rc *runConfig) bool {
	if rc.baseDir == "" {
		if abspath, err := filepath.Abs(path); err == nil {
			rc.baseDir = filepath.Dir(abspath)
			path = abspath
		}
	}

	in := rc.newInterpreter()
	if err := in.LoadFile(path); err != nil {
		logging.LogScriptError(&logging.LogContext{FilePath: path}, err)
		return false
	}

	if err := evalCall(in, call, path, rc.out); err != nil {
		logging.LogScriptError(&logging.LogContext{Source: call}, err)
		return false
	}

	return true
}

// evalCall evaluates a call expression of the form `name(arg, ...)` against
// the functions loaded into an interpreter.  The arguments may be arbitrary
// expressions.  The result is printed as `name : result`.  Faults raised by
// the function body are attributed to `file` which may be empty.
func evalCall(in *walk.Interpreter, call, file string, out io.Writer) error {
	expr, err := syntax.ParseExpr(strings.TrimSuffix(strings.TrimSpace(call), ";"))
	if err != nil {
		return err
	}

	fc, ok := expr.(*ast.FuncCall)
	if !ok {
		return logging.NewFault(logging.LMKUsage, expr.Position(), "expected a function call of the form `name(args)`")
	}

	args := make([]walk.Value, len(fc.Args))
	for i, arg := range fc.Args {
		if args[i], err = in.Eval(arg); err != nil {
			return err
		}
	}

	result, err := in.CallFunctionByName(fc.Name, args)
	if err != nil {
		// faults without a position concern the call itself
		if f, ok := err.(*logging.Fault); ok && f.Position == nil {
			f.Position = fc.Position()
			return f
		}

		return logging.InFile(err, file)
	}

	_, err = fmt.Fprintf(out, "%s : %s\n", fc.Name, walk.Format(result))
	return err
}

// defaultRunConfig creates a run config writing to the process streams
func defaultRunConfig() *runConfig {
	return &runConfig{out: os.Stdout, in: os.Stdin}
}
