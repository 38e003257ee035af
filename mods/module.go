package mods

// CFGSModule represents a CFGS project: a directory containing a module file
// which names the script to run and the files to preload before it.
type CFGSModule struct {
	// Name is the name of the module
	Name string

	// ModuleRoot is the absolute path to the directory enclosing the module
	// file.  Relative paths in the module file are resolved against it and it
	// is the base directory of the interpreter running the module.
	ModuleRoot string

	// MainFile is the absolute path to the script run by the module
	MainFile string

	// PreloadFiles is a list of absolute paths to files whose declarations are
	// loaded (in order) before the main file is run
	PreloadFiles []string

	// Entry is the name of a function to call after the main file has run.
	// It is empty if no function should be called.
	Entry string

	// MaxCallDepth is the maximum depth of nested function calls.  Zero
	// selects the interpreter's default.
	MaxCallDepth int

	// Version is the CFGS version the module was written for
	Version string
}
