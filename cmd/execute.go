package cmd

import (
	"os"

	"cfgs/common"
	"cfgs/logging"
	"cfgs/mods"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `cfgs` application
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("cfgs", "cfgs runs CFGS scripts and projects", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the interpreter log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("error")

	runCmd := cli.AddSubcommand("run", "run a script or a module", true)
	runCmd.AddPrimaryArg("path", "the path to the script or module directory to run", false)
	runCmd.AddStringArg("preload", "i", "a file whose declarations are loaded before running", false)
	runCmd.AddStringArg("entry", "e", "a function to call after running", false)

	execCmd := cli.AddSubcommand("exec", "run inline code", true)
	execCmd.AddPrimaryArg("code", "the code to run", true)

	callCmd := cli.AddSubcommand("call", "call a function declared in a file", true)
	callCmd.AddPrimaryArg("file", "the file declaring the function", true)
	callCmd.AddStringArg("call", "c", "the call to evaluate: `name(args)`", true)

	cli.AddSubcommand("repl", "start an interactive session", false)

	modCmd := cli.AddSubcommand("mod", "manage modules", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a module", true)
	modInitCmd.AddPrimaryArg("module-name", "the name of the new module", true)

	cli.AddSubcommand("version", "print the CFGS version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		logging.PrintErrorMessage("CLI Usage Error", err)
		os.Exit(2)
	}

	logging.Initialize(os.Stdout, result.Arguments["loglevel"].(string))

	// process the inputed command line
	subcmdName, subResult, ok := result.Subcommand()
	if !ok {
		subcmdName = "repl"
	}

	switch subcmdName {
	case "run":
		execRunCommand(subResult)
	case "exec":
		code, _ := subResult.PrimaryArg()
		execSource(code, defaultRunConfig())
	case "call":
		file, _ := subResult.PrimaryArg()
		callInFile(file, subResult.Arguments["call"].(string), defaultRunConfig())
	case "repl":
		runREPL(defaultRunConfig())
		return
	case "mod":
		execModCommand(subResult)
	case "version":
		logging.PrintInfoMessage("CFGS Version", common.CFGSVersion)
		return
	}

	logging.LogRunFinished()
	if !logging.ShouldProceed() {
		os.Exit(1)
	}
}

// execRunCommand executes the run subcommand.  With no path, the module
// enclosing the working directory is run.
func execRunCommand(result *olive.ArgParseResult) {
	rc := defaultRunConfig()

	if preload, ok := result.Arguments["preload"]; ok {
		rc.preload = []string{preload.(string)}
	}

	if entry, ok := result.Arguments["entry"]; ok {
		rc.entry = entry.(string)
	}

	path, ok := result.PrimaryArg()
	if !ok || path == "" {
		root, found := mods.FindModuleRoot(".")
		if !found {
			logging.LogConfigError("Usage", "no path given and no enclosing module found")
			return
		}

		path = root
	}

	runPath(path, rc)
}

// execModCommand executes the `mod` subcommand and its subcommands.  It handles
// all errors related to this command
func execModCommand(result *olive.ArgParseResult) {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		logging.LogConfigError("Path", err.Error())
		return
	}

	switch subcmdName {
	case "init":
		modName, _ := subResult.PrimaryArg()
		if err := mods.InitModule(modName, workDir); err != nil {
			logging.LogConfigError("Module", err.Error())
			return
		}

		logging.LogInfo("Module", "initialized module `"+modName+"`")
	default:
		logging.LogConfigError("Usage", "expected a `mod` subcommand")
	}
}
