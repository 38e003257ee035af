package mods

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"cfgs/common"
	"cfgs/logging"

	"github.com/pelletier/go-toml"
)

// tomlModuleFile represents the module file as it is encoded in TOML
type tomlModuleFile struct {
	Module *tomlModule `toml:"module"`
}

// tomlModule represents a CFGS module as it is encoded in TOML
type tomlModule struct {
	Name         string   `toml:"name"`
	Version      string   `toml:"cfgs-version"`
	Main         string   `toml:"main"`
	Preload      []string `toml:"preload,omitempty"`
	Entry        string   `toml:"entry,omitempty"`
	MaxCallDepth int      `toml:"max-call-depth,omitempty"`
}

// LoadModule loads and validates the module whose module file is in the
// directory at `path`.  It returns the deserialized module and an error value.
func LoadModule(path string) (*CFGSModule, error) {
	root, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	// open file
	f, err := os.Open(filepath.Join(root, common.ModuleFileName))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// unmarshal the contents
	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}
	tmf := &tomlModuleFile{}
	if err := toml.Unmarshal(buff, tmf); err != nil {
		return nil, err
	}

	// a missing [module] table is reported as a missing name
	if tmf.Module == nil {
		tmf.Module = &tomlModule{}
	}

	mod := &CFGSModule{
		// module root is the directory enclosing the module file
		ModuleRoot: root,
	}

	// ensure that the module is valid
	if err := validateModule(mod, tmf.Module); err != nil {
		return nil, err
	}

	// move all the relevant TOML module attributes over to the CFGS module
	mod.Name = tmf.Module.Name
	mod.Version = tmf.Module.Version
	mod.MainFile = mod.resolve(tmf.Module.Main)
	mod.Entry = tmf.Module.Entry
	mod.MaxCallDepth = tmf.Module.MaxCallDepth

	for _, preload := range tmf.Module.Preload {
		mod.PreloadFiles = append(mod.PreloadFiles, mod.resolve(preload))
	}

	return mod, nil
}

// validateModule checks that the module contents are valid
func validateModule(cmod *CFGSModule, mod *tomlModule) error {
	if mod.Name == "" {
		return fmt.Errorf("missing module name for module at %s", cmod.ModuleRoot)
	}

	if !common.IsValidIdentifier(mod.Name) {
		return errors.New("module name must be a valid identifier")
	}

	if mod.Main == "" {
		return fmt.Errorf("module `%s` must specify a main file", mod.Name)
	}

	if mod.Entry != "" && !common.IsValidIdentifier(mod.Entry) {
		return fmt.Errorf("entry function of module `%s` must be a valid identifier", mod.Name)
	}

	if mod.MaxCallDepth < 0 {
		return fmt.Errorf("maximum call depth of module `%s` must not be negative", mod.Name)
	}

	if mod.Version != common.CFGSVersion {
		logging.LogConfigWarning(
			"Module",
			fmt.Sprintf("version of module `%s` (v%s) does not match current cfgs version (v%s)", mod.Name, mod.Version, common.CFGSVersion),
		)
	}

	return nil
}

// resolve converts a path in the module file to an absolute path
func (m *CFGSModule) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(m.ModuleRoot, path)
}
