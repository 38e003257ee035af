package mods

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"cfgs/common"

	"github.com/pelletier/go-toml"
)

// mainTemplate is the content of the main file created for a new module
const mainTemplate = `func main() {
    print("Hello, world!");
}
`

// InitModule creates a new module with the given name at the given path.  A
// main file is created alongside the module file unless one already exists.
func InitModule(name, path string) error {
	// convert the module directory to the path to module file
	modFilePath := filepath.Join(path, common.ModuleFileName)

	// check to see if a module already exists
	_, err := os.Stat(modFilePath)
	if err == nil {
		return errors.New("module file already exists")
	}

	if !os.IsNotExist(err) {
		return fmt.Errorf("module file error: %s", err.Error())
	}

	// validate module name
	if !common.IsValidIdentifier(name) {
		return errors.New("module name must be a valid identifier")
	}

	// create module
	mod := &tomlModule{
		Name:    name,
		Version: common.CFGSVersion,
		Main:    "main" + common.SrcFileExtension,
		Entry:   "main",
	}

	// encode and save module to file
	f, err := os.Create(modFilePath)
	if err != nil {
		return fmt.Errorf("error creating module file: %s", err.Error())
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(&tomlModuleFile{Module: mod}); err != nil {
		return fmt.Errorf("error encoding TOML %s", err.Error())
	}

	mainPath := filepath.Join(path, mod.Main)
	if _, err := os.Stat(mainPath); os.IsNotExist(err) {
		if err := ioutil.WriteFile(mainPath, []byte(mainTemplate), 0644); err != nil {
			return fmt.Errorf("error creating main file: %s", err.Error())
		}
	}

	return nil
}
