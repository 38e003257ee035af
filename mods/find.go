package mods

import (
	"os"
	"path/filepath"

	"cfgs/common"

	"github.com/pelletier/go-toml"
)

// IsModuleDir checks whether a path is a directory containing a module file
// which names a module.  The module file is only queried, not validated.
func IsModuleDir(path string) bool {
	finfo, err := os.Stat(path)
	if err != nil || !finfo.IsDir() {
		return false
	}

	tree, err := toml.LoadFile(filepath.Join(path, common.ModuleFileName))
	if err != nil {
		return false
	}

	name, ok := tree.Get("module.name").(string)
	return ok && name != ""
}

// FindModuleRoot searches `dir` and its parents for a module directory.  It
// returns the absolute path of the first one found.
func FindModuleRoot(dir string) (string, bool) {
	abspath, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}

	for {
		if IsModuleDir(abspath) {
			return abspath, true
		}

		parent := filepath.Dir(abspath)
		if parent == abspath {
			return "", false
		}

		abspath = parent
	}
}
