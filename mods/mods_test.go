package mods

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cfgs/common"
	"cfgs/logging"
)

func writeModuleFile(t *testing.T, dir, content string) {
	t.Helper()
	if err := ioutil.WriteFile(filepath.Join(dir, common.ModuleFileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadModule(t *testing.T) {
	dir := t.TempDir()
	writeModuleFile(t, dir, `
[module]
name = "demo"
cfgs-version = "`+common.CFGSVersion+`"
main = "src/main.cfgs"
preload = ["lib.cfgs", "util/more.cfgs"]
entry = "start"
max-call-depth = 250
`)

	mod, err := LoadModule(dir)
	if err != nil {
		t.Fatalf("LoadModule failed: %v", err)
	}

	if mod.Name != "demo" || mod.Entry != "start" || mod.MaxCallDepth != 250 {
		t.Fatalf("unexpected module: %+v", mod)
	}

	if mod.ModuleRoot != dir {
		t.Errorf("want module root %s, got %s", dir, mod.ModuleRoot)
	}

	if want := filepath.Join(dir, "src", "main.cfgs"); mod.MainFile != want {
		t.Errorf("want main file %s, got %s", want, mod.MainFile)
	}

	wantPreload := []string{filepath.Join(dir, "lib.cfgs"), filepath.Join(dir, "util", "more.cfgs")}
	if len(mod.PreloadFiles) != len(wantPreload) {
		t.Fatalf("want preload files %v, got %v", wantPreload, mod.PreloadFiles)
	}

	for i := range wantPreload {
		if mod.PreloadFiles[i] != wantPreload[i] {
			t.Errorf("want preload file %s, got %s", wantPreload[i], mod.PreloadFiles[i])
		}
	}
}

func TestLoadModuleInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"missing table", `name = "x"`, "missing module name"},
		{"missing name", "[module]\nmain = \"m.cfgs\"", "missing module name"},
		{"bad name", "[module]\nname = \"1bad\"\nmain = \"m.cfgs\"", "valid identifier"},
		{"missing main", "[module]\nname = \"ok\"", "main file"},
		{"bad entry", "[module]\nname = \"ok\"\nmain = \"m.cfgs\"\nentry = \"not valid\"", "entry function"},
		{"negative depth", "[module]\nname = \"ok\"\nmain = \"m.cfgs\"\nmax-call-depth = -1", "must not be negative"},
	}

	for _, test := range tests {
		dir := t.TempDir()
		writeModuleFile(t, dir, test.content)

		_, err := LoadModule(dir)
		if err == nil {
			t.Errorf("%s: expected an error", test.name)
			continue
		}

		if !strings.Contains(err.Error(), test.errText) {
			t.Errorf("%s: expected error containing %q, got %q", test.name, test.errText, err.Error())
		}
	}
}

func TestLoadModuleMissingFile(t *testing.T) {
	if _, err := LoadModule(t.TempDir()); err == nil {
		t.Fatal("expected an error loading a directory with no module file")
	}
}

func TestVersionMismatchWarns(t *testing.T) {
	var buf bytes.Buffer
	logging.Initialize(&buf, "warn")
	defer logging.Initialize(os.Stdout, "error")

	dir := t.TempDir()
	writeModuleFile(t, dir, "[module]\nname = \"old\"\ncfgs-version = \"0.1.0\"\nmain = \"m.cfgs\"")

	if _, err := LoadModule(dir); err != nil {
		t.Fatalf("a version mismatch should not fail the load: %v", err)
	}

	if !logging.ShouldProceed() {
		t.Error("a version mismatch should not count as an error")
	}

	logging.LogRunFinished()
	if !strings.Contains(buf.String(), "does not match current cfgs version") {
		t.Fatalf("expected a version warning, got %q", buf.String())
	}
}

func TestInitModule(t *testing.T) {
	dir := t.TempDir()
	if err := InitModule("fresh", dir); err != nil {
		t.Fatalf("InitModule failed: %v", err)
	}

	mod, err := LoadModule(dir)
	if err != nil {
		t.Fatalf("LoadModule failed on a new module: %v", err)
	}

	if mod.Name != "fresh" || mod.Version != common.CFGSVersion || mod.Entry != "main" {
		t.Fatalf("unexpected module: %+v", mod)
	}

	if _, err := os.Stat(mod.MainFile); err != nil {
		t.Fatalf("expected a main file to be created: %v", err)
	}

	if err := InitModule("fresh", dir); err == nil {
		t.Fatal("expected an error initializing over an existing module")
	}
}

func TestInitModuleKeepsExistingMain(t *testing.T) {
	dir := t.TempDir()
	mainPath := filepath.Join(dir, "main"+common.SrcFileExtension)
	if err := ioutil.WriteFile(mainPath, []byte("print(1);"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := InitModule("keep", dir); err != nil {
		t.Fatalf("InitModule failed: %v", err)
	}

	data, err := ioutil.ReadFile(mainPath)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "print(1);" {
		t.Fatalf("existing main file was overwritten: %q", data)
	}
}

func TestInitModuleInvalidName(t *testing.T) {
	if err := InitModule("not-valid", t.TempDir()); err == nil {
		t.Fatal("expected an error for an invalid module name")
	}
}

func TestFindModuleRoot(t *testing.T) {
	root := t.TempDir()
	writeModuleFile(t, root, "[module]\nname = \"found\"\nmain = \"m.cfgs\"")

	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if !IsModuleDir(root) {
		t.Fatal("expected the root to be a module directory")
	}

	if IsModuleDir(nested) {
		t.Fatal("a directory without a module file is not a module directory")
	}

	got, ok := FindModuleRoot(nested)
	if !ok || got != root {
		t.Fatalf("want %s, got %s (found: %v)", root, got, ok)
	}
}
