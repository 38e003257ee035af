package cmd

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cfgs/common"
	"cfgs/logging"
)

// scriptedPrompter feeds a fixed list of lines to readInput
type scriptedPrompter struct {
	lines   []string
	prompts []string
}

func (sp *scriptedPrompter) Prompt(prompt string) (string, error) {
	sp.prompts = append(sp.prompts, prompt)
	if len(sp.lines) == 0 {
		return "", io.EOF
	}

	line := sp.lines[0]
	sp.lines = sp.lines[1:]
	return line, nil
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.Initialize(&buf, "error")
	t.Cleanup(func() { logging.Initialize(os.Stdout, "error") })
	return &buf
}

func newTestConfig(t *testing.T) (*runConfig, *strings.Builder) {
	t.Helper()
	var out strings.Builder
	return &runConfig{out: &out, in: strings.NewReader(""), baseDir: t.TempDir()}, &out
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// -----------------------------------------------------------------------------

func TestReadInputMultiline(t *testing.T) {
	sp := &scriptedPrompter{lines: []string{"func f() {", "  return 1;", "}", "x = 1;"}}

	input, ok := readInput(sp)
	if !ok {
		t.Fatal("unexpected end of input")
	}

	if want := "func f() {\n  return 1;\n}"; input != want {
		t.Fatalf("want %q, got %q", want, input)
	}

	wantPrompts := []string{promptMain, promptCont, promptCont}
	for i, p := range wantPrompts {
		if sp.prompts[i] != p {
			t.Errorf("prompt %d: want %q, got %q", i, p, sp.prompts[i])
		}
	}

	if input, ok = readInput(sp); !ok || input != "x = 1;" {
		t.Fatalf("want %q, got %q (ok: %v)", "x = 1;", input, ok)
	}

	if _, ok = readInput(sp); ok {
		t.Fatal("expected the end of the input")
	}
}

func TestReadInputStopsOnSyntaxError(t *testing.T) {
	sp := &scriptedPrompter{lines: []string{"x = ;", "y = 2;"}}

	input, ok := readInput(sp)
	if !ok || input != "x = ;" {
		t.Fatalf("expected a complete but invalid input, got %q", input)
	}
}

func TestReadInputCommandsAreSingleLine(t *testing.T) {
	sp := &scriptedPrompter{lines: []string{"$call f(", "ignored"}}

	input, ok := readInput(sp)
	if !ok || input != "$call f(" {
		t.Fatalf("want the raw command, got %q", input)
	}
}

func TestREPLSession(t *testing.T) {
	logs := captureLogs(t)
	rc, out := newTestConfig(t)
	writeFile(t, rc.baseDir, "lib.cfgs", `func triple(n) { return n * 3; } print("not run");`)

	r := newREPL(rc)
	inputs := []string{
		"x = 2;",
		"print(x * 3);",
		"func double(n) {\n  return n * 2;\n}",
		"$call double(x + 2)",
		"$load lib.cfgs",
		"$CALL triple(2)",
	}

	for _, input := range inputs {
		if !r.handle(input) {
			t.Fatalf("session ended on %q", input)
		}
	}

	if want := "6\ndouble : 8\ntriple : 6\n"; out.String() != want {
		t.Fatalf("want %q, got %q", want, out.String())
	}

	if !logging.ShouldProceed() {
		t.Fatalf("unexpected errors:\n%s", logs.String())
	}
}

func TestREPLErrorsDoNotEndSession(t *testing.T) {
	logs := captureLogs(t)
	rc, out := newTestConfig(t)

	r := newREPL(rc)
	if !r.handle("print(missing);") {
		t.Fatal("an error should not end the session")
	}

	if logging.ShouldProceed() {
		t.Fatal("expected the error to be logged")
	}

	if !strings.Contains(logs.String(), "variable `missing` is not defined") {
		t.Fatalf("expected the fault message in the log, got %q", logs.String())
	}

	r.handle(`print("still here");`)
	if out.String() != "still here\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestREPLReset(t *testing.T) {
	captureLogs(t)
	rc, out := newTestConfig(t)

	r := newREPL(rc)
	r.handle("x = 1;")
	r.handle("$reset")
	r.handle("print(x);")

	if out.String() != "" || logging.ShouldProceed() {
		t.Fatalf("expected `x` to be gone after a reset, got output %q", out.String())
	}
}

func TestREPLCommands(t *testing.T) {
	logs := captureLogs(t)
	rc, out := newTestConfig(t)

	r := newREPL(rc)
	r.handle("$help")
	if !strings.Contains(out.String(), "$reset") {
		t.Fatalf("expected the help text, got %q", out.String())
	}

	if r.handle("$exit") {
		t.Fatal("$exit should end the session")
	}

	r.handle("$bogus")
	if !strings.Contains(logs.String(), "unknown command `$bogus`") {
		t.Fatalf("expected an unknown command error, got %q", logs.String())
	}
}

// -----------------------------------------------------------------------------

func TestRunScriptFile(t *testing.T) {
	captureLogs(t)
	dir := t.TempDir()
	writeFile(t, dir, "lib.cfgs", `func greet(n) { return "hi " + n; }`)
	main := writeFile(t, dir, "main.cfgs", `import "lib.cfgs"; print(greet("there"));`)

	var out strings.Builder
	rc := &runConfig{out: &out, in: strings.NewReader("")}
	if !runPath(main, rc) {
		t.Fatal("run failed")
	}

	if out.String() != "hi there\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunModule(t *testing.T) {
	captureLogs(t)
	dir := t.TempDir()
	writeFile(t, dir, common.ModuleFileName, `
[module]
name = "demo"
cfgs-version = "`+common.CFGSVersion+`"
main = "main.cfgs"
preload = ["lib.cfgs"]
entry = "start"
`)
	writeFile(t, dir, "lib.cfgs", `func greet(n) { return "hi " + n; }`)
	writeFile(t, dir, "main.cfgs", `
print(greet("main"));
func start() { print("started"); }
`)

	var out strings.Builder
	rc := &runConfig{out: &out, in: strings.NewReader("")}
	if !runPath(dir, rc) {
		t.Fatal("run failed")
	}

	if out.String() != "hi main\nstarted\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunEntryOverride(t *testing.T) {
	captureLogs(t)
	dir := t.TempDir()
	main := writeFile(t, dir, "main.cfgs", `func a() { print("a"); } func b() { print("b"); }`)

	var out strings.Builder
	rc := &runConfig{out: &out, in: strings.NewReader(""), entry: "b"}
	if !runPath(main, rc) || out.String() != "b\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRunFailures(t *testing.T) {
	logs := captureLogs(t)
	dir := t.TempDir()
	main := writeFile(t, dir, "main.cfgs", "x = 1;\nthrow \"bad\";")

	var out strings.Builder
	rc := &runConfig{out: &out, in: strings.NewReader("")}
	if runPath(main, rc) {
		t.Fatal("expected the run to fail")
	}

	if !strings.Contains(logs.String(), "bad") || !strings.Contains(logs.String(), "main.cfgs") {
		t.Fatalf("expected the fault to be reported against main.cfgs, got %q", logs.String())
	}

	rc = &runConfig{out: &out, in: strings.NewReader(""), preload: []string{filepath.Join(dir, "missing.cfgs")}}
	if runPath(main, rc) {
		t.Fatal("expected a missing preload to fail the run")
	}
}

func TestExecSource(t *testing.T) {
	captureLogs(t)
	rc, out := newTestConfig(t)

	if !execSource(`i = 0; while (i < 3) { printc(i); i++; }`, rc) {
		t.Fatal("exec failed")
	}

	if out.String() != "012" {
		t.Fatalf("unexpected output: %q", out.String())
	}

	if execSource(`x = ;`, rc) {
		t.Fatal("expected a syntax error to fail the run")
	}
}

func TestCallInFile(t *testing.T) {
	captureLogs(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "math.cfgs", `
func add(a, b) { return a + b; }
func boom() { throw "boom"; }
print("not run");
`)

	var out strings.Builder
	rc := &runConfig{out: &out, in: strings.NewReader("")}
	if !callInFile(path, "add(2, 3 * 4)", rc) {
		t.Fatal("call failed")
	}

	if out.String() != "add : 14\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}

	for _, call := range []string{"1 + 2", "missing()", "boom()", "add(1,"} {
		rc = &runConfig{out: &out, in: strings.NewReader("")}
		if callInFile(path, call, rc) {
			t.Errorf("expected %q to fail", call)
		}
	}
}
