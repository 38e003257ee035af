package logging

import (
	"bytes"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFaultError(t *testing.T) {
	f := NewFault(LMKName, &TextPosition{StartLn: 3, StartCol: 7, EndLn: 3, EndCol: 8}, "variable `%s` is not defined", "y")
	if want := "variable `y` is not defined, line 3, column 7."; f.Error() != want {
		t.Fatalf("want %q, got %q", want, f.Error())
	}

	if f.KindName() != "Name" {
		t.Fatalf("unexpected kind name: %s", f.KindName())
	}

	f.Position = nil
	if f.Error() != "variable `y` is not defined" {
		t.Fatalf("unexpected message without a position: %q", f.Error())
	}
}

func TestCatchFault(t *testing.T) {
	parse := func() (err error) {
		defer CatchFault(&err)
		panic(NewFault(LMKSyntax, nil, "unexpected token: %s", "`)`"))
	}

	err := parse()
	f, ok := err.(*Fault)
	if !ok || f.Kind != LMKSyntax || f.Message != "unexpected token: `)`" {
		t.Fatalf("unexpected error: %#v", err)
	}
}

func TestCatchFaultRepanicsOtherValues(t *testing.T) {
	defer func() {
		if x := recover(); x != "boom" {
			t.Fatalf("expected the panic to be re-raised, got %v", x)
		}
	}()

	func() (err error) {
		defer CatchFault(&err)
		panic("boom")
	}()
}

func TestFaultAnnotations(t *testing.T) {
	pos := &TextPosition{StartLn: 1, StartCol: 1, EndLn: 1, EndCol: 2}
	other := &TextPosition{StartLn: 9, StartCol: 9, EndLn: 9, EndCol: 10}

	f := NewFault(LMKRange, nil, "index out of bounds")
	AtPosition(f, pos)
	AtPosition(f, other)
	if f.Position != pos {
		t.Fatal("AtPosition should only fill in a missing position")
	}

	InFile(f, "a.cfgs")
	InFile(f, "b.cfgs")
	if f.FilePath != "a.cfgs" {
		t.Fatal("InFile should only fill in a missing file")
	}

	plain := errors.New("plain")
	if AtPosition(plain, pos) != plain || InFile(plain, "a.cfgs") != plain {
		t.Fatal("errors which are not faults should be returned unchanged")
	}

	wrapped := AsFault(plain, LMKResource)
	if wrapped.Kind != LMKResource || wrapped.Message != "plain" {
		t.Fatalf("unexpected wrapped fault: %#v", wrapped)
	}

	if AsFault(f, LMKResource) != f {
		t.Fatal("AsFault should return faults unchanged")
	}
}

func TestLogLevelFromName(t *testing.T) {
	tests := map[string]int{
		"silent":  LogLevelSilent,
		"error":   LogLevelError,
		"warn":    LogLevelWarning,
		"warning": LogLevelWarning,
		"verbose": LogLevelVerbose,
		"bogus":   LogLevelVerbose,
	}

	for name, want := range tests {
		if got := LogLevelFromName(name); got != want {
			t.Errorf("%s: want %d, got %d", name, want, got)
		}
	}
}

func TestScriptErrorDisplay(t *testing.T) {
	var buf bytes.Buffer
	Initialize(&buf, "error")
	defer Initialize(os.Stdout, "error")

	src := "x = 1;\ny = oops;"
	LogScriptError(&LogContext{Source: src}, NewFault(LMKName, &TextPosition{StartLn: 2, StartCol: 5, EndLn: 2, EndCol: 9}, "variable `oops` is not defined"))

	out := buf.String()
	for _, want := range []string{"Name Error", "<inline>", "variable `oops` is not defined", "at line 2, column 5", "y = oops;", "^^^^"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}

	if ShouldProceed() {
		t.Error("an error should stop the run from proceeding")
	}
}

func TestScriptErrorInOtherFile(t *testing.T) {
	var buf bytes.Buffer
	Initialize(&buf, "error")
	defer Initialize(os.Stdout, "error")

	path := filepath.Join(t.TempDir(), "lib.cfgs")
	if err := ioutil.WriteFile(path, []byte("func f() {\n    x = ;\n}"), 0644); err != nil {
		t.Fatal(err)
	}

	f := NewFault(LMKSyntax, &TextPosition{StartLn: 2, StartCol: 9, EndLn: 2, EndCol: 10}, "unexpected token: `;`")
	f.FilePath = path
	LogScriptError(&LogContext{Source: "import \"lib.cfgs\";"}, f)

	out := buf.String()
	if !strings.Contains(out, "lib.cfgs") || !strings.Contains(out, "x = ;") {
		t.Fatalf("expected the fault to be displayed against lib.cfgs:\n%s", out)
	}
}

func TestWarningsAreHeldUntilRunFinished(t *testing.T) {
	var buf bytes.Buffer
	Initialize(&buf, "warn")
	defer Initialize(os.Stdout, "error")

	LogConfigWarning("Module", "version mismatch")
	if buf.Len() != 0 {
		t.Fatalf("warnings should be held, got %q", buf.String())
	}

	if !ShouldProceed() {
		t.Fatal("warnings should not stop the run")
	}

	LogRunFinished()
	if !strings.Contains(buf.String(), "version mismatch") {
		t.Fatalf("expected the held warning, got %q", buf.String())
	}

	if strings.Contains(buf.String(), "All done!") {
		t.Fatal("the run summary is only displayed at the verbose level")
	}
}

func TestSilentLevel(t *testing.T) {
	var buf bytes.Buffer
	Initialize(&buf, "silent")
	defer Initialize(os.Stdout, "error")

	LogConfigError("Usage", "bad flag")
	LogInfo("Import", "/x.cfgs")
	LogRunFinished()

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	if ShouldProceed() {
		t.Fatal("errors are counted even when silent")
	}
}

func TestVerboseLevel(t *testing.T) {
	var buf bytes.Buffer
	Initialize(&buf, "verbose")
	defer Initialize(os.Stdout, "error")

	LogInfo("Import", "/x.cfgs")
	LogRunFinished()

	out := buf.String()
	if !strings.Contains(out, "/x.cfgs") || !strings.Contains(out, "All done!") {
		t.Fatalf("unexpected verbose output: %q", out)
	}
}
