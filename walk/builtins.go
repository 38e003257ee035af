package walk

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"cfgs/logging"
)

// BuiltinFunc is a host function callable from CFGS.  Its arguments are
// evaluated left to right before it is called; it must check its own argument
// count.  Errors without a position are reported at the call site.
type BuiltinFunc func(in *Interpreter, args []Value) (Value, error)

// Handle is an open file.  Handles are only produced and consumed by the file
// built-ins.
type Handle struct {
	Path string

	file   *os.File
	closed bool
}

// defaultBuiltins is the built-in table every interpreter starts with.  Keys
// are lowercase.
var defaultBuiltins = map[string]BuiltinFunc{
	"len":     builtinLen,
	"isarray": builtinIsArray,
	"fpos":    builtinFpos,
	"toint32": builtinToInt32,
	"toint64": builtinToInt64,
	"chr":     builtinChr,
	"str":     builtinStr,
	"todbl":   builtinToDbl,
	"getl":    builtinGetl,
	"getc":    builtinGetc,
	"getk":    builtinGetk,
	"fopen":   builtinFopen,
	"fwrite":  builtinFwrite,
	"fread":   builtinFread,
	"fclose":  builtinFclose,
	"fexist":  builtinFexist,
}

// CheckArgs checks the argument count of a built-in function.
func CheckArgs(name string, args []Value, expected int) error {
	if len(args) != expected {
		return logging.NewFault(
			logging.LMKArg,
			nil,
			"invalid argument count for '%s()': expected %d, got %d",
			name,
			expected,
			len(args),
		)
	}

	return nil
}

func argErrorf(msg string, args ...interface{}) error {
	return logging.NewFault(logging.LMKArg, nil, msg, args...)
}

func resourceErrorf(msg string, args ...interface{}) error {
	return logging.NewFault(logging.LMKResource, nil, msg, args...)
}

// -----------------------------------------------------------------------------

func builtinLen(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("len", args, 1); err != nil {
		return nil, err
	}

	switch v := args[0].(type) {
	case *List:
		return Number(len(v.Elems)), nil
	case String:
		return Number(utf8.RuneCountInString(string(v))), nil
	case *Handle:
		h, err := openHandle("len", v)
		if err != nil {
			return nil, err
		}

		info, err := h.file.Stat()
		if err != nil {
			return nil, resourceErrorf("unable to stat `%s`: %s", h.Path, err)
		}

		return Number(info.Size()), nil
	}

	return nil, typeErrorf("invalid argument for 'len()': value of type %s has no length", TypeName(args[0]))
}

func builtinIsArray(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("isarray", args, 1); err != nil {
		return nil, err
	}

	_, ok := args[0].(*List)
	return Bool(ok), nil
}

func builtinToInt32(in *Interpreter, args []Value) (Value, error) {
	return toInteger("toint32", args, math.MinInt32, math.MaxInt32)
}

func builtinToInt64(in *Interpreter, args []Value) (Value, error) {
	// the upper bound is exclusive: 2^63 is the first unrepresentable float
	return toInteger("toint64", args, -(1 << 63), 1<<63)
}

// toInteger rounds a value to the nearest integer (ties to even) checking that
// it lies in [lo, hi].
func toInteger(name string, args []Value, lo, hi float64) (Value, error) {
	if err := CheckArgs(name, args, 1); err != nil {
		return nil, err
	}

	n, err := ToNumber(args[0])
	if err != nil {
		return nil, err
	}

	n = math.RoundToEven(n)
	if math.IsNaN(n) || n < lo || n > hi || (hi == 1<<63 && n == hi) {
		return nil, argErrorf("value is out of range for '%s()'", name)
	}

	return Number(n), nil
}

func builtinChr(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("chr", args, 1); err != nil {
		return nil, err
	}

	switch v := args[0].(type) {
	case Char:
		return v, nil
	case String:
		if utf8.RuneCountInString(string(v)) == 1 {
			r, _ := utf8.DecodeRuneInString(string(v))
			return Char(r), nil
		}

		return nil, argErrorf("'chr()' expects a string of exactly one character")
	}

	n, err := ToNumber(args[0])
	if err != nil {
		return nil, err
	}

	n = math.RoundToEven(n)
	if n < 0 || n > utf8.MaxRune || !utf8.ValidRune(rune(n)) {
		return nil, argErrorf("value `%s` is not a valid character code", formatNumber(n))
	}

	return Char(rune(n)), nil
}

func builtinStr(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("str", args, 1); err != nil {
		return nil, err
	}

	return String(Format(args[0])), nil
}

func builtinToDbl(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("todbl", args, 1); err != nil {
		return nil, err
	}

	n, err := ToNumber(args[0])
	if err != nil {
		return nil, err
	}

	return Number(n), nil
}

// -----------------------------------------------------------------------------

// builtinGetl reads a line of input without its line terminator.  It returns
// null at the end of the input.
func builtinGetl(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("getl", args, 0); err != nil {
		return nil, err
	}

	line, err := in.in.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return nil, resourceErrorf("unable to read input: %s", err)
		}

		if line == "" {
			return Null{}, nil
		}
	}

	return String(strings.TrimRight(line, "\r\n")), nil
}

// builtinGetc reads a single character of input and returns its code or -1 at
// the end of the input.
func builtinGetc(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("getc", args, 0); err != nil {
		return nil, err
	}

	r, _, err := in.in.ReadRune()
	if err != nil {
		if err == io.EOF {
			return Number(-1), nil
		}

		return nil, resourceErrorf("unable to read input: %s", err)
	}

	return Number(r), nil
}

// builtinGetk reads a single key (character) of input as a string.  It returns
// null at the end of the input.
func builtinGetk(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("getk", args, 0); err != nil {
		return nil, err
	}

	r, _, err := in.in.ReadRune()
	if err != nil {
		if err == io.EOF {
			return Null{}, nil
		}

		return nil, resourceErrorf("unable to read input: %s", err)
	}

	return String(string(r)), nil
}

// -----------------------------------------------------------------------------

// File modes accepted by `fopen`
const (
	FileModeCreateNew = iota + 1
	FileModeCreate
	FileModeOpen
	FileModeOpenOrCreate
	FileModeTruncate
	FileModeAppend
)

// File access kinds accepted by `fopen`
const (
	FileAccessRead = iota + 1
	FileAccessWrite
	FileAccessReadWrite
)

// builtinFopen opens a file: fopen(path, mode, access).
func builtinFopen(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("fopen", args, 3); err != nil {
		return nil, err
	}

	if _, ok := args[0].(Null); ok {
		return nil, argErrorf("'fopen()' expects a path")
	}

	mode, err := toIndex(args[1])
	if err != nil {
		return nil, err
	}

	access, err := toIndex(args[2])
	if err != nil {
		return nil, err
	}

	var flag int
	switch access {
	case FileAccessRead:
		flag = os.O_RDONLY
	case FileAccessWrite:
		flag = os.O_WRONLY
	case FileAccessReadWrite:
		flag = os.O_RDWR
	default:
		return nil, argErrorf("invalid file access: %d", access)
	}

	switch mode {
	case FileModeCreateNew:
		flag |= os.O_CREATE | os.O_EXCL
	case FileModeCreate:
		flag |= os.O_CREATE | os.O_TRUNC
	case FileModeOpen:
	case FileModeOpenOrCreate:
		flag |= os.O_CREATE
	case FileModeTruncate:
		flag |= os.O_TRUNC
	case FileModeAppend:
		flag |= os.O_CREATE | os.O_APPEND
	default:
		return nil, argErrorf("invalid file mode: %d", mode)
	}

	if access == FileAccessRead && mode != FileModeOpen && mode != FileModeOpenOrCreate {
		return nil, argErrorf("file mode %d requires write access", mode)
	}

	path := in.hostPath(Format(args[0]))
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return nil, resourceErrorf("unable to open `%s`: %s", path, err)
	}

	return &Handle{Path: path, file: f}, nil
}

// builtinFwrite writes the textual form of a value to a file.
func builtinFwrite(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("fwrite", args, 2); err != nil {
		return nil, err
	}

	h, err := openHandle("fwrite", args[0])
	if err != nil {
		return nil, err
	}

	text := ""
	if _, ok := args[1].(Null); !ok {
		text = Format(args[1])
	}

	if _, err := io.WriteString(h.file, text); err != nil {
		return nil, resourceErrorf("unable to write `%s`: %s", h.Path, err)
	}

	return Number(0), nil
}

// builtinFread reads a single byte from a file returning -1 at the end of the
// file.
func builtinFread(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("fread", args, 1); err != nil {
		return nil, err
	}

	h, err := openHandle("fread", args[0])
	if err != nil {
		return nil, err
	}

	var buff [1]byte
	if _, err := h.file.Read(buff[:]); err != nil {
		if err == io.EOF {
			return Number(-1), nil
		}

		return nil, resourceErrorf("unable to read `%s`: %s", h.Path, err)
	}

	return Number(buff[0]), nil
}

// builtinFclose closes a file.  Closing a closed file has no effect.
func builtinFclose(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("fclose", args, 1); err != nil {
		return nil, err
	}

	if h, ok := args[0].(*Handle); ok && !h.closed {
		h.closed = true
		if err := h.file.Close(); err != nil {
			return nil, resourceErrorf("unable to close `%s`: %s", h.Path, err)
		}
	}

	return Number(0), nil
}

// builtinFpos returns the current offset of a file.
func builtinFpos(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("fpos", args, 1); err != nil {
		return nil, err
	}

	h, err := openHandle("fpos", args[0])
	if err != nil {
		return nil, err
	}

	pos, err := h.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, resourceErrorf("unable to seek `%s`: %s", h.Path, err)
	}

	return Number(pos), nil
}

// builtinFexist tests whether a regular file exists at a path.
func builtinFexist(in *Interpreter, args []Value) (Value, error) {
	if err := CheckArgs("fexist", args, 1); err != nil {
		return nil, err
	}

	path, ok := args[0].(String)
	if !ok {
		return Bool(false), nil
	}

	info, err := os.Stat(in.hostPath(string(path)))
	return Bool(err == nil && !info.IsDir()), nil
}

// openHandle asserts that a value is an open file handle.
func openHandle(name string, v Value) (*Handle, error) {
	h, ok := v.(*Handle)
	if !ok {
		return nil, typeErrorf("'%s()' expects a file handle, got %s", name, TypeName(v))
	}

	if h.closed {
		return nil, resourceErrorf("file `%s` is closed", h.Path)
	}

	return h, nil
}

// hostPath resolves a path used by a built-in against the base directory.
func (in *Interpreter) hostPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(in.baseDir, path)
}
