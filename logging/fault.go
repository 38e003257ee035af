package logging

import (
	"fmt"
)

// Enumeration of the different kinds of faults.  The prefix stands for "log
// message kind".
const (
	LMKSyntax   = iota // unexpected or missing tokens
	LMKName            // undefined variables, functions, structs, enums, members
	LMKDef             // duplicate declarations and invalid definitions
	LMKArg             // wrong argument count or argument value for built-ins
	LMKTyping          // operations applied to values of the wrong kind
	LMKRange           // index and slice bounds
	LMKUser            // raised by `throw`
	LMKImport          // unreadable or missing imports
	LMKUsage           // control flow used outside of its legal boundary
	LMKResource        // call depth, host I/O
)

// Fault is the single error type raised by the parser and the interpreter.
// It carries a human-readable message and, where available, the position of
// the offending source text.
type Fault struct {
	Kind     int
	Message  string
	Position *TextPosition

	// FilePath is the file the fault was raised in.  It is empty for faults
	// raised in inline source text.
	FilePath string

	// Incomplete is set on syntax faults raised at the end of the input: more
	// input could make the program valid.
	Incomplete bool
}

// Error renders the fault message followed by its position (if known).
func (f *Fault) Error() string {
	if f.Position == nil {
		return f.Message
	}

	return fmt.Sprintf("%s, %s.", f.Message, f.Position)
}

// KindName returns the display name of the fault's kind.
func (f *Fault) KindName() string {
	return kindNames[f.Kind]
}

// NewFault creates a new fault with a formatted message.
func NewFault(kind int, pos *TextPosition, msg string, args ...interface{}) *Fault {
	return &Fault{Kind: kind, Message: fmt.Sprintf(msg, args...), Position: pos}
}

// CatchFault recovers a panic carrying a fault and stores the fault in `err`.
// Any other panic is re-raised.
// NB: This function must ALWAYS be deferred.
func CatchFault(err *error) {
	if x := recover(); x != nil {
		if f, ok := x.(*Fault); ok {
			*err = f
		} else {
			panic(x)
		}
	}
}

// AsFault converts any error into a fault.  Errors which are not faults are
// wrapped with the given kind.
func AsFault(err error, kind int) *Fault {
	if f, ok := err.(*Fault); ok {
		return f
	}

	return &Fault{Kind: kind, Message: err.Error()}
}

// InFile records the file a fault was raised in unless it already knows its
// file.  Errors which are not faults are returned unchanged.
func InFile(err error, path string) error {
	if f, ok := err.(*Fault); ok && f.FilePath == "" {
		f.FilePath = path
	}

	return err
}

// AtPosition records the position a fault was raised at unless it already
// knows its position.  Errors which are not faults are returned unchanged.
func AtPosition(err error, pos *TextPosition) error {
	if f, ok := err.(*Fault); ok && f.Position == nil {
		f.Position = pos
	}

	return err
}

var kindNames = map[int]string{
	LMKSyntax:   "Syntax",
	LMKName:     "Name",
	LMKDef:      "Definition",
	LMKArg:      "Argument",
	LMKTyping:   "Type",
	LMKRange:    "Range",
	LMKUser:     "User",
	LMKImport:   "Import",
	LMKUsage:    "Usage",
	LMKResource: "Resource",
}
