package logging

import "fmt"

// TextPosition represents a positional range in the source text.  Lines and
// columns are counted from 1; the end column is one past the last character.
type TextPosition struct {
	StartLn, StartCol int // starting line, starting column
	EndLn, EndCol     int // ending line, column trailing the text (one over)
}

func (tp *TextPosition) String() string {
	return fmt.Sprintf("line %d, column %d", tp.StartLn, tp.StartCol)
}
