package walk

import "cfgs/logging"

// signalKind enumerates the control signals.
type signalKind int

const (
	sigNone signalKind = iota
	sigBreak
	sigContinue
	sigReturn
)

// signal is a control flow signal unwinding through statement execution.  It
// is returned beside the error of every statement.  Loops intercept break and
// continue; function calls intercept return.
type signal struct {
	kind  signalKind
	value Value
	pos   *logging.TextPosition
}

// misuse returns the error for a signal that escaped its legal boundary.
func (s signal) misuse() error {
	switch s.kind {
	case sigBreak:
		return logging.NewFault(logging.LMKUsage, s.pos, "`break` outside of a loop")
	case sigContinue:
		return logging.NewFault(logging.LMKUsage, s.pos, "`continue` outside of a loop")
	case sigReturn:
		return logging.NewFault(logging.LMKUsage, s.pos, "`return` outside of a function")
	}

	return nil
}
