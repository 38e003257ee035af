package logging

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console
func PrintErrorMessage(tag string, err error) {
	fmt.Fprint(os.Stdout, ErrorStyleBG.Sprint(tag))
	fmt.Fprintln(os.Stdout, ErrorColorFG.Sprint(" "+err.Error()))
}

// PrintInfoMessage prints an informational message to the user
func PrintInfoMessage(tag, msg string) {
	displayInfoMessage(os.Stdout, tag, msg)
}

func displayInfoMessage(out io.Writer, tag, msg string) {
	fmt.Fprint(out, InfoStyleBG.Sprint(tag))
	fmt.Fprintln(out, InfoColorFG.Sprint(" "+msg))
}

// -----------------------------------------------------------------------------
// This section contains all the display functions for the different kinds of
// messages that can be logged.

func (cm *ConfigMessage) display(out io.Writer) {
	if cm.IsError {
		fmt.Fprint(out, ErrorStyleBG.Sprint(cm.Kind+" Error"))
		fmt.Fprintln(out, ErrorColorFG.Sprint(" "+cm.Message))
	} else {
		fmt.Fprint(out, WarnStyleBG.Sprint(cm.Kind+" Warning"))
		fmt.Fprintln(out, WarnColorFG.Sprint(" "+cm.Message))
	}
}

func (sm *ScriptMessage) display(out io.Writer) {
	sm.displayBanner(out)
	fmt.Fprintln(out, sm.Fault.Message)

	if sm.Fault.Position != nil {
		fmt.Fprintf(out, "at %s\n", sm.Fault.Position)
		sm.displayCodeSelection(out)
	}
}

// displayBanner displays the banner on top of all script messages
func (sm *ScriptMessage) displayBanner(out io.Writer) {
	fmt.Fprint(out, "\n-- ")
	kindStr := sm.Fault.KindName()
	kindLen := len(kindStr)
	if sm.IsError {
		fmt.Fprint(out, ErrorStyleBG.Sprint(kindStr+" Error"))
		kindLen += 6
	} else {
		fmt.Fprint(out, WarnStyleBG.Sprint(kindStr+" Warning"))
		kindLen += 8
	}

	fmt.Fprint(out, " ")

	fileName := "<inline>"
	if sm.Context != nil && sm.Context.FilePath != "" {
		fileName = filepath.Base(sm.Context.FilePath)
	}

	bannerLen := pterm.GetTerminalWidth() / 2
	if bannerLen > 50 {
		bannerLen = 50
	}

	dashCount := bannerLen - len(fileName) - kindLen - 1
	if dashCount < 1 {
		dashCount = 1
	}

	fmt.Fprint(out, strings.Repeat("-", dashCount)+" ")
	fmt.Fprintln(out, InfoColorFG.Sprint(fileName))
}

// sourceLines returns the lines of the message's source text
func (sm *ScriptMessage) sourceLines() []string {
	if sm.Context == nil {
		return nil
	}

	if sm.Context.Source != "" {
		return strings.Split(sm.Context.Source, "\n")
	}

	if sm.Context.FilePath == "" {
		return nil
	}

	f, err := os.Open(sm.Context.FilePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanLines)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}

	return lines
}

// displayCodeSelection displays the erroneous code (with line numbers) and
// highlights the appropriate sections
func (sm *ScriptMessage) displayCodeSelection(out io.Writer) {
	pos := sm.Fault.Position
	allLines := sm.sourceLines()
	if pos.StartLn < 1 || pos.EndLn > len(allLines) || pos.EndLn < pos.StartLn {
		return
	}

	fmt.Fprintln(out)

	lines := make([]string, pos.EndLn-pos.StartLn+1)
	for i := range lines {
		lines[i] = strings.ReplaceAll(allLines[pos.StartLn-1+i], "\t", "    ")
	}

	// calculate whitespace to trim
	minWhitespace := -1
	for _, line := range lines {
		leadingWhitespace := len(line) - len(strings.TrimLeft(line, " "))

		if minWhitespace == -1 || minWhitespace > leadingWhitespace {
			minWhitespace = leadingWhitespace
		}
	}

	// calculate the amount to pad line numbers by and use it to build a padding
	// format string (so we can use it to print out line numbers neatly)
	maxLineNumberWidth := len(strconv.Itoa(pos.EndLn)) + 1
	lineNumberFmtStr := "%-" + strconv.Itoa(maxLineNumberWidth) + "v"

	// print each line followed by the line of selecting carrets
	for i, line := range lines {
		fmt.Fprint(out, InfoColorFG.Sprint(fmt.Sprintf(lineNumberFmtStr, i+pos.StartLn)))
		fmt.Fprint(out, "|  ")
		fmt.Fprintln(out, line[minWhitespace:])

		fmt.Fprint(out, strings.Repeat(" ", maxLineNumberWidth), "|  ")

		start, end := 0, len(line)-minWhitespace
		if i == 0 {
			start = clamp(pos.StartCol-1-minWhitespace, 0, end)
		}
		if i == len(lines)-1 {
			end = clamp(pos.EndCol-1-minWhitespace, start, end)
		}

		if end == start {
			end = start + 1
		}

		fmt.Fprint(out, strings.Repeat(" ", start))
		fmt.Fprintln(out, ErrorColorFG.Sprint(strings.Repeat("^", end-start)))
	}

	fmt.Fprintln(out)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}

	if n > hi {
		return hi
	}

	return n
}

// -----------------------------------------------------------------------------

// displayRunFinished displays a run finished message
func displayRunFinished(out io.Writer, success bool, errorCount int, elapsed time.Duration) {
	fmt.Fprint(out, "\n")

	if success {
		fmt.Fprint(out, SuccessColorFG.Sprint("All done! "))
	} else {
		fmt.Fprint(out, ErrorColorFG.Sprint("Oh no! "))
	}

	fmt.Fprint(out, "(")

	switch errorCount {
	case 0:
		fmt.Fprint(out, SuccessColorFG.Sprint(0))
		fmt.Fprint(out, " errors, ")
	case 1:
		fmt.Fprint(out, ErrorColorFG.Sprint(1))
		fmt.Fprint(out, " error, ")
	default:
		fmt.Fprint(out, ErrorColorFG.Sprint(errorCount))
		fmt.Fprint(out, " errors, ")
	}

	fmt.Fprintf(out, "%.3fs)\n", elapsed.Seconds())
}
