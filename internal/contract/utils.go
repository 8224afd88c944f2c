package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	ErrorColor = color.New(color.FgRed, color.Bold) // marks fatal conditions
	WarnColor  = color.New(color.FgYellow)          // marks degraded-but-continuing conditions
	OKColor    = color.New(color.FgGreen)           // marks successful milestones
)

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "%s %s: %v\n", ErrorColor.Sprint("Fatal"), msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr. A nil err prints the
// message alone.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%s %s: %v\n", WarnColor.Sprint("Warning"), msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", WarnColor.Sprint("Warning"), msg)
}
