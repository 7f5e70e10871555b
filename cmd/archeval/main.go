package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess          = 0 // Assessment completed with no critical findings
	ExitCriticalFindings = 1 // Assessment completed but produced critical recommendations
	ExitError            = 2 // Configuration or runtime error
)

// CriticalFindingsError indicates that the assessment ran successfully but
// produced one or more Critical-priority recommendations.
type CriticalFindingsError struct {
	Count int
}

func (e *CriticalFindingsError) Error() string {
	return fmt.Sprintf("assessment produced %d critical recommendation(s)", e.Count)
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var criticalErr *CriticalFindingsError
		if errors.As(err, &criticalErr) {
			os.Exit(ExitCriticalFindings)
		}

		os.Exit(ExitError)
	}
}
