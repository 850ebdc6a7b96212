// util/error.go
// Copyright(c) 2022-2025 transposer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmp/transposer/log"
)

// ErrorLogger is a small utility class used to log errors when validating
// parsed input files. It tracks context about what is currently being
// validated and accumulates multiple errors, making it possible to report
// every problem in a file at once rather than stopping at the first.
type ErrorLogger struct {
	// Tracked via Push()/Pop() calls to remember what we're looking at if
	// an error is found.
	hierarchy []string
	// Actual errors to report, with their context prepended.
	errors []error
}

func (e *ErrorLogger) Push(s string) {
	e.hierarchy = append(e.hierarchy, s)
}

func (e *ErrorLogger) Pop() {
	e.hierarchy = e.hierarchy[:len(e.hierarchy)-1]
}

func (e *ErrorLogger) context() string {
	if len(e.hierarchy) == 0 {
		return ""
	}
	return strings.Join(e.hierarchy, " / ") + ": "
}

func (e *ErrorLogger) ErrorString(s string, args ...interface{}) {
	e.errors = append(e.errors, errors.New(e.context()+fmt.Sprintf(s, args...)))
}

// Error records err; the original error remains available to errors.Is
// via Err.
func (e *ErrorLogger) Error(err error) {
	e.errors = append(e.errors, fmt.Errorf("%s%w", e.context(), err))
}

func (e *ErrorLogger) HaveErrors() bool {
	return len(e.errors) > 0
}

// Err returns all of the recorded errors joined together, or nil if there
// were none.
func (e *ErrorLogger) Err() error {
	return errors.Join(e.errors...)
}

func (e *ErrorLogger) PrintErrors(w io.Writer, lg *log.Logger) {
	// Two loops so they aren't interleaved with logging to stderr
	if lg != nil {
		for _, err := range e.errors {
			lg.Errorf("%+v", err)
		}
	}
	for _, err := range e.errors {
		fmt.Fprintln(w, err)
	}
}

func (e *ErrorLogger) String() string {
	var s []string
	for _, err := range e.errors {
		s = append(s, err.Error())
	}
	return strings.Join(s, "\n")
}

func (e *ErrorLogger) CurrentDepth() int {
	if e == nil {
		return 0
	}
	return len(e.hierarchy)
}
