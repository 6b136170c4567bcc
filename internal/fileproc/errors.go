package fileproc

import (
	"fmt"
	"strings"
	"sync"
)

// ProcessingError records a failure while processing a single file.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects per-file failures from a parallel run. Individual
// failures never abort the batch; callers inspect the collection afterwards.
type ProcessingErrors struct {
	mu     sync.Mutex
	Errors []ProcessingError
}

// Add records one failure. Safe for concurrent use.
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
}

// HasErrors reports whether any failures were recorded.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

func (e *ProcessingErrors) Error() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Errors) == 0 {
		return "no errors"
	}
	parts := make([]string, 0, len(e.Errors))
	for _, pe := range e.Errors {
		parts = append(parts, pe.Error())
	}
	return fmt.Sprintf("%d file(s) failed: %s", len(e.Errors), strings.Join(parts, "; "))
}
