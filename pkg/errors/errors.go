// Package errors provides structured error reporting for the pager.
//
// Failures inside the pager core are recoverable by construction: the host
// container keeps rendering whatever it already has. Instead of returning
// these failures, the core reports them here and carries on.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindDuplicateContent indicates content was materialized while the host
	// already held it.
	KindDuplicateContent
	// KindCommit indicates a host transaction failed to commit.
	KindCommit
	// KindRestore indicates a saved state entry could not be restored.
	KindRestore
	// KindPanic marks a panic recovered by Recover.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindDuplicateContent:
		return "duplicate"
	case KindCommit:
		return "commit"
	case KindRestore:
		return "restore"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

var (
	// ErrDuplicateContent is returned by a host transaction when content is
	// added while it is already live.
	ErrDuplicateContent = errors.New("content already added")
	// ErrUnresolvedContent means a saved content key no longer resolves.
	ErrUnresolvedContent = errors.New("content key does not resolve")
	// ErrNoContent means the provider returned nil content.
	ErrNoContent = errors.New("provider returned no content")
)

// NoIndex marks a PagerError that is not tied to a page.
const NoIndex = -1

// PagerError represents a structured error raised by the pager.
type PagerError struct {
	// Op is the operation that failed (e.g., "pager.MaterializeAt").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Index is the relative page index involved, or NoIndex.
	Index int
	Err   error

	// StackTrace and Timestamp are filled in by Report when left empty.
	StackTrace string
	Timestamp  time.Time
}

func (e *PagerError) Error() string {
	if e.Index != NoIndex {
		return fmt.Sprintf("%s [%s] index=%d: %v", e.Op, e.Kind, e.Index, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *PagerError) Unwrap() error {
	return e.Err
}

// PanicError is a panic recovered inside a pager operation such as
// "pager.FinishUpdate".
type PanicError struct {
	Op         string
	Value      any
	StackTrace string
	Timestamp  time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the pager.
type ErrorHandler interface {
	// HandleError is called when a recoverable error occurs.
	HandleError(err *PagerError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
