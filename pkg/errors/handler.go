package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler is the global error handler.
	// It defaults to LogHandler with verbose=false.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler configures the global error handler and returns the one it
// replaced. Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	defer handlerMu.Unlock()
	prev := DefaultHandler
	DefaultHandler = h
	return prev
}

func handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report sends an error to the global handler. An empty StackTrace is
// captured from the caller and a zero Timestamp set to the current time.
func Report(err *PagerError) {
	if err == nil {
		return
	}
	if err.StackTrace == "" {
		err.StackTrace = CaptureStack()
	}
	stamp(&err.Timestamp)
	if h := handler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	if h := handler(); h != nil {
		h.HandlePanic(err)
	}
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Recover reports a panic in the deferring function and stops it.
// Usage: defer errors.Recover("pager.FinishUpdate")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
		})
	}
}

// CaptureStack returns the current call stack as a string, starting at
// the caller of the function that calls CaptureStack.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			return sb.String()
		}
	}
}

// Recorder is an ErrorHandler that keeps every report in memory. It is
// safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	errs   []*PagerError
	panics []*PanicError
}

// HandleError records err.
func (r *Recorder) HandleError(err *PagerError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}

// HandlePanic records err.
func (r *Recorder) HandlePanic(err *PanicError) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panics = append(r.panics, err)
}

// Errors returns the errors recorded so far.
func (r *Recorder) Errors() []*PagerError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*PagerError(nil), r.errs...)
}

// Panics returns the panics recorded so far.
func (r *Recorder) Panics() []*PanicError {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*PanicError(nil), r.panics...)
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs, r.panics = nil, nil
}
