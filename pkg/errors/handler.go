package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	// DefaultHandler receives every reported error. Guarded by handlerMu.
	DefaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler installs h as the global handler and returns the previous one.
// A nil h restores a quiet LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	prev := DefaultHandler
	DefaultHandler = h
	handlerMu.Unlock()
	return prev
}

func current() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Report hands a recoverable failure to the global handler, stamping it if
// the caller left Timestamp unset.
func Report(err *ArborError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	current().HandleError(err)
}

// ReportPanic hands a recovered panic to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	current().HandlePanic(err)
}

func recovered(op string, r any) *PanicError {
	return &PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
}

// Recover reports a panic and swallows it. Must be deferred directly:
//
//	defer errors.Recover("layout.Engine.Layout")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(recovered(op, r))
	}
}

// RecoverInto reports a panic and stores it in *errp as a *PanicError, so a
// function with a named error result fails instead of unwinding its caller.
// Must be deferred directly.
func RecoverInto(op string, errp *error) {
	if r := recover(); r != nil {
		perr := recovered(op, r)
		ReportPanic(perr)
		if errp != nil {
			*errp = perr
		}
	}
}

// CaptureStack returns the calling goroutine's stack, one "function\n\tfile:line"
// entry per frame. Frames of the panic machinery are dropped so a trace
// taken during recovery starts at the panicking widget.
func CaptureStack() string {
	var pcs [48]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var sb strings.Builder
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, "runtime.") && !isRecoverHelper(frame.Function) {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

func isRecoverHelper(fn string) bool {
	return strings.HasSuffix(fn, "/errors.CaptureStack") ||
		strings.HasSuffix(fn, "/errors.recovered") ||
		strings.HasSuffix(fn, "/errors.Recover") ||
		strings.HasSuffix(fn, "/errors.RecoverInto")
}
