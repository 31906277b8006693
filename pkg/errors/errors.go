// Package errors provides structured error handling for arbor.
//
// Two families of failure exist. Runtime errors (configuration, rendering
// backends, dropped interaction deliveries) are values of [ArborError] and
// flow through the pluggable [ErrorHandler]. Programming errors in widget
// implementations ([ContractError], [StaleIDError]) are raised as panics,
// since no safe default exists once a widget breaks the layout protocol.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindLayout indicates a failure while running the layout protocol.
	KindLayout
	// KindTree indicates a widget arena failure such as a stale id.
	KindTree
	// KindContract indicates a widget broke the widget contract.
	KindContract
	// KindDispatch indicates an interaction or message could not be delivered.
	KindDispatch
	// KindRender indicates a rendering backend error.
	KindRender
	// KindConfig indicates a configuration loading or validation error.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindLayout:
		return "layout"
	case KindTree:
		return "tree"
	case KindContract:
		return "contract"
	case KindDispatch:
		return "dispatch"
	case KindRender:
		return "render"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ArborError represents a structured runtime error.
type ArborError struct {
	// Op is the operation that failed (e.g., "raster.Surface.SavePNG").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ArborError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ArborError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "engine.App.Frame").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ContractError reports a widget that broke the widget contract, for
// example by requesting a child size while declaring no children. It is
// raised with panic.
type ContractError struct {
	// Widget is the type name of the offending widget.
	Widget string
	// Reason describes the violation.
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("contract violation in %s: %s", e.Widget, e.Reason)
}

// StaleIDError reports a lookup against a widget id that was removed or
// never issued. Outside teardown traversals it is raised with panic.
type StaleIDError struct {
	// Op is the operation that performed the lookup (e.g., "layout.Engine.Layout").
	Op string
	// ID is the dangling widget id.
	ID any
	// Err is the underlying lookup error.
	Err error
}

func (e *StaleIDError) Error() string {
	return fmt.Sprintf("%s: stale widget id %v: %v", e.Op, e.ID, e.Err)
}

func (e *StaleIDError) Unwrap() error {
	return e.Err
}

// Is, As and New re-export the standard library helpers so callers need a
// single errors import.
var (
	Is  = stderrors.Is
	As  = stderrors.As
	New = stderrors.New
)

// ErrorHandler receives errors reported by arbor.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *ArborError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
