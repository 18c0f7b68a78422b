// Package internal provides shared support code for the parallel
// execution packages.
package internal

import (
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

type runtimeError struct{ error }

func (runtimeError) RuntimeError() {}

// WrapPanic adds stack trace information to a panic value recovered on
// a forked goroutine, so that the panic rethrown after the join still
// points at the code that failed.
func WrapPanic(p interface{}) interface{} {
	if p == nil {
		return nil
	}
	s := fmt.Sprintf("%v\n%s\nrethrown at", p, debug.Stack())
	if _, isError := p.(error); isError {
		r := errors.New(s)
		if _, isRuntimeError := p.(runtime.Error); isRuntimeError {
			return runtimeError{r}
		}
		return r
	}
	return s
}
