package bruteforce

import (
	"errors"
	"fmt"
)

// PanicError reports a panic raised inside a worker, either by the checking
// function or by the state initialization.
type PanicError struct {
	worker int
	value  any
	stack  []byte
}

func newPanicError(worker int, value any, stack []byte) *PanicError {
	return &PanicError{worker: worker, value: value, stack: stack}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s: worker %d: %v", ErrWorkerPanicked.Error(), e.worker, e.value)
}

// Unwrap exposes ErrWorkerPanicked and, when the panic value is itself an error, that error.
func (e *PanicError) Unwrap() []error {
	if err, ok := e.value.(error); ok {
		return []error{ErrWorkerPanicked, err}
	}
	return []error{ErrWorkerPanicked}
}

// Worker returns the index of the worker that panicked.
func (e *PanicError) Worker() int { return e.worker }

// Value returns the value passed to panic.
func (e *PanicError) Value() any { return e.value }

// Stack returns the stack trace captured when the panic was recovered.
func (e *PanicError) Stack() []byte { return e.stack }

func (e *PanicError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "%s\n%s", e.Error(), e.stack)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// workerExitError reports a worker that stopped without returning normally and
// without panicking, i.e. through runtime.Goexit.
type workerExitError struct {
	worker int
}

func (e *workerExitError) Error() string {
	return fmt.Sprintf("%s: worker %d", ErrWorkerExited.Error(), e.worker)
}

func (e *workerExitError) Unwrap() error { return ErrWorkerExited }

func (e *workerExitError) Worker() int { return e.worker }

// ExtractWorker returns the index of the worker that caused err, if err was raised by a worker.
func ExtractWorker(err error) (int, bool) {
	var we interface{ Worker() int }
	if errors.As(err, &we) {
		return we.Worker(), true
	}
	return 0, false
}
