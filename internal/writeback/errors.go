package writeback

import (
	"errors"
	"fmt"

	"github.com/agentic-research/spyglass/internal/locator"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrComponentNotFound = errors.New("component not found")
	ErrPathResolution    = errors.New("path resolution failed")
	ErrUnsupportedLeaf   = errors.New("unsupported leaf kind")
)

// ErrorKind classifies a failed write.
type ErrorKind int

const (
	ObjectNotFound ErrorKind = iota + 1
	ComponentNotFound
	PathResolutionFailed
	UnsupportedLeafKind
)

func (k ErrorKind) sentinel() error {
	switch k {
	case ObjectNotFound:
		return ErrObjectNotFound
	case ComponentNotFound:
		return ErrComponentNotFound
	case PathResolutionFailed:
		return ErrPathResolution
	case UnsupportedLeafKind:
		return ErrUnsupportedLeaf
	}
	return nil
}

func (k ErrorKind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}
	return "unknown"
}

// Error describes why a locator could not be written. Step is the index of
// the failing step, or -1 when the failure is not tied to one.
type Error struct {
	Kind    ErrorKind
	Locator locator.Locator
	Step    int
	Detail  string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Locator, e.Kind)
	if e.Step >= 0 && e.Step < len(e.Locator.Steps) {
		msg += fmt.Sprintf(" at step %d (%s)", e.Step, e.Locator.Steps[e.Step])
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Kind.sentinel() }

func newError(kind ErrorKind, loc locator.Locator, step int, format string, args ...any) *Error {
	return &Error{Kind: kind, Locator: loc, Step: step, Detail: fmt.Sprintf(format, args...)}
}
