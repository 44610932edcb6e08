package selection

import "fmt"

// PreconditionError describes a UI event that broke a controller contract:
// a token outside the mounted options, a mode the category does not offer,
// or a render command for a channel the category does not own.
type PreconditionError struct {
	Category  Category
	Operation string
	Token     string
	Reason    string
	Err       error
}

func (e *PreconditionError) Error() string {
	msg := fmt.Sprintf("%s: %s %q: %s", e.Category, e.Operation, e.Token, e.Reason)
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the wrapped cause.
func (e *PreconditionError) Unwrap() error { return e.Err }

// ViolationHandler decides what happens on a precondition violation. The
// controller always leaves the store and aggregator untouched afterwards.
type ViolationHandler interface {
	Violation(err *PreconditionError)
}

// ViolationFunc adapts a function to ViolationHandler.
type ViolationFunc func(err *PreconditionError)

// Violation implements ViolationHandler.
func (f ViolationFunc) Violation(err *PreconditionError) {
	if f != nil {
		f(err)
	}
}

type panicHandler struct{}

func (panicHandler) Violation(err *PreconditionError) { panic(err) }

// PanicOnViolation is the development handler: violations are assertion failures.
func PanicOnViolation() ViolationHandler { return panicHandler{} }

// IgnoreViolations silently drops violations.
func IgnoreViolations() ViolationHandler { return ViolationFunc(func(*PreconditionError) {}) }
