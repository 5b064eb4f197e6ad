package core

import (
	"errors"
	"fmt"
	"strings"
)

// Exported variables.
var (
	// ErrArgsMismatch is wrapped by every *MismatchError.
	ErrArgsMismatch = errors.New("arguments did not match")
	// ErrExhausted is returned by a stub that has no calls left.
	ErrExhausted = errors.New("this stub has been exhausted")
	// ErrNeverStubbed is the kind of an InvocationError for a method without stubs.
	ErrNeverStubbed = errors.New("method was never stubbed")
	// ErrNoSuitableStub is the kind of an InvocationError whose stubs all rejected the call.
	ErrNoSuitableStub = errors.New("no suitable stubs")
	// ErrTypeMismatch reports a method identity used with types other than
	// the ones it was registered with.
	ErrTypeMismatch = errors.New("faux: method type mismatch")
	// ErrUnmetExpectations is returned by Verify when expected calls never happened.
	ErrUnmetExpectations = errors.New("unmet expectations")
)

// InvocationError is the failure of a dispatched call: either the method was
// never stubbed, or every registered stub rejected the call. Causes holds one
// rejection per candidate stub, newest first.
type InvocationError struct {
	TypeName string
	Method   string
	Kind     error
	Causes   []error
}

func (e *InvocationError) Error() string {
	name := e.TypeName + "." + e.Method

	if errors.Is(e.Kind, ErrNeverStubbed) {
		return fmt.Sprintf("`%s` was called but the %s", name, ErrNeverStubbed)
	}

	var builder strings.Builder

	fmt.Fprintf(&builder, "`%s` had no suitable stubs. Existing stubs failed because:", name)

	for i, cause := range e.Causes {
		if i > 0 {
			builder.WriteString("\n")
		}

		builder.WriteString("\n✗ ")
		builder.WriteString(cause.Error())
	}

	return builder.String()
}

// Unwrap exposes the error kind followed by every candidate's rejection, so
// errors.Is works for ErrNeverStubbed, ErrNoSuitableStub, ErrExhausted and
// ErrArgsMismatch.
func (e *InvocationError) Unwrap() []error {
	return append([]error{e.Kind}, e.Causes...)
}
