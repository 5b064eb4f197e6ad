// Package faux provides typed method stubbing for Go tests.
// Each stubbable method is a typed Method identity; stubs and expectations
// are registered per fake instance, and calls are dispatched through a
// store that checks argument matchers, call counts and unmet expectations.
//
// This is the public API entry point. Implementation lives in internal/core.
//
// Example:
//
//	var calcAdd = faux.NewMethod[faux.Args2[int, int], int]("Calculator", "Add")
//
//	fake := faux.ForTest(t, "Calculator")
//	faux.When(fake, calcAdd).WithArgs(2, 3).ThenReturn(5)
//	faux.Expect(fake, calcAdd).WithArgs(2, 3)
//
//	got := faux.Dispatch(fake, calcAdd, faux.Args2[int, int]{A0: 2, A1: 3})
package faux

import (
	"go.uber.org/zap"

	"github.com/toejough/faux/internal/core"
)

// Exported variables.
var (
	// ErrArgsMismatch is wrapped by every *MismatchError.
	ErrArgsMismatch = core.ErrArgsMismatch
	// ErrExhausted is returned by a stub that has no calls left.
	ErrExhausted = core.ErrExhausted
	// ErrNeverStubbed marks a call to a method without stubs.
	ErrNeverStubbed = core.ErrNeverStubbed
	// ErrNoSuitableStub marks a call every stub rejected.
	ErrNoSuitableStub = core.ErrNoSuitableStub
	// ErrTypeMismatch reports a method identity reused with other types.
	ErrTypeMismatch = core.ErrTypeMismatch
	// ErrUnmetExpectations marks expected calls that never happened.
	ErrUnmetExpectations = core.ErrUnmetExpectations
)

// Types re-exported from internal/core.

// Args1 through Args10 are argument tuples for methods with that many
// parameters.
type (
	Args1[T0 any]                                      = core.Args1[T0]
	Args2[T0, T1 any]                                  = core.Args2[T0, T1]
	Args3[T0, T1, T2 any]                              = core.Args3[T0, T1, T2]
	Args4[T0, T1, T2, T3 any]                          = core.Args4[T0, T1, T2, T3]
	Args5[T0, T1, T2, T3, T4 any]                      = core.Args5[T0, T1, T2, T3, T4]
	Args6[T0, T1, T2, T3, T4, T5 any]                  = core.Args6[T0, T1, T2, T3, T4, T5]
	Args7[T0, T1, T2, T3, T4, T5, T6 any]              = core.Args7[T0, T1, T2, T3, T4, T5, T6]
	Args8[T0, T1, T2, T3, T4, T5, T6, T7 any]          = core.Args8[T0, T1, T2, T3, T4, T5, T6, T7]
	Args9[T0, T1, T2, T3, T4, T5, T6, T7, T8 any]      = core.Args9[T0, T1, T2, T3, T4, T5, T6, T7, T8]
	Args10[T0, T1, T2, T3, T4, T5, T6, T7, T8, T9 any] = core.Args10[T0, T1, T2, T3, T4, T5, T6, T7, T8, T9]
)

// ArgumentMatch is the outcome of matching one argument position.
type ArgumentMatch = core.ArgumentMatch

// Expectation is a registered expected call.
type Expectation[A any] = core.Expectation[A]

// Faux is a handle to a fake instance.
type Faux = core.Faux

// InvocationError is the failure of a dispatched call.
type InvocationError = core.InvocationError

// InvocationMatcher decides whether a call's argument tuple is accepted.
type InvocationMatcher[A any] = core.InvocationMatcher[A]

// Matcher defines the interface for flexible value matching.
type Matcher = core.Matcher

// MaybeFaux holds either a real value or a fake handle.
type MaybeFaux[T any] = core.MaybeFaux[T]

// Method is the typed identity of one stubbable method.
type Method[A, O any] = core.Method[A, O]

// MethodID identifies a method for the life of the process.
type MethodID = core.MethodID

// MismatchError reports an argument tuple rejected by a matcher.
type MismatchError = core.MismatchError

// NoArgs is the argument tuple of a method without parameters.
type NoArgs = core.NoArgs

// Once configures a stub answering a single call.
type Once[A, O any] = core.OnceBuilder[A, O]

// Option configures a fake instance.
type Option = core.Option

// Positional is implemented by argument tuples.
type Positional = core.Positional

// TestReporter is the minimal interface faux needs from test frameworks.
type TestReporter = core.TestReporter

// WhenBuilder configures a repeatable stub.
type WhenBuilder[A, O any] = core.WhenBuilder[A, O]

// Functions re-exported from internal/core.

// AnyArgs returns an InvocationMatcher accepting every call.
func AnyArgs[A any]() InvocationMatcher[A] {
	return core.AnyArgs[A]()
}

// ArgsMatching returns a positional InvocationMatcher.
func ArgsMatching[A any](values ...any) InvocationMatcher[A] {
	return core.ArgsMatching[A](values...)
}

// ArgsWhere returns an InvocationMatcher built from a whole-tuple predicate.
func ArgsWhere[A any](label string, predicate func(A) bool) InvocationMatcher[A] {
	return core.ArgsWhere(label, predicate)
}

// Call dispatches to the fake held by mf, or to callReal.
func Call[T, A, O any](mf MaybeFaux[T], method Method[A, O], args A, callReal func(T, A) O) O {
	return core.Call(mf, method, args, callReal)
}

// Dispatch calls method on f, panicking with *InvocationError on failure.
func Dispatch[A, O any](f *Faux, method Method[A, O], args A) O {
	return core.Dispatch(f, method, args)
}

// Expect registers an expected call to method on f.
func Expect[A, O any](f *Faux, method Method[A, O]) *Expectation[A] {
	return core.Expect(f, method)
}

// Fake wraps a fake handle.
func Fake[T any](f *Faux) MaybeFaux[T] {
	return core.Fake[T](f)
}

// ForTest creates a fake instance reporting to t and verified at t's cleanup.
func ForTest(t TestReporter, typeName string, opts ...Option) *Faux {
	t.Helper()

	return core.ForTest(t, typeName, opts...)
}

// LoggerFromEnv returns a development logger when FAUX_DEBUG is enabled.
func LoggerFromEnv(getenv func(string) string) *zap.Logger {
	return core.LoggerFromEnv(getenv)
}

// New creates a fake instance for the named type.
func New(typeName string, opts ...Option) *Faux {
	return core.NewFaux(typeName, opts...)
}

// NewMethod returns the Method for typeName.methodName.
func NewMethod[A, O any](typeName, methodName string) Method[A, O] {
	return core.NewMethod[A, O](typeName, methodName)
}

// Real wraps a real value.
func Real[T any](value T) MaybeFaux[T] {
	return core.Real(value)
}

// TryDispatch calls method on f, returning *InvocationError on failure.
func TryDispatch[A, O any](f *Faux, method Method[A, O], args A) (O, error) {
	return core.TryDispatch(f, method, args)
}

// Verify releases every fake created with ForTest for t.
func Verify(t TestReporter) {
	core.Verify(t)
}

// When starts configuring a stub for method on f.
func When[A, O any](f *Faux, method Method[A, O]) *WhenBuilder[A, O] {
	return core.When(f, method)
}

// WithLogger sets the logger dispatch decisions are written to.
func WithLogger(logger *zap.Logger) Option {
	return core.WithLogger(logger)
}

// WithReporter routes unmet-expectation failures to t.
func WithReporter(t TestReporter) Option {
	return core.WithReporter(t)
}
