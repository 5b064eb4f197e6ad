package core

import (
	"fmt"
)

// When starts configuring a stub for method on f. The stub accepts every
// call until narrowed with WithArgs or WithArgsMatching, and answers every
// accepted call until limited with Times or Once.
//
// Example:
//
//	faux.When(fake, calcAdd).WithArgs(2, 3).Times(2).ThenReturn(5)
func When[A, O any](f *Faux, method Method[A, O]) *WhenBuilder[A, O] {
	f.mustBeLive("When")

	return &WhenBuilder[A, O]{
		faux:    f,
		method:  method,
		matcher: AnyArgs[A](),
		times:   Always(),
	}
}

// WhenBuilder configures a repeatable stub. It is single use: the first
// Then or ThenReturn registers the stub, a second one panics.
type WhenBuilder[A, O any] struct {
	faux    *Faux
	method  Method[A, O]
	matcher InvocationMatcher[A]
	times   Times
	done    bool
}

// Once switches to a stub answering a single call.
func (w *WhenBuilder[A, O]) Once() *OnceBuilder[A, O] {
	w.mustBeOpen()
	w.done = true

	return &OnceBuilder[A, O]{faux: w.faux, method: w.method, matcher: w.matcher}
}

// Then registers the stub with fn as its answer.
func (w *WhenBuilder[A, O]) Then(fn func(A) O) {
	w.mustBeOpen()
	w.done = true

	AddStub(w.faux.store, w.method, NewStub(w.matcher, ManyAnswer(fn, w.times)))
}

// ThenReturn registers the stub answering every accepted call with out.
func (w *WhenBuilder[A, O]) ThenReturn(out O) {
	w.Then(func(A) O { return out })
}

// Times limits the stub to n calls. It panics if n < 1.
func (w *WhenBuilder[A, O]) Times(n int) *WhenBuilder[A, O] {
	w.mustBeOpen()
	w.times = Count(n)

	return w
}

// WithArgs narrows the stub to calls whose arguments match values
// positionally. Plain values are compared with match.Eq.
func (w *WhenBuilder[A, O]) WithArgs(values ...any) *WhenBuilder[A, O] {
	return w.WithArgsMatching(ArgsMatching[A](values...))
}

// WithArgsMatching narrows the stub to calls accepted by matcher.
func (w *WhenBuilder[A, O]) WithArgsMatching(matcher InvocationMatcher[A]) *WhenBuilder[A, O] {
	w.mustBeOpen()
	w.matcher = matcher

	return w
}

func (w *WhenBuilder[A, O]) mustBeOpen() {
	if w.done {
		panic(fmt.Sprintf("faux: stub builder for %s already used", w.method.FullName()))
	}
}

// OnceBuilder configures a stub answering a single call. It has no Times, so
// a one-shot stub cannot be made repeatable.
type OnceBuilder[A, O any] struct {
	faux    *Faux
	method  Method[A, O]
	matcher InvocationMatcher[A]
	done    bool
}

// Then registers the one-shot stub with fn as its answer.
func (o *OnceBuilder[A, O]) Then(fn func(A) O) {
	o.mustBeOpen()
	o.done = true

	AddStub(o.faux.store, o.method, NewStub(o.matcher, OnceAnswer(fn)))
}

// ThenReturn registers the one-shot stub answering with out.
func (o *OnceBuilder[A, O]) ThenReturn(out O) {
	o.Then(func(A) O { return out })
}

// WithArgs narrows the stub to calls whose arguments match values
// positionally.
func (o *OnceBuilder[A, O]) WithArgs(values ...any) *OnceBuilder[A, O] {
	return o.WithArgsMatching(ArgsMatching[A](values...))
}

// WithArgsMatching narrows the stub to calls accepted by matcher.
func (o *OnceBuilder[A, O]) WithArgsMatching(matcher InvocationMatcher[A]) *OnceBuilder[A, O] {
	o.mustBeOpen()
	o.matcher = matcher

	return o
}

func (o *OnceBuilder[A, O]) mustBeOpen() {
	if o.done {
		panic(fmt.Sprintf("faux: stub builder for %s already used", o.method.FullName()))
	}
}

// Expect registers an expectation that method is called on f before the last
// handle is released. Any call satisfies it until narrowed with WithArgs or
// WithArgsMatching.
//
// Example:
//
//	faux.Expect(fake, calcAdd).WithArgs(2, 3)
func Expect[A, O any](f *Faux, method Method[A, O]) *Expectation[A] {
	f.mustBeLive("Expect")

	return &Expectation[A]{
		store: f.store,
		saved: AddExpectation(f.store, method, AnyArgs[A]()),
	}
}

// Expectation is a registered expectation. Narrowing it replaces its matcher
// in place.
type Expectation[A any] struct {
	store *Store
	saved *SavedExpectation
}

// WithArgs requires the expected call's arguments to match values
// positionally.
func (e *Expectation[A]) WithArgs(values ...any) *Expectation[A] {
	return e.WithArgsMatching(ArgsMatching[A](values...))
}

// WithArgsMatching requires the expected call to be accepted by matcher.
func (e *Expectation[A]) WithArgsMatching(matcher InvocationMatcher[A]) *Expectation[A] {
	SetExpectationMatcher(e.store, e.saved, matcher)

	return e
}
