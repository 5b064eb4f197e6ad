package core

import (
	"fmt"
	"sync"
)

// Answer is what a stub does once its matcher accepts a call: nothing
// (exhausted), run a closure once, or run a closure a bounded or unbounded
// number of times.
type Answer[A, O any] struct {
	kind  answerKind
	fn    func(A) O
	times Times
}

// ExhaustedAnswer returns an answer that always fails with ErrExhausted.
func ExhaustedAnswer[A, O any]() Answer[A, O] {
	return Answer[A, O]{kind: answerExhausted}
}

// ManyAnswer returns an answer running fn as many times as times allows.
func ManyAnswer[A, O any](fn func(A) O, times Times) Answer[A, O] {
	return Answer[A, O]{kind: answerMany, fn: fn, times: times}
}

// OnceAnswer returns an answer running fn at most once.
func OnceAnswer[A, O any](fn func(A) O) Answer[A, O] {
	return Answer[A, O]{kind: answerOnce, fn: fn}
}

func (a *Answer[A, O]) String() string {
	switch a.kind {
	case answerOnce:
		return "once"
	case answerMany:
		return a.times.String()
	default:
		return "exhausted"
	}
}

// take consumes one use of the answer and returns the closure to run.
// The use that reaches the limit still succeeds; the answer becomes
// exhausted as a side effect of that same use.
func (a *Answer[A, O]) take() (func(A) O, error) {
	switch a.kind {
	case answerMany:
		if next, more := a.times.decrement(); more {
			a.times = next

			return a.fn, nil
		}

		fn := a.fn
		*a = ExhaustedAnswer[A, O]()

		return fn, nil
	case answerOnce:
		fn := a.fn
		*a = ExhaustedAnswer[A, O]()

		return fn, nil
	default:
		return nil, ErrExhausted
	}
}

// Stub is one registered behavior for a method: a matcher over the argument
// tuple plus an answer.
type Stub[A, O any] struct {
	matcher InvocationMatcher[A]

	mu     sync.Mutex // Protects answer
	answer Answer[A, O]
}

// NewStub creates a stub.
func NewStub[A, O any](matcher InvocationMatcher[A], answer Answer[A, O]) *Stub[A, O] {
	return &Stub[A, O]{matcher: matcher, answer: answer}
}

// Call matches args and, if accepted, consumes one use and runs the answer.
// Failures are the matcher's error or ErrExhausted.
func (s *Stub[A, O]) Call(args A) (O, error) {
	fn, err := s.claim(args)
	if err != nil {
		var zero O

		return zero, err
	}

	return fn(args), nil
}

// Expectations returns the stub matcher's per-argument descriptions.
func (s *Stub[A, O]) Expectations() []string {
	return s.matcher.Expectations()
}

func (s *Stub[A, O]) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fmt.Sprintf("stub(%s)", s.answer.String())
}

// claim checks the matcher, then consumes one use of the answer and returns
// its closure without running it. The matcher runs without the stub's lock
// held; only taking the answer is serialized.
func (s *Stub[A, O]) claim(args A) (func(A) O, error) {
	if err := s.matcher.Matches(args); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.answer.take()
}

// Times is a repeat policy: Always, or a positive call count.
type Times struct {
	count int // 0 means always
}

// Always is the unbounded repeat policy.
func Always() Times {
	return Times{}
}

// Count returns a policy allowing n calls. It panics if n < 1.
func Count(n int) Times {
	if n < 1 {
		panic(fmt.Sprintf("faux: times must be at least 1, got %d", n))
	}

	return Times{count: n}
}

// IsAlways reports whether the policy is unbounded.
func (t Times) IsAlways() bool {
	return t.count == 0
}

// Remaining returns the number of calls left and false for Always.
func (t Times) Remaining() (int, bool) {
	return t.count, t.count != 0
}

func (t Times) String() string {
	if t.IsAlways() {
		return "always"
	}

	return fmt.Sprintf("%d times", t.count)
}

// decrement returns the policy after one more use, and whether any use
// remains after it.
func (t Times) decrement() (Times, bool) {
	if t.IsAlways() {
		return t, true
	}

	if t.count > 1 {
		return Times{count: t.count - 1}, true
	}

	return Times{}, false
}

type answerKind int

const (
	answerExhausted answerKind = iota
	answerOnce
	answerMany
)
