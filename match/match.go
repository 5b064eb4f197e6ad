// Package match provides argument matchers for faux stubs and expectations.
// Any value with gomega's Match and FailureMessage methods is accepted where
// a Matcher is, so gomega matchers mix freely with the ones defined here:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    "github.com/toejough/faux/match"
//	)
//
//	faux.When(fake, calcAdd).WithArgs(match.Eq(2), BeNumerically(">", 0)).ThenReturn(42)
//
// Every matcher here is stateless, so a single matcher value may be evaluated
// from many goroutines at once.
package match

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// errTypeMismatch is a sentinel error for type assertion failures.
var errTypeMismatch = errors.New("type mismatch")

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
//
// FailureMessage returns detail beyond the matcher's description, or an empty
// string when the description alone explains the mismatch.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// BeAny is a matcher that matches any value.
// Useful when you don't care about a particular argument.
//
//nolint:gochecknoglobals // Intentional exported constant-like value
var BeAny Matcher = anyMatcher{}

// Any returns a matcher that matches any value.
func Any() Matcher {
	return BeAny
}

// Describe returns the human-readable expectation for a matcher.
// Matchers implementing fmt.Stringer describe themselves; foreign matchers
// (gomega's, for example) are described by their type name.
func Describe(matcher any) string {
	if stringer, ok := matcher.(fmt.Stringer); ok {
		return stringer.String()
	}

	return "<" + strings.TrimPrefix(fmt.Sprintf("%T", matcher), "*") + ">"
}

// FromFn returns a matcher that accepts values of type T for which predicate
// returns true. The label is used as the matcher's description.
//
// Example:
//
//	FromFn("even", func(x int) bool { return x%2 == 0 })
func FromFn[T any](label string, predicate func(T) bool) Matcher {
	return fromFnMatcher[T]{label: label, predicate: predicate}
}

// Render formats a value the way faux diagnostics show actual arguments.
// Pointers are followed and shown with a leading '&'.
func Render(value any) string {
	if value == nil {
		return "nil"
	}

	if str, ok := value.(string); ok {
		return strconv.Quote(str)
	}

	reflected := reflect.ValueOf(value)
	if reflected.Kind() == reflect.Pointer && !reflected.IsNil() {
		return "&" + Render(reflected.Elem().Interface())
	}

	return fmt.Sprintf("%#v", value)
}

// Satisfy returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
//
// Example:
//
//	faux.When(fake, calcAdd).WithArgs(Satisfy(func(x int) error {
//	    if x < 0 { return fmt.Errorf("expected positive, got %d", x) }
//	    return nil
//	}), BeAny)
func Satisfy[T any](predicate func(T) error) Matcher {
	return satisfyMatcher[T]{predicate: predicate}
}

// ToMatcher returns value itself if it is a Matcher, otherwise Eq(value).
func ToMatcher(value any) Matcher {
	if matcher, ok := value.(Matcher); ok {
		return matcher
	}

	return Eq(value)
}

// anyMatcher is the implementation of the BeAny matcher.
type anyMatcher struct{}

// FailureMessage returns an empty string since BeAny always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true - matches any value.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

func (anyMatcher) String() string {
	return "_"
}

type fromFnMatcher[T any] struct {
	label     string
	predicate func(T) bool
}

func (m fromFnMatcher[T]) FailureMessage(any) string {
	return ""
}

func (m fromFnMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)
	if !ok {
		return false, typeMismatch[T](actual)
	}

	return m.predicate(val), nil
}

func (m fromFnMatcher[T]) String() string {
	return m.label
}

type satisfyMatcher[T any] struct {
	predicate func(T) error
}

func (m satisfyMatcher[T]) FailureMessage(actual any) string {
	val, ok := actual.(T)
	if !ok {
		return typeMismatch[T](actual).Error()
	}

	if err := m.predicate(val); err != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, err)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m satisfyMatcher[T]) Match(actual any) (bool, error) {
	val, ok := actual.(T)
	if !ok {
		return false, typeMismatch[T](actual)
	}

	return m.predicate(val) == nil, nil
}

func (m satisfyMatcher[T]) String() string {
	return "satisfies(" + reflect.TypeFor[T]().String() + ")"
}

func typeMismatch[T any](actual any) error {
	return fmt.Errorf("%w: expected %v, got %T", errTypeMismatch, reflect.TypeFor[T](), actual)
}
