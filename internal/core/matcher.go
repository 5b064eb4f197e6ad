package core

import (
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/toejough/faux/match"
)

// InvocationMatcher decides whether a call's whole argument tuple is accepted.
// Matches returns nil on success and, on failure, an error describing every
// argument position (normally a *MismatchError). Expectations returns one
// description per argument position for diagnostics.
type InvocationMatcher[A any] interface {
	Matches(args A) error
	Expectations() []string
}

// Matcher defines the interface for flexible value matching.
type Matcher = match.Matcher

// ArgumentMatch is the outcome of matching one argument position.
type ArgumentMatch struct {
	Matched  bool
	Expected string
	Actual   string
	Reason   string
}

// MismatchError reports an argument tuple rejected by an InvocationMatcher.
// It carries every position, matched or not.
type MismatchError struct {
	Arguments []ArgumentMatch
}

func (e *MismatchError) Error() string {
	if len(e.Arguments) == 1 {
		arg := e.Arguments[0]

		var builder strings.Builder

		fmt.Fprintf(&builder, "Argument did not match.\n  Expected: %s\n  Actual:   %s", arg.Expected, arg.Actual)
		writeReason(&builder, arg.Reason, "  ")

		return builder.String()
	}

	expected := make([]string, len(e.Arguments))
	actual := make([]string, len(e.Arguments))

	for i, arg := range e.Arguments {
		width := max(utf8.RuneCountInString(arg.Expected), utf8.RuneCountInString(arg.Actual))
		expected[i] = padRight(arg.Expected, width)
		actual[i] = padRight(arg.Actual, width)
	}

	var builder strings.Builder

	builder.WriteString("Arguments did not match\n")
	fmt.Fprintf(&builder, "  Expected: [%s]\n", strings.Join(expected, ", "))
	fmt.Fprintf(&builder, "  Actual:   [%s]", strings.Join(actual, ", "))

	for i, arg := range e.Arguments {
		if arg.Matched {
			continue
		}

		fmt.Fprintf(&builder, "\n  Argument %d:\n    Expected: %s\n    Actual:   %s", i, arg.Expected, arg.Actual)
		writeReason(&builder, arg.Reason, "    ")
	}

	return builder.String()
}

// Mismatched returns the positions that failed to match.
func (e *MismatchError) Mismatched() []int {
	var failed []int

	for i, arg := range e.Arguments {
		if !arg.Matched {
			failed = append(failed, i)
		}
	}

	return failed
}

func (e *MismatchError) Unwrap() error {
	return ErrArgsMismatch
}

// AnyArgs returns an InvocationMatcher accepting every call.
func AnyArgs[A any]() InvocationMatcher[A] {
	return anyArgs[A]{}
}

// ArgsMatching returns a positional InvocationMatcher: one matcher (or plain
// value, compared with match.Eq) per argument of A. It panics if the number
// of matchers differs from A's arity.
func ArgsMatching[A any](values ...any) InvocationMatcher[A] {
	if want := arity[A](); len(values) != want {
		panic(fmt.Sprintf("faux: %v takes %d argument(s), got %d matcher(s)",
			reflect.TypeFor[A](), want, len(values)))
	}

	matchers := make([]Matcher, len(values))
	for i, value := range values {
		matchers[i] = match.ToMatcher(value)
	}

	return argMatchers[A]{matchers: matchers}
}

// ArgsWhere returns an InvocationMatcher built from a predicate over the whole
// argument tuple, described by label. It is the escape hatch for tuples wider
// than Args10 or for conditions spanning several arguments.
func ArgsWhere[A any](label string, predicate func(A) bool) InvocationMatcher[A] {
	return argsWhere[A]{label: label, predicate: predicate}
}

// MatchValue checks if actual matches expected.
// If expected implements the Matcher interface, uses its Match method.
// Otherwise, uses reflect.DeepEqual for comparison.
// Returns (success, reason). The reason is empty on success, and may be empty
// on failure when the matcher's description already explains it.
func MatchValue(actual, expected any) (bool, string) {
	// Check if expected is a Matcher
	if matcher, ok := expected.(Matcher); ok {
		success, err := matcher.Match(actual)
		if err != nil {
			return false, err.Error()
		}

		if !success {
			return false, matcher.FailureMessage(actual)
		}

		return true, ""
	}

	// Fall back to reflect.DeepEqual for non-matchers
	if reflect.DeepEqual(actual, expected) {
		return true, ""
	}

	return false, fmt.Sprintf("expected %v, got %v", expected, actual)
}

type anyArgs[A any] struct{}

func (anyArgs[A]) Expectations() []string {
	descriptions := make([]string, arity[A]())
	for i := range descriptions {
		descriptions[i] = "<any>"
	}

	return descriptions
}

func (anyArgs[A]) Matches(A) error {
	return nil
}

type argMatchers[A any] struct {
	matchers []Matcher
}

func (m argMatchers[A]) Expectations() []string {
	descriptions := make([]string, len(m.matchers))
	for i, matcher := range m.matchers {
		descriptions[i] = match.Describe(matcher)
	}

	return descriptions
}

// Matches evaluates every position so the error reports all mismatches, not
// only the first.
func (m argMatchers[A]) Matches(args A) error {
	actual := positions(args)
	results := make([]ArgumentMatch, len(m.matchers))
	failed := false

	for i, matcher := range m.matchers {
		var value any
		if i < len(actual) {
			value = actual[i]
		}

		ok, reason := MatchValue(value, matcher)
		results[i] = ArgumentMatch{
			Matched:  ok,
			Expected: match.Describe(matcher),
			Actual:   match.Render(value),
			Reason:   reason,
		}
		failed = failed || !ok
	}

	if !failed {
		return nil
	}

	return &MismatchError{Arguments: results}
}

type argsWhere[A any] struct {
	label     string
	predicate func(A) bool
}

func (m argsWhere[A]) Expectations() []string {
	return []string{m.label}
}

func (m argsWhere[A]) Matches(args A) error {
	if m.predicate(args) {
		return nil
	}

	rendered := make([]string, 0)
	for _, value := range positions(args) {
		rendered = append(rendered, match.Render(value))
	}

	return &MismatchError{Arguments: []ArgumentMatch{{
		Expected: m.label,
		Actual:   "(" + strings.Join(rendered, ", ") + ")",
	}}}
}

func padRight(text string, width int) string {
	if gap := width - utf8.RuneCountInString(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}

	return text
}

func writeReason(builder *strings.Builder, reason, indent string) {
	if reason == "" {
		return
	}

	lines := strings.Split(strings.TrimRight(reason, "\n"), "\n")
	fmt.Fprintf(builder, "\n%sReason:   %s", indent, lines[0])

	for _, line := range lines[1:] {
		fmt.Fprintf(builder, "\n%s          %s", indent, line)
	}
}
