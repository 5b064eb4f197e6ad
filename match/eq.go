package match

import (
	"reflect"
	"strings"

	"github.com/akedrou/textdiff"
	"github.com/onsi/gomega"
	"github.com/onsi/gomega/types"
)

// Eq returns a matcher for structural equality with expected.
// Pointers on either side are followed before comparing, so Eq(5) matches
// both 5 and a *int pointing at 5, and Eq(&point) matches point.
// Eq(nil) matches nil and any nil pointer, slice, map, chan, func or interface.
func Eq(expected any) Matcher {
	return eqMatcher{expected: expected}
}

// EqAgainst returns a matcher for equality against a value of a different but
// convertible type: the actual value is converted to expected's type before
// comparing (gomega's BeEquivalentTo). Pointers are not followed.
//
// Example:
//
//	type Celsius float64
//	EqAgainst(Celsius(21.5)) // matches float64(21.5)
func EqAgainst(expected any) Matcher {
	return eqAgainstMatcher{expected: expected}
}

type eqAgainstMatcher struct {
	expected any
}

func (m eqAgainstMatcher) FailureMessage(any) string {
	return ""
}

func (m eqAgainstMatcher) Match(actual any) (bool, error) {
	return m.gomega().Match(actual)
}

func (m eqAgainstMatcher) String() string {
	return Render(m.expected)
}

// gomega builds a fresh matcher per evaluation; gomega matchers are not
// documented as safe for concurrent use.
func (m eqAgainstMatcher) gomega() types.GomegaMatcher {
	return gomega.BeEquivalentTo(m.expected)
}

type eqMatcher struct {
	expected any
}

// FailureMessage returns a unified diff when both sides are multi-line
// strings; single-line values are fully described by the diagnostics.
func (m eqMatcher) FailureMessage(actual any) string {
	expected, expectedOK := deref(m.expected).(string)
	got, gotOK := deref(actual).(string)

	if !expectedOK || !gotOK {
		return ""
	}

	if !strings.Contains(expected, "\n") && !strings.Contains(got, "\n") {
		return ""
	}

	return textdiff.Unified("expected", "actual", withTrailingNewline(expected), withTrailingNewline(got))
}

func (m eqMatcher) Match(actual any) (bool, error) {
	if m.expected == nil {
		return isNil(actual), nil
	}

	return reflect.DeepEqual(deref(actual), deref(m.expected)), nil
}

func (m eqMatcher) String() string {
	return Render(m.expected)
}

// deref follows non-nil pointers down to the value they address.
func deref(value any) any {
	if value == nil {
		return nil
	}

	reflected := reflect.ValueOf(value)
	for reflected.Kind() == reflect.Pointer && !reflected.IsNil() {
		reflected = reflected.Elem()
	}

	return reflected.Interface()
}

func isNil(value any) bool {
	if value == nil {
		return true
	}

	reflected := reflect.ValueOf(value)

	switch reflected.Kind() { //nolint:exhaustive // Only nilable kinds can hold nil
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return reflected.IsNil()
	default:
		return false
	}
}

func withTrailingNewline(text string) string {
	if strings.HasSuffix(text, "\n") {
		return text
	}

	return text + "\n"
}
