package match

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/onsi/gomega/gstruct"
	"github.com/onsi/gomega/types"
)

// Fields maps struct field names to the matcher (or plain value) each field
// must satisfy. Used with Pattern.
type Fields map[string]any

// Pattern returns a structural matcher: the actual value must be a struct (or
// a pointer to one) whose named fields satisfy the given matchers. Fields not
// named in the pattern are ignored. Plain values are compared with Eq.
//
// Example:
//
//	Pattern(Fields{"Method": "GET", "Path": FromFn("api path", func(p string) bool {
//	    return strings.HasPrefix(p, "/api/")
//	})})
func Pattern(fields Fields) Matcher {
	matchers := make(map[string]Matcher, len(fields))
	for name, value := range fields {
		matchers[name] = ToMatcher(value)
	}

	return patternMatcher{fields: matchers}
}

// gomegaAdapter lets a Matcher stand in wherever gstruct wants a full
// types.GomegaMatcher.
type gomegaAdapter struct {
	Matcher
}

func (a gomegaAdapter) FailureMessage(actual any) string {
	if msg := a.Matcher.FailureMessage(actual); msg != "" {
		return msg
	}

	return fmt.Sprintf("expected %s, got %s", Describe(a.Matcher), Render(actual))
}

func (a gomegaAdapter) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("expected %s not to match %s", Render(actual), Describe(a.Matcher))
}

type patternMatcher struct {
	fields map[string]Matcher
}

func (m patternMatcher) FailureMessage(actual any) string {
	target, err := structValue(actual)
	if err != nil {
		return err.Error()
	}

	inner := m.gomega()

	if ok, err := safeMatch(inner, target); ok || err != nil {
		return ""
	}

	return inner.FailureMessage(target)
}

func (m patternMatcher) Match(actual any) (bool, error) {
	target, err := structValue(actual)
	if err != nil {
		return false, err
	}

	return safeMatch(m.gomega(), target)
}

func (m patternMatcher) String() string {
	names := make([]string, 0, len(m.fields))
	for name := range m.fields {
		names = append(names, name)
	}

	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+Describe(m.fields[name]))
	}

	return "{" + strings.Join(parts, ", ") + ", ..}"
}

// gomega builds a fresh gstruct matcher per evaluation: gstruct matchers
// record failures on themselves while matching.
func (m patternMatcher) gomega() types.GomegaMatcher {
	fields := make(gstruct.Fields, len(m.fields))
	for name, matcher := range m.fields {
		fields[name] = gomegaAdapter{Matcher: matcher}
	}

	return gstruct.MatchFields(gstruct.IgnoreExtras, fields)
}

// safeMatch converts a panic inside gstruct (for example on unexported fields)
// into a match error.
func safeMatch(matcher types.GomegaMatcher, actual any) (success bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			success = false
			err = fmt.Errorf("%w: %v", errTypeMismatch, r)
		}
	}()

	return matcher.Match(actual)
}

func structValue(actual any) (any, error) {
	target := deref(actual)
	if target == nil || reflect.TypeOf(target).Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: expected a struct, got %T", errTypeMismatch, actual)
	}

	return target, nil
}
