package match

import (
	"fmt"
	"strings"
)

// All returns a matcher that succeeds only when every given matcher (or plain
// value, compared with Eq) succeeds.
func All(matchers ...any) Matcher {
	converted := make([]Matcher, 0, len(matchers))
	for _, m := range matchers {
		converted = append(converted, ToMatcher(m))
	}

	return allMatcher{matchers: converted}
}

// Not inverts a matcher (or a plain value, compared with Eq).
func Not(matcher any) Matcher {
	return notMatcher{inner: ToMatcher(matcher)}
}

type allMatcher struct {
	matchers []Matcher
}

// FailureMessage reports the first failing matcher.
func (m allMatcher) FailureMessage(actual any) string {
	for _, matcher := range m.matchers {
		ok, err := matcher.Match(actual)
		if err != nil {
			return err.Error()
		}

		if !ok {
			if msg := matcher.FailureMessage(actual); msg != "" {
				return msg
			}

			return "failed " + Describe(matcher)
		}
	}

	return ""
}

func (m allMatcher) Match(actual any) (bool, error) {
	for _, matcher := range m.matchers {
		ok, err := matcher.Match(actual)
		if err != nil || !ok {
			return false, err
		}
	}

	return true, nil
}

func (m allMatcher) String() string {
	parts := make([]string, 0, len(m.matchers))
	for _, matcher := range m.matchers {
		parts = append(parts, Describe(matcher))
	}

	return "all(" + strings.Join(parts, ", ") + ")"
}

type notMatcher struct {
	inner Matcher
}

func (m notMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("value %s unexpectedly matched %s", Render(actual), Describe(m.inner))
}

func (m notMatcher) Match(actual any) (bool, error) {
	ok, err := m.inner.Match(actual)
	if err != nil {
		return false, err
	}

	return !ok, nil
}

func (m notMatcher) String() string {
	return "!" + Describe(m.inner)
}
