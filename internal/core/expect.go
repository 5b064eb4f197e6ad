package core

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// SavedExpectation is a call that must happen before its store is released.
// Its matcher is erased to a predicate over the argument tuple so every
// method's expectations share one map.
type SavedExpectation struct {
	typeName string
	name     string

	// guarded by the owning store's expMu
	matches      func(any) error
	descriptions []string
}

func (e *SavedExpectation) String() string {
	return fmt.Sprintf("`%s.%s` expected a call matching [%s]",
		e.typeName, e.name, strings.Join(e.descriptions, ", "))
}

// AddExpectation registers an expectation that some call to method is
// accepted by matcher before the store is released.
func AddExpectation[A, O any](s *Store, method Method[A, O], matcher InvocationMatcher[A]) *SavedExpectation {
	expectation := &SavedExpectation{
		typeName:     method.typeName,
		name:         method.name,
		matches:      erasePredicate(matcher),
		descriptions: matcher.Expectations(),
	}

	s.expMu.Lock()
	s.expectations[method.id] = append(s.expectations[method.id], expectation)
	s.expMu.Unlock()

	s.logger.Debug("expectation registered",
		zap.String("method", method.FullName()),
		zap.Strings("expected", expectation.descriptions),
	)

	return expectation
}

// SetExpectationMatcher replaces the matcher of an expectation already added
// to s.
func SetExpectationMatcher[A any](s *Store, expectation *SavedExpectation, matcher InvocationMatcher[A]) {
	s.expMu.Lock()
	defer s.expMu.Unlock()

	expectation.matches = erasePredicate(matcher)
	expectation.descriptions = matcher.Expectations()
}

// fulfil removes every pending expectation for id that accepts args. The
// pending list is copied under the lock, evaluated unlocked, and the
// accepted ones removed under the lock again, so matchers may re-enter the
// store.
func (s *Store) fulfil(id MethodID, args any) {
	type candidate struct {
		expectation *SavedExpectation
		matches     func(any) error
		rendered    string
	}

	s.expMu.Lock()
	pending := s.expectations[id]
	candidates := make([]candidate, len(pending))

	for i, expectation := range pending {
		candidates[i] = candidate{
			expectation: expectation,
			matches:     expectation.matches,
			rendered:    expectation.String(),
		}
	}
	s.expMu.Unlock()

	if len(candidates) == 0 {
		return
	}

	var fulfilled []*SavedExpectation

	for _, c := range candidates {
		if c.matches(args) == nil {
			fulfilled = append(fulfilled, c.expectation)
			s.logger.Debug("expectation fulfilled", zap.String("expectation", c.rendered))
		}
	}

	if len(fulfilled) == 0 {
		return
	}

	s.expMu.Lock()
	s.expectations[id] = slices.DeleteFunc(s.expectations[id], func(e *SavedExpectation) bool {
		return slices.Contains(fulfilled, e)
	})
	s.expMu.Unlock()
}

// pendingExpectations describes the unfulfilled expectations ordered by
// method registration, then by expectation registration.
func (s *Store) pendingExpectations() []string {
	s.expMu.Lock()
	defer s.expMu.Unlock()

	ids := make([]MethodID, 0, len(s.expectations))
	for id := range s.expectations {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	var pending []string

	for _, id := range ids {
		for _, expectation := range s.expectations[id] {
			pending = append(pending, expectation.String())
		}
	}

	return pending
}

func erasePredicate[A any](matcher InvocationMatcher[A]) func(any) error {
	return func(args any) error {
		typed, ok := args.(A)
		if !ok && args != nil {
			return fmt.Errorf("%w: expectation over %v given %T", ErrTypeMismatch, reflect.TypeFor[A](), args)
		}

		return matcher.Matches(typed)
	}
}
