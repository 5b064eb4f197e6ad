package core

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Store is the stub store shared by every handle of one faux instance: one
// erased stub list per method, plus the calls expected before the instance
// is released.
//
// Lock discipline: no Store lock is held while a matcher or stub closure
// runs, so a stub may call back into the same store.
type Store struct {
	typeName string
	id       string
	logger   *zap.Logger
	reporter TestReporter

	slotsMu sync.RWMutex // Protects slots
	slots   map[MethodID]*erasedSlot

	expMu        sync.Mutex // Protects expectations and every SavedExpectation's matcher
	expectations map[MethodID][]*SavedExpectation

	refs     atomic.Int64
	poisoned atomic.Bool
	finished sync.Once
}

// NewStore creates an empty store for the named type. The store starts with
// no references; handles retain and release it.
func NewStore(typeName string, opts ...Option) *Store {
	cfg := newConfig(opts)
	id := uuid.NewString()

	return &Store{
		typeName:     typeName,
		id:           id,
		logger:       cfg.logger.Named("faux").With(zap.String("store", typeName), zap.String("store_id", id)),
		reporter:     cfg.reporter,
		slots:        make(map[MethodID]*erasedSlot),
		expectations: make(map[MethodID][]*SavedExpectation),
	}
}

// AddStub registers a stub for method. It is tried before every stub
// registered earlier for the same method.
func AddStub[A, O any](s *Store, method Method[A, O], stub *Stub[A, O]) {
	slotFor(s, method).add(stub)

	s.logger.Debug("stub registered",
		zap.String("method", method.FullName()),
		zap.Uint64("method_id", uint64(method.id)),
		zap.Strings("expected", stub.Expectations()),
		zap.Stringer("answer", stub),
	)
}

// CallStub dispatches a call to method with args:
//  1. pending expectations accepting args are marked fulfilled,
//  2. stubs are tried newest first; the first to accept is consumed,
//  3. its closure runs after every store lock has been released.
//
// If no stub accepts, the returned *InvocationError carries every candidate's
// rejection.
func CallStub[A, O any](s *Store, method Method[A, O], args A) (O, error) {
	var zero O

	s.fulfil(method.id, args)

	list, ok := lookup(s, method)
	if !ok || list.len() == 0 {
		s.logger.Debug("never stubbed", zap.String("method", method.FullName()))

		return zero, &InvocationError{TypeName: s.typeName, Method: method.name, Kind: ErrNeverStubbed}
	}

	var rejections error

	for _, stub := range list.newestFirst() {
		answer, err := stub.claim(args)
		if err != nil {
			s.logger.Debug("candidate rejected", zap.String("method", method.FullName()), zap.Error(err))
			rejections = multierr.Append(rejections, err)

			continue
		}

		s.logger.Debug("dispatch matched", zap.String("method", method.FullName()), zap.Stringer("stub", stub))

		return invoke(s, answer, args), nil
	}

	return zero, &InvocationError{
		TypeName: s.typeName,
		Method:   method.name,
		Kind:     ErrNoSuitableStub,
		Causes:   multierr.Errors(rejections),
	}
}

// ID returns the store's instance identifier, as logged.
func (s *Store) ID() string {
	return s.id
}

// Poisoned reports whether a dispatch on this store has already failed, in
// which case unmet expectations are not reported.
func (s *Store) Poisoned() bool {
	return s.poisoned.Load()
}

func (s *Store) String() string {
	s.slotsMu.RLock()
	defer s.slotsMu.RUnlock()

	ids := make([]MethodID, 0, len(s.slots))
	for id := range s.slots {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, s.slots[id].String())
	}

	return fmt.Sprintf("Store(%s){%s}", s.typeName, strings.Join(parts, "; "))
}

// TypeName returns the name of the faux type the store belongs to.
func (s *Store) TypeName() string {
	return s.typeName
}

// Verify returns an error wrapping ErrUnmetExpectations that lists every
// expectation no call has fulfilled yet, or nil.
func (s *Store) Verify() error {
	pending := s.pendingExpectations()
	if len(pending) == 0 {
		return nil
	}

	lines := make([]string, 0, len(pending))
	for _, expectation := range pending {
		lines = append(lines, "✗ "+expectation)
	}

	return fmt.Errorf("%w for `%s`:\n%s", ErrUnmetExpectations, s.typeName, strings.Join(lines, "\n"))
}

// finish runs the unmet-expectation check once. It is skipped when the store
// is poisoned or the reporter already failed, so an earlier failure is not
// buried under a secondary one.
func (s *Store) finish() {
	s.finished.Do(func() {
		if s.poisoned.Load() {
			s.logger.Debug("expectation check skipped", zap.String("reason", "poisoned"))

			return
		}

		if failed, ok := s.reporter.(failureReporter); ok && failed.Failed() {
			s.logger.Debug("expectation check skipped", zap.String("reason", "test failed"))

			return
		}

		err := s.Verify()
		if err == nil {
			s.logger.Debug("expectations verified")

			return
		}

		s.logger.Debug("unmet expectations", zap.Error(err))

		if s.reporter == nil {
			panic(err)
		}

		s.reporter.Helper()

		if errorf, ok := s.reporter.(errorReporter); ok {
			errorf.Errorf("%v", err)

			return
		}

		s.reporter.Fatalf("%v", err)
	})
}

func (s *Store) poison() {
	s.poisoned.Store(true)
}

func (s *Store) release() {
	if s.refs.Add(-1) == 0 {
		s.finish()
	}
}

func (s *Store) retain() {
	s.refs.Add(1)
}

// invoke runs a claimed stub closure. A panic escaping the closure poisons the
// store before propagating.
func invoke[A, O any](s *Store, answer func(A) O, args A) O {
	defer func() {
		if r := recover(); r != nil {
			s.poison()
			panic(r)
		}
	}()

	return answer(args)
}

func lookup[A, O any](s *Store, method Method[A, O]) (*stubList[A, O], bool) {
	s.slotsMu.RLock()
	slot, ok := s.slots[method.id]
	s.slotsMu.RUnlock()

	if !ok {
		return nil, false
	}

	return restore(slot, method), true
}

// slotFor returns the typed stub list for method, creating an empty slot on
// first access.
func slotFor[A, O any](s *Store, method Method[A, O]) *stubList[A, O] {
	s.slotsMu.Lock()
	defer s.slotsMu.Unlock()

	slot, ok := s.slots[method.id]
	if !ok {
		slot = erase(method, &stubList[A, O]{})
		s.slots[method.id] = slot
	}

	return restore(slot, method)
}
