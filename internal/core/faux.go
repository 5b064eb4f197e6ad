package core

import (
	"fmt"
	"sync/atomic"
)

// Faux is one handle to a fake instance's store. Handles made with Clone
// share the store; the release of the last handle runs the unmet-expectation
// check.
type Faux struct {
	store    *Store
	released atomic.Bool
}

// NewFaux creates a fake instance for the named type and returns its first
// handle.
func NewFaux(typeName string, opts ...Option) *Faux {
	store := NewStore(typeName, opts...)
	store.retain()

	return &Faux{store: store}
}

// Clone returns another handle sharing f's store. Each handle must be
// released separately.
func (f *Faux) Clone() *Faux {
	f.mustBeLive("Clone")
	f.store.retain()

	return &Faux{store: f.store}
}

// Release drops this handle. Releasing the last live handle checks that every
// expectation was met. Releasing the same handle twice panics.
func (f *Faux) Release() {
	if !f.released.CompareAndSwap(false, true) {
		panic(fmt.Sprintf("faux: %s handle released twice", f.store.typeName))
	}

	f.store.release()
}

// releaseIfLive releases the handle unless it is already released.
func (f *Faux) releaseIfLive() {
	if f.released.CompareAndSwap(false, true) {
		f.store.release()
	}
}

// Store returns the store behind the handle.
func (f *Faux) Store() *Store {
	return f.store
}

func (f *Faux) String() string {
	return fmt.Sprintf("Faux(%s %s)", f.store.typeName, f.store.id)
}

// TypeName returns the name of the faked type.
func (f *Faux) TypeName() string {
	return f.store.typeName
}

// Verify returns the store's unmet expectations as an error, or nil, without
// releasing anything.
func (f *Faux) Verify() error {
	return f.store.Verify()
}

func (f *Faux) mustBeLive(operation string) {
	if f.released.Load() {
		panic(fmt.Sprintf("faux: %s on released %s handle", operation, f.store.typeName))
	}
}

// MaybeFaux holds either a real value of T or a fake handle. Generated
// proxies embed one and route every method through Call.
type MaybeFaux[T any] struct {
	real T
	faux *Faux
}

// Fake wraps a fake handle.
func Fake[T any](f *Faux) MaybeFaux[T] {
	return MaybeFaux[T]{faux: f}
}

// Real wraps a real value.
func Real[T any](value T) MaybeFaux[T] {
	return MaybeFaux[T]{real: value}
}

// Clone copies the holder. A fake is cloned by sharing its store; a real
// value is copied with cloneReal, or by plain assignment when cloneReal is
// nil.
func (m MaybeFaux[T]) Clone(cloneReal func(T) T) MaybeFaux[T] {
	if m.faux != nil {
		return MaybeFaux[T]{faux: m.faux.Clone()}
	}

	if cloneReal == nil {
		return m
	}

	return MaybeFaux[T]{real: cloneReal(m.real)}
}

// Faux returns the fake handle, or nil when the holder wraps a real value.
func (m MaybeFaux[T]) Faux() *Faux {
	return m.faux
}

// IsFaux reports whether the holder wraps a fake.
func (m MaybeFaux[T]) IsFaux() bool {
	return m.faux != nil
}

// Release releases the fake handle, if any.
func (m MaybeFaux[T]) Release() {
	if m.faux != nil {
		m.faux.Release()
	}
}

// Value returns the real value. It panics when the holder wraps a fake.
func (m MaybeFaux[T]) Value() T {
	if m.faux != nil {
		panic(fmt.Sprintf("faux: Value called on fake %s", m.faux.store.typeName))
	}

	return m.real
}
