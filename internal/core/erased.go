package core

import (
	"fmt"
	"reflect"
	"slices"
	"sync"
)

// erasedSlot holds one method's stub list with its argument and result types
// erased, so slots for every method of every type share one map.
//
// Safety contract: list always holds a *stubList[A, O] for the exact A and O
// of the Method that created the slot. Only holders of that Method reach
// restore (the Method registry refuses a second type pair for the same name),
// so the checked assertion in restore succeeds in every correct program. A
// failing assertion means a broken caller and panics with ErrTypeMismatch;
// there is no unchecked path.
type erasedSlot struct {
	typeName string
	name     string
	argType  reflect.Type
	outType  reflect.Type
	list     any
}

func (s *erasedSlot) String() string {
	return fmt.Sprintf("%s.%s: func(%v) %v", s.typeName, s.name, s.argType, s.outType)
}

// stubList is the typed list behind an erased slot. Stubs are appended in
// registration order and tried newest first.
type stubList[A, O any] struct {
	mu    sync.Mutex // Protects stubs
	stubs []*Stub[A, O]
}

func (l *stubList[A, O]) add(stub *Stub[A, O]) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.stubs = append(l.stubs, stub)
}

func (l *stubList[A, O]) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.stubs)
}

// newestFirst returns a snapshot of the stubs, most recently added first.
// The snapshot lets callers run matchers and closures without the list lock.
func (l *stubList[A, O]) newestFirst() []*Stub[A, O] {
	l.mu.Lock()
	snapshot := slices.Clone(l.stubs)
	l.mu.Unlock()

	slices.Reverse(snapshot)

	return snapshot
}

// erase wraps a typed stub list in a slot. Always safe.
func erase[A, O any](method Method[A, O], list *stubList[A, O]) *erasedSlot {
	return &erasedSlot{
		typeName: method.typeName,
		name:     method.name,
		argType:  reflect.TypeFor[A](),
		outType:  reflect.TypeFor[O](),
		list:     list,
	}
}

// restore recovers the typed stub list from a slot, checking both the types
// and the method name the slot was created with.
func restore[A, O any](slot *erasedSlot, method Method[A, O]) *stubList[A, O] {
	list, ok := slot.list.(*stubList[A, O])
	if !ok {
		panic(fmt.Errorf("%w: slot %s restored as func(%v) %v",
			ErrTypeMismatch, slot, reflect.TypeFor[A](), reflect.TypeFor[O]()))
	}

	if slot.name != method.name || slot.typeName != method.typeName {
		panic(fmt.Errorf("%w: conflicting method names %q vs %q",
			ErrTypeMismatch, slot.typeName+"."+slot.name, method.FullName()))
	}

	return list
}
