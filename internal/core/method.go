package core

import (
	"fmt"
	"reflect"
	"sync"
)

// Method is the typed capability token for one stubbable method of one type.
// A is the method's argument tuple and O its result. Stubs for a method can
// only be stored and restored through its Method, which is what keeps the
// stub store's type erasure sound.
type Method[A, O any] struct {
	id       MethodID
	typeName string
	name     string
}

// NewMethod returns the Method for typeName.methodName, registering it on
// first use. Repeated calls with the same names return the same identity, so
// separate call sites agree. Registering the same names with different
// argument or result types panics with ErrTypeMismatch.
func NewMethod[A, O any](typeName, methodName string) Method[A, O] {
	key := typeName + "." + methodName
	argType := reflect.TypeFor[A]()
	outType := reflect.TypeFor[O]()

	methodsMu.Lock()
	defer methodsMu.Unlock()

	if reg, ok := methods[key]; ok {
		if reg.argType != argType || reg.outType != outType {
			panic(fmt.Errorf("%w: %s registered as func(%v) %v, requested as func(%v) %v",
				ErrTypeMismatch, key, reg.argType, reg.outType, argType, outType))
		}

		return Method[A, O]{id: reg.id, typeName: typeName, name: methodName}
	}

	lastMethodID++
	methods[key] = registeredMethod{id: lastMethodID, argType: argType, outType: outType}

	return Method[A, O]{id: lastMethodID, typeName: typeName, name: methodName}
}

// FullName returns "Type.Method".
func (m Method[A, O]) FullName() string {
	return m.typeName + "." + m.name
}

// ID returns the method's process-wide identity.
func (m Method[A, O]) ID() MethodID {
	return m.id
}

// Name returns the method name.
func (m Method[A, O]) Name() string {
	return m.name
}

// TypeName returns the name of the type the method belongs to.
func (m Method[A, O]) TypeName() string {
	return m.typeName
}

// MethodID uniquely identifies a method of a type for the life of the process.
// IDs are assigned monotonically from 1; the zero MethodID is never issued.
type MethodID uint64

// unexported variables.
var (
	//nolint:gochecknoglobals // Process-wide method registry is intentional: identities are immortal
	methods = make(map[string]registeredMethod)
	//nolint:gochecknoglobals // Mutex for methods
	methodsMu sync.Mutex
	//nolint:gochecknoglobals // Guarded by methodsMu
	lastMethodID MethodID
)

type registeredMethod struct {
	id      MethodID
	argType reflect.Type
	outType reflect.Type
}
