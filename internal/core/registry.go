package core

import (
	"slices"
	"sync"
)

// TestReporter is the minimal interface faux needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// ForTest creates a fake instance whose failures are reported to t. Every
// fake created for t is verified when t's cleanup runs, if t supports
// Cleanup (like *testing.T), or when Verify(t) is called.
//
// The returned handle belongs to t: release clones, not the handle itself.
func ForTest(t TestReporter, typeName string, opts ...Option) *Faux {
	t.Helper()

	f := NewFaux(typeName, append(slices.Clone(opts), WithReporter(t))...)

	registryMu.Lock()
	_, seen := registry[t]
	registry[t] = append(registry[t], f)
	registryMu.Unlock()

	// Register cleanup if the TestReporter supports it
	if cr, ok := t.(cleanupRegistrar); ok && !seen {
		cr.Cleanup(func() {
			Verify(t)
		})
	}

	return f
}

// Verify releases every fake created with ForTest for t, reporting unmet
// expectations to t. Stores still referenced by live clones are checked when
// the last clone is released. Verify forgets t, so calling it again is a
// no-op.
func Verify(t TestReporter) {
	registryMu.Lock()
	fakes := registry[t]
	delete(registry, t)
	registryMu.Unlock()

	for _, f := range fakes {
		f.releaseIfLive()
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for test coordination
	registry = make(map[TestReporter][]*Faux)
	//nolint:gochecknoglobals // Mutex for registry
	registryMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}

// errorReporter is satisfied by reporters that can fail without stopping the
// test, like *testing.T. finish prefers it over Fatalf since cleanup may run
// outside the test goroutine.
type errorReporter interface {
	Errorf(format string, args ...any)
}

// failureReporter is satisfied by reporters that know whether the test has
// already failed.
type failureReporter interface {
	Failed() bool
}
