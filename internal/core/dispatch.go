package core

import (
	"go.uber.org/zap"
)

// Call dispatches to the fake when mf holds one, and to callReal otherwise.
// Generated proxies implement each method with one Call.
//
// Example:
//
//	func (c Calculator) Add(a, b int) int {
//		return faux.Call(c.inner, calcAdd, faux.Args2[int, int]{A0: a, A1: b},
//			func(impl Adder, args faux.Args2[int, int]) int { return impl.Add(args.A0, args.A1) })
//	}
func Call[T, A, O any](mf MaybeFaux[T], method Method[A, O], args A, callReal func(T, A) O) O {
	if mf.faux != nil {
		return Dispatch(mf.faux, method, args)
	}

	return callReal(mf.real, args)
}

// Dispatch calls method on f with args and panics with the
// *InvocationError when no stub accepts the call.
//
// The failure poisons the store for good: unmet expectations are no longer
// reported when the last handle is released, even if the caller recovers the
// panic. Use TryDispatch to exercise failing calls without losing the check.
func Dispatch[A, O any](f *Faux, method Method[A, O], args A) O {
	out, err := TryDispatch(f, method, args)
	if err != nil {
		f.store.poison()
		f.store.logger.Debug("dispatch failed", zap.String("method", method.FullName()), zap.Error(err))
		panic(err)
	}

	return out
}

// TryDispatch calls method on f with args and returns an *InvocationError
// when no stub accepts the call. A failed TryDispatch does not poison the
// store; the caller decides whether the failure matters.
func TryDispatch[A, O any](f *Faux, method Method[A, O], args A) (O, error) {
	f.mustBeLive(method.FullName())

	return CallStub(f.store, method, args)
}
