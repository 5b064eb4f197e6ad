package core

import (
	"reflect"
)

// Positional is implemented by argument tuples. Each element of Positions is
// one argument, in declaration order. A method whose argument type does not
// implement Positional takes exactly one argument.
type Positional interface {
	Positions() []any
}

// NoArgs is the argument tuple of a method without parameters.
type NoArgs struct{}

// Positions returns no arguments.
func (NoArgs) Positions() []any { return nil }

type Args1[T0 any] struct {
	A0 T0
}

func (a Args1[T0]) Positions() []any { return []any{a.A0} }

type Args2[T0, T1 any] struct {
	A0 T0
	A1 T1
}

func (a Args2[T0, T1]) Positions() []any { return []any{a.A0, a.A1} }

type Args3[T0, T1, T2 any] struct {
	A0 T0
	A1 T1
	A2 T2
}

func (a Args3[T0, T1, T2]) Positions() []any { return []any{a.A0, a.A1, a.A2} }

type Args4[T0, T1, T2, T3 any] struct {
	A0 T0
	A1 T1
	A2 T2
	A3 T3
}

func (a Args4[T0, T1, T2, T3]) Positions() []any { return []any{a.A0, a.A1, a.A2, a.A3} }

type Args5[T0, T1, T2, T3, T4 any] struct {
	A0 T0
	A1 T1
	A2 T2
	A3 T3
	A4 T4
}

func (a Args5[T0, T1, T2, T3, T4]) Positions() []any {
	return []any{a.A0, a.A1, a.A2, a.A3, a.A4}
}

type Args6[T0, T1, T2, T3, T4, T5 any] struct {
	A0 T0
	A1 T1
	A2 T2
	A3 T3
	A4 T4
	A5 T5
}

func (a Args6[T0, T1, T2, T3, T4, T5]) Positions() []any {
	return []any{a.A0, a.A1, a.A2, a.A3, a.A4, a.A5}
}

type Args7[T0, T1, T2, T3, T4, T5, T6 any] struct {
	A0 T0
	A1 T1
	A2 T2
	A3 T3
	A4 T4
	A5 T5
	A6 T6
}

func (a Args7[T0, T1, T2, T3, T4, T5, T6]) Positions() []any {
	return []any{a.A0, a.A1, a.A2, a.A3, a.A4, a.A5, a.A6}
}

type Args8[T0, T1, T2, T3, T4, T5, T6, T7 any] struct {
	A0 T0
	A1 T1
	A2 T2
	A3 T3
	A4 T4
	A5 T5
	A6 T6
	A7 T7
}

func (a Args8[T0, T1, T2, T3, T4, T5, T6, T7]) Positions() []any {
	return []any{a.A0, a.A1, a.A2, a.A3, a.A4, a.A5, a.A6, a.A7}
}

type Args9[T0, T1, T2, T3, T4, T5, T6, T7, T8 any] struct {
	A0 T0
	A1 T1
	A2 T2
	A3 T3
	A4 T4
	A5 T5
	A6 T6
	A7 T7
	A8 T8
}

func (a Args9[T0, T1, T2, T3, T4, T5, T6, T7, T8]) Positions() []any {
	return []any{a.A0, a.A1, a.A2, a.A3, a.A4, a.A5, a.A6, a.A7, a.A8}
}

// Args10 is the widest built-in tuple. Methods with more parameters supply a
// whole-tuple matcher (ArgsWhere or a custom InvocationMatcher) instead of
// positional ones.
type Args10[T0, T1, T2, T3, T4, T5, T6, T7, T8, T9 any] struct {
	A0 T0
	A1 T1
	A2 T2
	A3 T3
	A4 T4
	A5 T5
	A6 T6
	A7 T7
	A8 T8
	A9 T9
}

func (a Args10[T0, T1, T2, T3, T4, T5, T6, T7, T8, T9]) Positions() []any {
	return []any{a.A0, a.A1, a.A2, a.A3, a.A4, a.A5, a.A6, a.A7, a.A8, a.A9}
}

// arity returns the number of positional arguments of tuple type A.
func arity[A any]() int {
	var zero A

	return len(positions(zero))
}

// positions splits args into its positional arguments. A nil pointer to a
// tuple has the tuple's arity, with every position nil.
func positions[A any](args A) []any {
	tuple, ok := any(args).(Positional)
	if !ok {
		return []any{args}
	}

	if value := reflect.ValueOf(tuple); value.Kind() == reflect.Pointer && value.IsNil() {
		zero, _ := reflect.New(value.Type().Elem()).Interface().(Positional)

		return make([]any, len(zero.Positions()))
	}

	return tuple.Positions()
}
