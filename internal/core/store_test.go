package core_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/faux/internal/core"
)

// Method identities shared by the store tests.
//
//nolint:gochecknoglobals // Method identities are process-wide by design
var (
	calcAdd    = core.NewMethod[core.Args2[int, int], int]("Calculator", "Add")
	calcNegate = core.NewMethod[int, int]("Calculator", "Negate")
	calcReset  = core.NewMethod[core.NoArgs, string]("Calculator", "Reset")

	treeDepth = core.NewMethod[*treeNode, int]("Tree", "Depth")
	treeSum   = core.NewMethod[*core.Args2[int, int], int]("Tree", "Sum")
)

type treeNode struct {
	depth int
}

func TestNewMethod_Idempotent(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	again := core.NewMethod[core.Args2[int, int], int]("Calculator", "Add")

	g.Expect(again.ID()).To(Equal(calcAdd.ID()))
	g.Expect(again.FullName()).To(Equal("Calculator.Add"))
	g.Expect(calcNegate.ID()).NotTo(Equal(calcAdd.ID()))
}

func TestNewMethod_TypeMismatchPanics(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(func() {
		core.NewMethod[string, int]("Calculator", "Negate")
	}).To(PanicWith(MatchError(core.ErrTypeMismatch)))
}

func TestDispatch_CountTwoScenario(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Calculator")
	core.When(fake, calcAdd).WithArgs(2, 3).Times(2).ThenReturn(5)

	args := core.Args2[int, int]{A0: 2, A1: 3}

	g.Expect(core.Dispatch(fake, calcAdd, args)).To(Equal(5))
	g.Expect(core.Dispatch(fake, calcAdd, args)).To(Equal(5))

	_, err := core.TryDispatch(fake, calcAdd, args)
	g.Expect(err).To(MatchError(core.ErrNoSuitableStub))
	g.Expect(err).To(MatchError(core.ErrExhausted))
	g.Expect(err.Error()).To(Equal(
		"`Calculator.Add` had no suitable stubs. Existing stubs failed because:\n✗ this stub has been exhausted"))
}

func TestDispatch_NilArgumentMatchesNilStub(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Tree")
	core.When(fake, treeDepth).ThenReturn(1)
	core.When(fake, treeDepth).WithArgs(nil).ThenReturn(0)
	core.Expect(fake, treeDepth).WithArgs(nil)

	g.Expect(core.Dispatch(fake, treeDepth, nil)).To(Equal(0))
	g.Expect(core.Dispatch(fake, treeDepth, &treeNode{depth: 3})).To(Equal(1))
	g.Expect(fake.Verify()).To(Succeed())
}

func TestDispatch_PointerTuple(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Tree")
	core.When(fake, treeSum).Then(func(args *core.Args2[int, int]) int { return args.A0 + args.A1 })
	core.When(fake, treeSum).WithArgs(nil, nil).ThenReturn(-1)

	g.Expect(core.AnyArgs[*core.Args2[int, int]]().Expectations()).To(HaveLen(2))
	g.Expect(core.Dispatch(fake, treeSum, &core.Args2[int, int]{A0: 2, A1: 3})).To(Equal(5))
	g.Expect(core.Dispatch(fake, treeSum, nil)).To(Equal(-1))
}

func TestDispatch_NeverStubbed(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Calculator")

	_, err := core.TryDispatch(fake, calcReset, core.NoArgs{})
	g.Expect(err).To(MatchError(core.ErrNeverStubbed))
	g.Expect(err).NotTo(MatchError(core.ErrNoSuitableStub))
	g.Expect(err.Error()).To(Equal("`Calculator.Reset` was called but the method was never stubbed"))
}

func TestDispatch_PanicsWithInvocationError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Calculator")
	core.When(fake, calcNegate).WithArgs(5).ThenReturn(-5)

	var invocationErr *core.InvocationError

	g.Expect(func() { core.Dispatch(fake, calcNegate, 6) }).To(PanicWith(
		And(
			BeAssignableToTypeOf(invocationErr),
			MatchError(ContainSubstring("Expected: 5")),
			MatchError(ContainSubstring("Actual:   6")),
		),
	))
	g.Expect(fake.Store().Poisoned()).To(BeTrue())
}

func TestDispatch_EqRoundTrip(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Calculator")
	core.When(fake, calcNegate).WithArgs(5).Then(func(x int) int { return -x })

	g.Expect(core.Dispatch(fake, calcNegate, 5)).To(Equal(-5))

	_, err := core.TryDispatch(fake, calcNegate, 6)
	g.Expect(err).To(MatchError(core.ErrArgsMismatch))
	g.Expect(err.Error()).To(Equal("`Calculator.Negate` had no suitable stubs. Existing stubs failed because:\n" +
		"✗ Argument did not match.\n  Expected: 5\n  Actual:   6"))
}

func TestDispatch_AggregatesEveryRejectionNewestFirst(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Calculator")
	core.When(fake, calcNegate).WithArgs(1).ThenReturn(-1)
	core.When(fake, calcNegate).WithArgs(2).ThenReturn(-2)

	_, err := core.TryDispatch(fake, calcNegate, 3)

	var invocationErr *core.InvocationError

	g.Expect(errors.As(err, &invocationErr)).To(BeTrue())
	g.Expect(invocationErr.Causes).To(HaveLen(2))
	g.Expect(invocationErr.Causes[0].Error()).To(ContainSubstring("Expected: 2"))
	g.Expect(invocationErr.Causes[1].Error()).To(ContainSubstring("Expected: 1"))
	g.Expect(err.Error()).To(ContainSubstring("Actual:   3\n\n✗ Argument did not match."))
}

func TestDispatch_NewestStubWins(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 20).Draw(rt, "count")
		fake := core.NewFaux("Calculator")

		for i := range count {
			core.When(fake, calcNegate).ThenReturn(i)
		}

		if got := core.Dispatch(fake, calcNegate, 0); got != count-1 {
			rt.Fatalf("dispatch with %d stubs returned %d, want %d", count, got, count-1)
		}
	})
}

func TestDispatch_FallsBackToOlderStubWhenNewerExhausted(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Calculator")
	core.When(fake, calcReset).ThenReturn("default")
	core.When(fake, calcReset).Once().ThenReturn("first")

	g.Expect(core.Dispatch(fake, calcReset, core.NoArgs{})).To(Equal("first"))
	g.Expect(core.Dispatch(fake, calcReset, core.NoArgs{})).To(Equal("default"))
	g.Expect(core.Dispatch(fake, calcReset, core.NoArgs{})).To(Equal("default"))
}

func TestDispatch_ThenReturnCopies(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		copies := rapid.IntRange(1, 30).Draw(rt, "copies")
		value := rapid.String().Draw(rt, "value")
		fake := core.NewFaux("Calculator")

		core.When(fake, calcReset).Times(copies).ThenReturn(value)

		for i := range copies {
			if got := core.Dispatch(fake, calcReset, core.NoArgs{}); got != value {
				rt.Fatalf("copy %d = %q, want %q", i, got, value)
			}
		}

		if _, err := core.TryDispatch(fake, calcReset, core.NoArgs{}); !errors.Is(err, core.ErrExhausted) {
			rt.Fatalf("call after %d copies: got %v, want exhausted", copies, err)
		}
	})
}

func TestDispatch_Times(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		limit := rapid.IntRange(1, 30).Draw(rt, "limit")
		fake := core.NewFaux("Calculator")

		core.When(fake, calcNegate).Times(limit).Then(func(x int) int { return -x })

		for i := range limit {
			out, err := core.TryDispatch(fake, calcNegate, i)
			if err != nil || out != -i {
				rt.Fatalf("call %d = (%d, %v), want (%d, nil)", i, out, err, -i)
			}
		}

		if _, err := core.TryDispatch(fake, calcNegate, 0); err == nil {
			rt.Fatalf("call %d succeeded past the limit", limit+1)
		}
	})
}

func TestDispatch_ReentrantStub(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Calculator")
	core.When(fake, calcNegate).Then(func(x int) int {
		// Calls back into the same store while the outer dispatch is in flight.
		inner := core.Dispatch(fake, calcNegate, 0)

		return inner - x
	})
	core.When(fake, calcNegate).WithArgs(0).ThenReturn(0)

	g.Expect(core.Dispatch(fake, calcNegate, 4)).To(Equal(-4))
}

func TestDispatch_StubPanicPoisonsStore(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	reporter := &recordingReporter{}
	fake := core.NewFaux("Calculator", core.WithReporter(reporter))

	core.Expect(fake, calcAdd)
	core.When(fake, calcNegate).Then(func(int) int { panic("boom") })

	g.Expect(func() { core.Dispatch(fake, calcNegate, 1) }).To(PanicWith("boom"))
	g.Expect(fake.Store().Poisoned()).To(BeTrue())

	fake.Release()
	g.Expect(reporter.failures()).To(BeEmpty(), "a poisoned store does not report unmet expectations")
}

func TestBuilder_SingleUse(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Calculator")

	when := core.When(fake, calcNegate)
	when.ThenReturn(1)
	g.Expect(func() { when.ThenReturn(2) }).To(PanicWith("faux: stub builder for Calculator.Negate already used"))

	once := core.When(fake, calcNegate).Once()
	once.ThenReturn(1)
	g.Expect(func() { once.Then(func(int) int { return 2 }) }).To(Panic())

	g.Expect(func() { core.When(fake, calcNegate).Times(0) }).To(Panic())
}

func TestExpect_SatisfiedEvenWhenNoStubMatches(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Calculator")
	core.Expect(fake, calcNegate).WithArgs(7)

	_, err := core.TryDispatch(fake, calcNegate, 7)
	g.Expect(err).To(MatchError(core.ErrNeverStubbed))
	g.Expect(fake.Verify()).To(Succeed())
}

func TestExpect_UnmetListed(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Calculator")
	core.When(fake, calcAdd).ThenReturn(0)
	core.Expect(fake, calcAdd).WithArgs(1, 2)
	core.Expect(fake, calcNegate)

	core.Dispatch(fake, calcAdd, core.Args2[int, int]{A0: 3, A1: 4})

	err := fake.Verify()
	g.Expect(err).To(MatchError(core.ErrUnmetExpectations))
	g.Expect(err.Error()).To(Equal("unmet expectations for `Calculator`:\n" +
		"✗ `Calculator.Add` expected a call matching [1, 2]\n" +
		"✗ `Calculator.Negate` expected a call matching [<any>]"))

	core.Dispatch(fake, calcAdd, core.Args2[int, int]{A0: 1, A1: 2})
	_, _ = core.TryDispatch(fake, calcNegate, 0)

	g.Expect(fake.Verify()).To(Succeed())
}

func TestExpect_OneCallSatisfiesEveryMatchingExpectation(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Calculator")
	core.When(fake, calcNegate).ThenReturn(0)
	core.Expect(fake, calcNegate)
	core.Expect(fake, calcNegate).WithArgs(2)

	core.Dispatch(fake, calcNegate, 2)

	g.Expect(fake.Verify()).To(Succeed())
}

func TestStore_String(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fake := core.NewFaux("Calculator")
	core.When(fake, calcNegate).ThenReturn(0)

	g.Expect(fake.Store().String()).To(Equal(fmt.Sprintf("Store(Calculator){Calculator.Negate: func(%s) %s}", "int", "int")))
	g.Expect(fake.Store().ID()).To(HaveLen(36))
}
