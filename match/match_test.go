package match_test

import (
	"errors"
	"slices"
	"testing"

	. "github.com/onsi/gomega"
	"pgregory.net/rapid"

	"github.com/toejough/faux/match"
)

type Celsius float64

type request struct {
	Method string
	Path   string
	Body   []byte
}

func TestAll(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	positive := match.FromFn("positive", func(x int) bool { return x > 0 })
	even := match.FromFn("even", func(x int) bool { return x%2 == 0 })
	matcher := match.All(positive, even)

	ok, err := matcher.Match(4)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())

	ok, err = matcher.Match(3)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeFalse())
	g.Expect(matcher.FailureMessage(3)).To(Equal("failed even"))
	g.Expect(match.Describe(matcher)).To(Equal("all(positive, even)"))
}

func TestAny(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		value := rapid.OneOf(
			rapid.Just[any](nil),
			rapid.Map(rapid.Int(), func(i int) any { return i }),
			rapid.Map(rapid.String(), func(s string) any { return s }),
		).Draw(rt, "value")

		ok, err := match.Any().Match(value)
		if !ok || err != nil {
			rt.Fatalf("Any().Match(%v) = (%v, %v), want (true, nil)", value, ok, err)
		}

		if msg := match.BeAny.FailureMessage(value); msg != "" {
			rt.Fatalf("BeAny.FailureMessage(%v) = %q, want empty string", value, msg)
		}
	})
}

func TestDescribe_ForeignMatcherUsesTypeName(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(match.Describe(BeNumerically(">", 0))).To(Equal("<matchers.BeNumericallyMatcher>"))
	g.Expect(match.Describe(match.Any())).To(Equal("_"))
}

func TestEq_DereferencesEitherSide(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	five := 5

	ok, _ := match.Eq(5).Match(&five)
	g.Expect(ok).To(BeTrue(), "Eq(value) should match a pointer to an equal value")

	ok, _ = match.Eq(&five).Match(5)
	g.Expect(ok).To(BeTrue(), "Eq(pointer) should match an equal value")

	ok, _ = match.Eq(5).Match(6)
	g.Expect(ok).To(BeFalse())

	ok, _ = match.Eq(5).Match(int64(5))
	g.Expect(ok).To(BeFalse(), "Eq does not convert between types")
}

func TestEq_NilMatchesTypedNil(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var (
		node     *request
		body     []byte
		headers  map[string]string
		done     chan struct{}
		callback func()
	)

	for _, actual := range []any{nil, node, body, headers, done, callback} {
		ok, err := match.Eq(nil).Match(actual)
		g.Expect(err).NotTo(HaveOccurred())
		g.Expect(ok).To(BeTrue(), "Eq(nil) should match %#v", actual)
	}

	for _, actual := range []any{&request{}, []byte{}, map[string]string{}, 0, ""} {
		ok, _ := match.Eq(nil).Match(actual)
		g.Expect(ok).To(BeFalse(), "Eq(nil) should not match %#v", actual)
	}
}

func TestEq_MultilineStringsFailWithDiff(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := match.Eq("alpha\nbeta\ngamma")

	ok, _ := matcher.Match("alpha\nBETA\ngamma")
	g.Expect(ok).To(BeFalse())

	msg := matcher.FailureMessage("alpha\nBETA\ngamma")
	g.Expect(msg).To(ContainSubstring("--- expected"))
	g.Expect(msg).To(ContainSubstring("+++ actual"))
	g.Expect(msg).To(ContainSubstring("-beta"))
	g.Expect(msg).To(ContainSubstring("+BETA"))

	g.Expect(match.Eq("short").FailureMessage("other")).To(BeEmpty())
}

func TestEq_Reflexive(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		value := rapid.SliceOf(rapid.Int()).Draw(rt, "value")
		other := slices.Clone(value)

		ok, err := match.Eq(value).Match(other)
		if !ok || err != nil {
			rt.Fatalf("Eq(%v).Match(%v) = (%v, %v), want (true, nil)", value, other, ok, err)
		}
	})
}

func TestEqAgainst_ConvertsActual(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := match.EqAgainst(Celsius(21.5))

	ok, err := matcher.Match(21.5)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())

	ok, err = matcher.Match(21.6)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeFalse())

	ok, _ = match.EqAgainst(int64(3)).Match(3)
	g.Expect(ok).To(BeTrue())
}

func TestFromFn_WrongTypeIsError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := match.FromFn("even", func(x int) bool { return x%2 == 0 })

	ok, err := matcher.Match("two")
	g.Expect(ok).To(BeFalse())
	g.Expect(err).To(MatchError(ContainSubstring("expected int, got string")))
	g.Expect(match.Describe(matcher)).To(Equal("even"))
}

func TestNot(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := match.Not(5)

	ok, _ := matcher.Match(6)
	g.Expect(ok).To(BeTrue())

	ok, _ = matcher.Match(5)
	g.Expect(ok).To(BeFalse())
	g.Expect(matcher.FailureMessage(5)).To(Equal("value 5 unexpectedly matched 5"))
	g.Expect(match.Describe(matcher)).To(Equal("!5"))
}

func TestPattern(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := match.Pattern(match.Fields{
		"Method": "GET",
		"Path":   match.FromFn("api path", func(p string) bool { return len(p) > 5 && p[:5] == "/api/" }),
	})

	ok, err := matcher.Match(request{Method: "GET", Path: "/api/users", Body: []byte("ignored")})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue(), "fields not named in the pattern are ignored")

	ok, err = matcher.Match(&request{Method: "GET", Path: "/api/users"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue(), "pointers to structs are followed")

	ok, err = matcher.Match(request{Method: "POST", Path: "/api/users"})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeFalse())
	g.Expect(matcher.FailureMessage(request{Method: "POST", Path: "/api/users"})).To(ContainSubstring("Method"))

	g.Expect(match.Describe(matcher)).To(Equal(`{Method: "GET", Path: api path, ..}`))
}

func TestPattern_NonStructIsError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	ok, err := match.Pattern(match.Fields{"Method": "GET"}).Match(42)
	g.Expect(ok).To(BeFalse())
	g.Expect(err).To(MatchError(ContainSubstring("expected a struct, got int")))
}

func TestRender(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	five := 5

	g.Expect(match.Render(nil)).To(Equal("nil"))
	g.Expect(match.Render(5)).To(Equal("5"))
	g.Expect(match.Render("hi")).To(Equal(`"hi"`))
	g.Expect(match.Render(&five)).To(Equal("&5"))
}

func TestSatisfy_MatchFailure(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	matcher := match.Satisfy(func(val int) error {
		if val <= 10 {
			return errors.New("must be greater than 10")
		}

		return nil
	})

	ok, err := matcher.Match(5)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeFalse())
	g.Expect(matcher.FailureMessage(5)).To(Equal("value 5 does not satisfy predicate: must be greater than 10"))

	ok, err = matcher.Match(42)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(ok).To(BeTrue())
	g.Expect(match.Describe(matcher)).To(Equal("satisfies(int)"))
}

func TestToMatcher(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(match.ToMatcher(match.BeAny)).To(BeIdenticalTo(match.BeAny))
	g.Expect(match.Describe(match.ToMatcher(7))).To(Equal("7"))
}
