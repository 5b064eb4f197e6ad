//nolint:testpackage // restore is unexported and only reachable through a broken caller
package core

import (
	"testing"

	"github.com/onsi/gomega"
)

func TestRestore_WrongTypesPanics(t *testing.T) {
	t.Parallel()
	g := gomega.NewWithT(t)

	stored := NewMethod[int, string]("Erased", "Stored")
	slot := erase(stored, &stubList[int, string]{})

	forged := Method[string, string]{id: stored.id, typeName: "Erased", name: "Stored"}

	g.Expect(func() { restore(slot, forged) }).To(gomega.PanicWith(gomega.MatchError(ErrTypeMismatch)))
}

func TestRestore_WrongNamePanics(t *testing.T) {
	t.Parallel()
	g := gomega.NewWithT(t)

	stored := NewMethod[int, string]("Erased", "Named")
	slot := erase(stored, &stubList[int, string]{})

	renamed := Method[int, string]{id: stored.id, typeName: "Erased", name: "Renamed"}

	g.Expect(func() { restore(slot, renamed) }).To(gomega.PanicWith(gomega.MatchError(gomega.ContainSubstring(`"Erased.Named" vs "Erased.Renamed"`))))
}

func TestStubList_NewestFirst(t *testing.T) {
	t.Parallel()
	g := gomega.NewWithT(t)

	list := &stubList[int, int]{}

	first := NewStub(AnyArgs[int](), OnceAnswer(func(int) int { return 1 }))
	second := NewStub(AnyArgs[int](), OnceAnswer(func(int) int { return 2 }))

	list.add(first)
	list.add(second)

	g.Expect(list.newestFirst()).To(gomega.Equal([]*Stub[int, int]{second, first}))
	g.Expect(list.len()).To(gomega.Equal(2))
}
