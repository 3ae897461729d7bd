package matcher

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValueConcatIsAssociative(t *testing.T) {
	a := Value{"a"}
	b := Value{"b"}
	c := Value{"c"}

	left := a.Concat(b).Concat(c)
	right := a.Concat(b.Concat(c))

	if diff := cmp.Diff([]any(left), []any(right)); diff != "" {
		t.Errorf("concat is not associative (-left +right):\n%s", diff)
	}
}

func TestEmptyDistinctFromAbsence(t *testing.T) {
	var absent Value
	if absent.Present() {
		t.Error("nil Value must report absent")
	}
	if !Empty.Present() {
		t.Error("Empty must report present")
	}
	if len(Empty) != 0 {
		t.Error("Empty must have zero items")
	}
}

func TestConcatWithAbsenceIsIdentity(t *testing.T) {
	var absent Value
	v := Value{"x"}
	if diff := cmp.Diff([]any(v.Concat(absent)), []any(v)); diff != "" {
		t.Errorf("v.Concat(absent) should equal v:\n%s", diff)
	}
	if diff := cmp.Diff([]any(absent.Concat(v)), []any(v)); diff != "" {
		t.Errorf("absent.Concat(v) should equal v:\n%s", diff)
	}
}
