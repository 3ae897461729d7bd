package perr

import (
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestNewAppendsPosition(t *testing.T) {
	samples := map[string]struct {
		name      string
		line, col int
		want      string
	}{
		"no position":   {"", 0, 0, "boom"},
		"missing line":  {"f.txt", 0, 3, "boom"},
		"full position": {"f.txt", 2, 3, "boom in f.txt at line 2 col 3"},
	}

	for label, s := range samples {
		e := New(1, "boom", s.name, s.line, s.col)
		if e.Error() != s.want {
			t.Errorf("%s: expected %q, got %q", label, s.want, e.Error())
		}
	}
}

func TestFormatInterpolates(t *testing.T) {
	e := Format(1, "expected %s, got %s", "a", "b")
	want := "expected a, got b"
	if e.Error() != want {
		t.Errorf("expected %q, got %q", want, e.Error())
	}
}

type pos struct{ line, col int }

func (p pos) Line() int { return p.line }
func (p pos) Col() int  { return p.col }

func TestIsExpired(t *testing.T) {
	base := NewExpired("f.txt", 2, 5)
	wrapped := pkgerrors.Wrap(base, "while resuming")

	if !IsExpired(base) {
		t.Error("expected bare ExpiredContent to be detected")
	}
	if !IsExpired(wrapped) {
		t.Error("expected wrapped ExpiredContent to be detected through Cause()")
	}
	if IsExpired(NewParserError("nope", pos{1, 1})) {
		t.Error("ParserError must never be reported as expired")
	}
}

func TestParserErrorMessage(t *testing.T) {
	e := NewParserError("expected body", pos{1, 6})
	want := "expected body at line 1 col 6"
	if e.Error() != want {
		t.Errorf("expected %q, got %q", want, e.Error())
	}
}
