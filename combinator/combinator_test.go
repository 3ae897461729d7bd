package combinator_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ava12/pex"
	"github.com/ava12/pex/combinator"
	"github.com/ava12/pex/engine"
	"github.com/ava12/pex/matcher"
	"github.com/ava12/pex/source"
)

func run(t *testing.T, grammar matcher.Matcher, input string) (matcher.Value, error) {
	t.Helper()
	value, _, err := engine.Run(grammar, source.FromString("t", input), engine.Options{}, "")
	return value, err
}

func mustSucceed(t *testing.T, grammar matcher.Matcher, input string, want matcher.Value) {
	t.Helper()
	value, err := run(t, grammar, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]any(want), []any(value)); diff != "" {
		t.Errorf("value mismatch (-want +got):\n%s", diff)
	}
}

func mustFail(t *testing.T, grammar matcher.Matcher, input string) {
	t.Helper()
	_, err := run(t, grammar, input)
	if err == nil {
		t.Fatal("expected a failure, got success")
	}
	if _, ok := err.(*engine.Failure); !ok {
		t.Fatalf("expected *engine.Failure, got %v (%T)", err, err)
	}
}

func TestLiteral(t *testing.T) {
	a := combinator.NewArena()
	lit := a.Literal("hello")

	mustSucceed(t, lit, "hello", matcher.One("hello"))
	mustFail(t, lit, "help!")
	mustFail(t, lit, "hel")
}

func TestDot(t *testing.T) {
	a := combinator.NewArena()
	dot := a.Dot()

	mustSucceed(t, dot, "x", matcher.One("x"))
	mustFail(t, dot, "")
}

func TestSatisfy(t *testing.T) {
	a := combinator.NewArena()
	digit := a.Satisfy("digit", func(r rune) bool { return r >= '0' && r <= '9' })

	mustSucceed(t, digit, "7", matcher.One("7"))
	mustFail(t, digit, "x")
}

func TestSeq(t *testing.T) {
	a := combinator.NewArena()
	seq := a.Seq(a.Literal("foo"), a.Literal("bar"))

	mustSucceed(t, seq, "foobar", matcher.Value{"foo", "bar"})
	mustFail(t, seq, "foobaz")
	mustFail(t, seq, "foo")
}

func TestSeqEmpty(t *testing.T) {
	a := combinator.NewArena()
	seq := a.Seq()

	mustSucceed(t, seq, "", matcher.Empty)
}

func TestSeqJoined(t *testing.T) {
	a := combinator.NewArena()
	seq := a.Seq(a.Literal("foo"), a.Literal("bar")).Joined(func(v matcher.Value) matcher.Value {
		return matcher.One(v[0].(string) + v[1].(string))
	})

	mustSucceed(t, seq, "foobar", matcher.One("foobar"))
}

func TestAlt(t *testing.T) {
	a := combinator.NewArena()
	alt := a.Alt(a.Literal("cat"), a.Literal("dog"))

	mustSucceed(t, alt, "cat", matcher.One("cat"))
	mustSucceed(t, alt, "dog", matcher.One("dog"))
	mustFail(t, alt, "fox")
}

func TestAltCommitsToFirstMatch(t *testing.T) {
	a := combinator.NewArena()
	// "ab" is tried and fails outright (no partial consumption without
	// Try), so Alt must still reach the second branch.
	alt := a.Alt(a.Literal("ab"), a.Literal("ac"))

	mustSucceed(t, alt, "ac", matcher.One("ac"))
}

func TestAltEmptyChildrenFails(t *testing.T) {
	a := combinator.NewArena()
	alt := a.Alt()

	mustFail(t, alt, "anything")
}

func TestRepeatMinMax(t *testing.T) {
	a := combinator.NewArena()
	rep := a.Repeat(a.Literal("x"), 2, 3)

	mustSucceed(t, rep, "xx", matcher.Value{"x", "x"})
	mustSucceed(t, rep, "xxx", matcher.Value{"x", "x", "x"})
	mustFail(t, rep, "x")
}

func TestRepeatUnbounded(t *testing.T) {
	a := combinator.NewArena()
	rep := a.Repeat(a.Literal("x"), 0, -1)

	mustSucceed(t, rep, "", matcher.Empty)
	mustSucceed(t, rep, "xxxxx", matcher.Value{"x", "x", "x", "x", "x"})
}

func TestRepeatMaxZero(t *testing.T) {
	a := combinator.NewArena()
	rep := a.Repeat(a.Literal("x"), 0, 0)

	mustSucceed(t, rep, "xxx", matcher.Empty)
}

func TestRepeatJoined(t *testing.T) {
	a := combinator.NewArena()
	rep := a.Repeat(a.Dot(), 0, -1).Joined(func(v matcher.Value) matcher.Value {
		s := ""
		for _, item := range v {
			s += item.(string)
		}
		return matcher.One(s)
	})

	mustSucceed(t, rep, "abc", matcher.One("abc"))
}

func TestTransform(t *testing.T) {
	a := combinator.NewArena()
	tr := a.Transform(a.Literal("42"), func(v matcher.Value) matcher.Value {
		return matcher.One(len(v[0].(string)))
	})

	mustSucceed(t, tr, "42", matcher.One(2))
	mustFail(t, tr, "xx")
}

func TestRefRecursiveGrammar(t *testing.T) {
	a := combinator.NewArena()

	// balanced: '(' balanced ')' | epsilon
	balanced := a.Ref("balanced")
	inner := a.Alt(
		a.Seq(a.Literal("("), balanced, a.Literal(")")),
		a.Seq(),
	)
	balanced.Set(inner)

	mustSucceed(t, balanced, "", matcher.Empty)
	mustSucceed(t, balanced, "()", matcher.Value{"(", ")"})
	mustSucceed(t, balanced, "(())", matcher.Value{"(", "(", ")", ")"})

	// The grammar's own epsilon branch means both engine.Run and
	// ParseOne happily match just the empty prefix of "((" — ParseOne is
	// shorthand for "first successful parse", not "parse of the whole
	// input"; a caller that needs the latter checks the returned Stopped
	// cursor against source.Done itself.
	result, err := pex.ParseOne(balanced, source.FromString("t", "(("), pex.Options{})
	if err != nil {
		t.Fatalf("ParseOne: %v", err)
	}
	if result.Stopped != source.NewIter(1, 1) {
		t.Errorf("Stopped = %v, want (1,1)", result.Stopped)
	}
}
