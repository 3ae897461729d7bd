package matcher

import (
	"testing"

	"github.com/ava12/pex/perr"
	"github.com/ava12/pex/source"
)

type constMatcher struct {
	id      int
	succeed bool
	value   Value
}

func (c *constMatcher) ID() int      { return c.id }
func (c *constMatcher) Name() string { return "const" }
func (c *constMatcher) Execute(cfg *Config, state State, iter source.Iter) (Message, error) {
	if c.succeed {
		return Ok(Dirty, iter, c.value), nil
	}
	return Fail(), nil
}
func (c *constMatcher) Success(cfg *Config, parentState, childState State, iter source.Iter, result Value) (Message, error) {
	return Ok(childState, iter, result), nil
}
func (c *constMatcher) Failure(cfg *Config, parentState State) (Message, error) {
	return Fail(), nil
}

func TestTryRequiresTryEnabled(t *testing.T) {
	src := source.FromString("t", "x")
	cfg := &Config{Source: src, TryEnabled: false}
	tr := NewTry(1, &constMatcher{id: 2, succeed: true})

	_, err := tr.Execute(cfg, Clean, src.Start())
	if _, ok := err.(*perr.ConfigError); !ok {
		t.Fatalf("expected ConfigError, got %v (%T)", err, err)
	}
}

func TestTryFreezesAndThawsOnSuccess(t *testing.T) {
	src := source.FromString("t", "x")
	cfg := &Config{Source: src, TryEnabled: true}
	tr := NewTry(1, &constMatcher{id: 2, succeed: true, value: One("x")})

	msg, err := tr.Execute(cfg, Clean, src.Start())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Frozen() != 1 {
		t.Fatalf("expected frozen=1 after Execute, got %d", src.Frozen())
	}

	final, err := tr.Success(cfg, Clean, msg.ChildState, src.Start(), One("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Frozen() != 0 {
		t.Fatalf("expected frozen=0 after Success, got %d", src.Frozen())
	}
	if final.Kind != KindSuccess {
		t.Fatalf("expected KindSuccess, got %v", final.Kind)
	}
}

func TestTryFreezesAndThawsOnFailure(t *testing.T) {
	src := source.FromString("t", "x")
	cfg := &Config{Source: src, TryEnabled: true}
	tr := NewTry(1, &constMatcher{id: 2, succeed: false})

	_, err := tr.Execute(cfg, Clean, src.Start())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Frozen() != 1 {
		t.Fatalf("expected frozen=1 after Execute, got %d", src.Frozen())
	}

	final, err := tr.Failure(cfg, Clean)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Frozen() != 0 {
		t.Fatalf("expected frozen=0 after Failure, got %d", src.Frozen())
	}
	if final.Kind != KindFailure {
		t.Fatalf("expected KindFailure, got %v", final.Kind)
	}
}

func TestErrorMatcherAborts(t *testing.T) {
	src := source.FromString("t", "begin")
	cfg := &Config{Source: src}
	em := NewError(1, "expected body")

	_, err := em.Execute(cfg, Clean, source.Iter{})
	pe, ok := err.(*perr.ParserError)
	if !ok {
		t.Fatalf("expected ParserError, got %v (%T)", err, err)
	}
	if pe.Message != "expected body" {
		t.Errorf("expected message %q, got %q", "expected body", pe.Message)
	}
}
