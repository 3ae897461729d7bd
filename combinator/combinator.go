// Package combinator is the reference matcher library used to exercise
// and test the pex engine. The matcher set is an open extension point
// rather than something the engine hard-codes; this package is one
// concrete implementation of it, in the same spirit as a hand-built
// example grammar living alongside a parsing library to exercise it.
package combinator

import (
	"io"

	"github.com/ava12/pex/matcher"
	"github.com/ava12/pex/perr"
	"github.com/ava12/pex/source"
)

// arena assigns stable, monotonically increasing IDs to matchers built
// through it, so a grammar can be built with stable arena indices
// for grammars that need to form cycles (see Ref below).
type arena struct {
	next int
}

func (a *arena) id() int {
	a.next++
	return a.next
}

// Arena is the exported constructor a grammar author builds matchers
// through, so IDs stay unique within one grammar tree (and therefore
// within one engine.Run's cache keys).
type Arena struct {
	a arena
}

func NewArena() *Arena { return &Arena{} }

// Literal matches an exact, non-empty string.
type Literal struct {
	id   int
	text string
}

func (a *Arena) Literal(text string) *Literal {
	return &Literal{id: a.a.id(), text: text}
}

func (l *Literal) ID() int      { return l.id }
func (l *Literal) Name() string { return "literal(" + l.text + ")" }

func (l *Literal) Execute(cfg *matcher.Config, state matcher.State, iter source.Iter) (matcher.Message, error) {
	i := iter
	for _, want := range l.text {
		got, next, err := cfg.Source.Next(i)
		if err != nil || got != want {
			if err != nil && err != io.EOF {
				return matcher.Message{}, err
			}
			return matcher.Fail(), nil
		}
		i = next
	}
	return matcher.Ok(matcher.Dirty, i, matcher.One(l.text)), nil
}

func (l *Literal) Success(cfg *matcher.Config, parentState, childState matcher.State, iter source.Iter, result matcher.Value) (matcher.Message, error) {
	return matcher.Message{}, perr.NewConfigError("leaf matcher %q received an unexpected Success callback", l.Name())
}
func (l *Literal) Failure(cfg *matcher.Config, parentState matcher.State) (matcher.Message, error) {
	return matcher.Message{}, perr.NewConfigError("leaf matcher %q received an unexpected Failure callback", l.Name())
}

// Dot matches exactly one character, whatever it is.
type Dot struct{ id int }

func (a *Arena) Dot() *Dot { return &Dot{id: a.a.id()} }

func (d *Dot) ID() int      { return d.id }
func (d *Dot) Name() string { return "dot" }

func (d *Dot) Execute(cfg *matcher.Config, state matcher.State, iter source.Iter) (matcher.Message, error) {
	ch, next, err := cfg.Source.Next(iter)
	if err == io.EOF {
		return matcher.Fail(), nil
	}
	if err != nil {
		return matcher.Message{}, err
	}
	return matcher.Ok(matcher.Dirty, next, matcher.One(string(ch))), nil
}

func (d *Dot) Success(cfg *matcher.Config, parentState, childState matcher.State, iter source.Iter, result matcher.Value) (matcher.Message, error) {
	return matcher.Message{}, perr.NewConfigError("leaf matcher %q received an unexpected Success callback", d.Name())
}
func (d *Dot) Failure(cfg *matcher.Config, parentState matcher.State) (matcher.Message, error) {
	return matcher.Message{}, perr.NewConfigError("leaf matcher %q received an unexpected Failure callback", d.Name())
}

// Satisfy matches exactly one character for which pred returns true,
// labeled for diagnostics since a predicate carries no name of its own.
type Satisfy struct {
	id    int
	label string
	pred  func(rune) bool
}

func (a *Arena) Satisfy(label string, pred func(rune) bool) *Satisfy {
	return &Satisfy{id: a.a.id(), label: label, pred: pred}
}

func (s *Satisfy) ID() int      { return s.id }
func (s *Satisfy) Name() string { return "satisfy(" + s.label + ")" }

func (s *Satisfy) Execute(cfg *matcher.Config, state matcher.State, iter source.Iter) (matcher.Message, error) {
	ch, next, err := cfg.Source.Next(iter)
	if err == io.EOF {
		return matcher.Fail(), nil
	}
	if err != nil {
		return matcher.Message{}, err
	}
	if !s.pred(ch) {
		return matcher.Fail(), nil
	}
	return matcher.Ok(matcher.Dirty, next, matcher.One(string(ch))), nil
}

func (s *Satisfy) Success(cfg *matcher.Config, parentState, childState matcher.State, iter source.Iter, result matcher.Value) (matcher.Message, error) {
	return matcher.Message{}, perr.NewConfigError("leaf matcher %q received an unexpected Success callback", s.Name())
}
func (s *Satisfy) Failure(cfg *matcher.Config, parentState matcher.State) (matcher.Message, error) {
	return matcher.Message{}, perr.NewConfigError("leaf matcher %q received an unexpected Failure callback", s.Name())
}

// Seq runs its children in order and commits: once a child has
// succeeded, Seq never backtracks into it — that is what Try is for,
// applied to a whole Seq from outside.
type Seq struct {
	id       int
	children []matcher.Matcher
	join     func(matcher.Value) matcher.Value
}

func (a *Arena) Seq(children ...matcher.Matcher) *Seq {
	return &Seq{id: a.a.id(), children: children}
}

// Joined attaches a post-processing step applied to the concatenated
// child results, mirroring the "joined to pair"/"joined to string"
// language of a "sequence joined to a pair" grammar.
func (s *Seq) Joined(fn func(matcher.Value) matcher.Value) *Seq {
	s.join = fn
	return s
}

func (s *Seq) ID() int      { return s.id }
func (s *Seq) Name() string { return "seq" }

// seqState.acc is a *Value, not a Value: matcher.State must stay
// comparable so it can serve as (part of) an engine cache key, and a
// bare Value is a slice — pointer identity is comparable where
// structural slice equality is not.
type seqState struct {
	index int
	acc   *matcher.Value
}

func (s *Seq) Execute(cfg *matcher.Config, state matcher.State, iter source.Iter) (matcher.Message, error) {
	if len(s.children) == 0 {
		return matcher.Ok(matcher.Dirty, iter, matcher.Empty), nil
	}
	empty := matcher.Empty
	return matcher.Exec(s, seqState{0, &empty}, s.children[0], matcher.Clean, iter), nil
}

func (s *Seq) Success(cfg *matcher.Config, parentState, childState matcher.State, iter source.Iter, result matcher.Value) (matcher.Message, error) {
	ps := parentState.(seqState)
	acc := ps.acc.Concat(result)
	next := ps.index + 1
	if next == len(s.children) {
		final := acc
		if s.join != nil {
			final = s.join(acc)
		}
		return matcher.Ok(seqState{next, &acc}, iter, final), nil
	}
	return matcher.Exec(s, seqState{next, &acc}, s.children[next], matcher.Clean, iter), nil
}

func (s *Seq) Failure(cfg *matcher.Config, parentState matcher.State) (matcher.Message, error) {
	return matcher.Fail(), nil
}

// Alt tries each child in order, moving to the next only on Failure.
// The first child to succeed determines Alt's result; children after it
// are never tried — wrap a branch in Try to allow it to consume input
// and still let a later branch run.
type Alt struct {
	id       int
	children []matcher.Matcher
}

func (a *Arena) Alt(children ...matcher.Matcher) *Alt {
	return &Alt{id: a.a.id(), children: children}
}

func (alt *Alt) ID() int      { return alt.id }
func (alt *Alt) Name() string { return "alt" }

// altState remembers the cursor Alt started at, since Failure handlers
// receive no iter: the next alternative must be tried
// from the same starting position as the ones that already failed.
type altState struct {
	index int
	start source.Iter
}

func (alt *Alt) Execute(cfg *matcher.Config, state matcher.State, iter source.Iter) (matcher.Message, error) {
	if len(alt.children) == 0 {
		return matcher.Fail(), nil
	}
	return matcher.Exec(alt, altState{0, iter}, alt.children[0], matcher.Clean, iter), nil
}

func (alt *Alt) Success(cfg *matcher.Config, parentState, childState matcher.State, iter source.Iter, result matcher.Value) (matcher.Message, error) {
	return matcher.Ok(matcher.Dirty, iter, result), nil
}

func (alt *Alt) Failure(cfg *matcher.Config, parentState matcher.State) (matcher.Message, error) {
	ps := parentState.(altState)
	next := ps.index + 1
	if next >= len(alt.children) {
		return matcher.Fail(), nil
	}
	return matcher.Exec(alt, altState{next, ps.start}, alt.children[next], matcher.Clean, ps.start), nil
}

// Repeat matches its child between min and max times (max < 0 means
// unbounded), accumulating each attempt's result. Once min attempts have
// succeeded, a further failing attempt simply ends the repetition rather
// than failing the whole Repeat — "dot repeated 0..2 times" is exactly
// this shape with min=0.
type Repeat struct {
	id       int
	inner    matcher.Matcher
	min, max int
	join     func(matcher.Value) matcher.Value
}

func (a *Arena) Repeat(inner matcher.Matcher, min, max int) *Repeat {
	return &Repeat{id: a.a.id(), inner: inner, min: min, max: max}
}

// Joined attaches a post-processing step, mirroring Seq.Joined.
func (r *Repeat) Joined(fn func(matcher.Value) matcher.Value) *Repeat {
	r.join = fn
	return r
}

func (r *Repeat) ID() int      { return r.id }
func (r *Repeat) Name() string { return "repeat" }

// repeatState.acc is a *Value for the same reason as seqState.acc: it
// must stay comparable to serve as an engine cache key.
type repeatState struct {
	count int
	acc   *matcher.Value
	last  source.Iter
}

func (r *Repeat) Execute(cfg *matcher.Config, state matcher.State, iter source.Iter) (matcher.Message, error) {
	if r.max == 0 {
		return matcher.Ok(matcher.Dirty, iter, matcher.Empty), nil
	}
	empty := matcher.Empty
	return matcher.Exec(r, repeatState{0, &empty, iter}, r.inner, matcher.Clean, iter), nil
}

func (r *Repeat) Success(cfg *matcher.Config, parentState, childState matcher.State, iter source.Iter, result matcher.Value) (matcher.Message, error) {
	ps := parentState.(repeatState)
	count := ps.count + 1
	acc := ps.acc.Concat(result)
	if r.max >= 0 && count >= r.max {
		return r.finish(repeatState{count, &acc, iter}, iter), nil
	}
	return matcher.Exec(r, repeatState{count, &acc, iter}, r.inner, matcher.Clean, iter), nil
}

func (r *Repeat) Failure(cfg *matcher.Config, parentState matcher.State) (matcher.Message, error) {
	ps := parentState.(repeatState)
	if ps.count < r.min {
		return matcher.Fail(), nil
	}
	return r.finish(ps, ps.last), nil
}

func (r *Repeat) finish(ps repeatState, iter source.Iter) matcher.Message {
	final := *ps.acc
	if r.join != nil {
		final = r.join(*ps.acc)
	}
	return matcher.Ok(ps, iter, final)
}

// Transform wraps a child matcher and post-processes its result. Unlike
// Seq/Repeat's Joined option, Transform is a standalone node so a single
// leaf's output can be reshaped without wrapping it in a one-child Seq.
type Transform struct {
	id    int
	inner matcher.Matcher
	fn    func(matcher.Value) matcher.Value
}

func (a *Arena) Transform(inner matcher.Matcher, fn func(matcher.Value) matcher.Value) *Transform {
	return &Transform{id: a.a.id(), inner: inner, fn: fn}
}

func (t *Transform) ID() int      { return t.id }
func (t *Transform) Name() string { return "transform(" + t.inner.Name() + ")" }

type transformState struct{ inner matcher.State }

func (t *Transform) Execute(cfg *matcher.Config, state matcher.State, iter source.Iter) (matcher.Message, error) {
	return matcher.Exec(t, transformState{}, t.inner, matcher.Clean, iter), nil
}

func (t *Transform) Success(cfg *matcher.Config, parentState, childState matcher.State, iter source.Iter, result matcher.Value) (matcher.Message, error) {
	return matcher.Ok(transformState{childState}, iter, t.fn(result)), nil
}

func (t *Transform) Failure(cfg *matcher.Config, parentState matcher.State) (matcher.Message, error) {
	return matcher.Fail(), nil
}

// Ref is a forward reference to a matcher defined elsewhere in the same
// Arena, resolved lazily via Set. This is how a grammar for a recursive
// language forms a cycle through the arena's integer IDs instead of
// through reference-counted pointers.
type Ref struct {
	id     int
	name   string
	target matcher.Matcher
}

func (a *Arena) Ref(name string) *Ref {
	return &Ref{id: a.a.id(), name: name}
}

// Set resolves the reference. Must be called before the grammar is
// parsed with; calling it twice or leaving it unresolved is a grammar
// construction bug, not a runtime concern this package guards against.
// Grammar trees are built once and trusted thereafter.
func (r *Ref) Set(target matcher.Matcher) {
	r.target = target
}

func (r *Ref) ID() int      { return r.id }
func (r *Ref) Name() string { return "ref(" + r.name + ")" }

func (r *Ref) Execute(cfg *matcher.Config, state matcher.State, iter source.Iter) (matcher.Message, error) {
	return matcher.Exec(r, nil, r.target, matcher.Clean, iter), nil
}

func (r *Ref) Success(cfg *matcher.Config, parentState, childState matcher.State, iter source.Iter, result matcher.Value) (matcher.Message, error) {
	return matcher.Ok(matcher.Dirty, iter, result), nil
}

func (r *Ref) Failure(cfg *matcher.Config, parentState matcher.State) (matcher.Message, error) {
	return matcher.Fail(), nil
}
