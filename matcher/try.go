package matcher

import (
	"github.com/ava12/pex/perr"
	"github.com/ava12/pex/source"
)

// Try wraps a single child matcher and demarcates a region in which
// Source expiration is suspended, so a failed attempt inside the region
// can be retried from the position before it. Try itself
// never retries the child on failure — that is the job of whatever
// combinator (e.g. Alt) placed a Try node on one of its branches; Try
// only manages the freeze/thaw bracket around a single attempt.
type Try struct {
	id    int
	inner Matcher
}

// NewTry builds a Try matcher wrapping inner, with the given arena id.
func NewTry(id int, inner Matcher) *Try {
	return &Try{id: id, inner: inner}
}

func (t *Try) ID() int      { return t.id }
func (t *Try) Name() string { return "try(" + t.inner.Name() + ")" }

type tryState struct{ inner State }

// Execute enters the wrapped matcher after freezing the Source. A
// non-clean re-entry (state is a tryState) resumes the wrapped matcher
// from its own recorded state, still under a fresh freeze — Try may be
// re-executed by a parent combinator asking for the next alternative.
func (t *Try) Execute(cfg *Config, state State, iter source.Iter) (Message, error) {
	if !cfg.TryEnabled {
		return Message{}, perr.NewConfigError("Try matcher %q used outside a Try-enabled parse", t.inner.Name())
	}

	inner := Clean
	if !IsClean(state) {
		ts, ok := state.(tryState)
		if !ok {
			return Message{}, perr.NewConfigError("Try matcher %q re-entered with foreign state", t.inner.Name())
		}
		inner = ts.inner
	}

	cfg.Source.Freeze()
	return Exec(t, tryState{inner}, t.inner, inner, iter), nil
}

// Success thaws the Source and reports the wrapped matcher's result,
// wrapping its final state so a later re-entry can resume it.
func (t *Try) Success(cfg *Config, _ State, childState State, iter source.Iter, result Value) (Message, error) {
	cfg.Source.Thaw()
	return Ok(tryState{childState}, iter, result), nil
}

// Failure thaws the Source and propagates failure upward. Because the
// Source was frozen for the whole attempt, no input consumed inside the
// Try region was ever expired, so the enclosing grammar may retry from
// the original cursor.
func (t *Try) Failure(cfg *Config, _ State) (Message, error) {
	cfg.Source.Thaw()
	return Fail(), nil
}
