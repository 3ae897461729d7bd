package matcher

import (
	"github.com/ava12/pex/source"
)

// Matcher is the contract every grammar node satisfies.
// ID is a stable arena index assigned when the matcher is built,
// letting grammars for recursive languages form cycles through Ref
// without relying on reference-counted pointers. Handlers
// must not recurse into the trampoline: they return a Message and
// yield.
type Matcher interface {
	ID() int
	Name() string

	// Execute is called on entering the matcher, or re-entering it in a
	// non-clean state to request the next alternative.
	Execute(cfg *Config, state State, iter source.Iter) (Message, error)

	// Success is called when a child this matcher delegated to has
	// produced a value.
	Success(cfg *Config, parentState, childState State, iter source.Iter, result Value) (Message, error)

	// Failure is called when a child this matcher delegated to failed.
	Failure(cfg *Config, parentState State) (Message, error)
}

// Config carries the engine-wide knobs and collaborators a matcher's
// handlers may consult. It is threaded through every call rather than
// closed over, so the same grammar tree can run under different engine
// Options without rebuilding it.
type Config struct {
	// Source is the input matchers read from. Try needs it directly to
	// Freeze/Thaw; leaf matchers need it to read characters.
	Source *source.Source

	// TryEnabled mirrors engine Options.Try: Try.Execute raises a
	// ConfigError when this is false: using Try outside a Try-enabled
	// parse is a grammar/engine configuration mistake.
	TryEnabled bool
}

// Kind tags which of the three Message shapes is populated.
type Kind int

const (
	KindExecute Kind = iota
	KindSuccess
	KindFailure
)

// Message is the inter-matcher dispatch carrier: exactly one of the
// three constructors below should be used to build one.
type Message struct {
	Kind Kind

	// Execute fields.
	Parent      Matcher
	ParentState State
	Child       Matcher
	ChildState  State

	// Shared by Execute (target cursor) and Success (result cursor).
	Iter source.Iter

	// Success field.
	Result Value
}

// Exec builds an Execute message delegating to child at iter.
func Exec(parent Matcher, parentState State, child Matcher, childState State, iter source.Iter) Message {
	return Message{
		Kind:        KindExecute,
		Parent:      parent,
		ParentState: parentState,
		Child:       child,
		ChildState:  childState,
		Iter:        iter,
	}
}

// Ok builds a Success message: the matcher is now in finalState, having
// produced result and advanced to iter.
func Ok(finalState State, iter source.Iter, result Value) Message {
	return Message{Kind: KindSuccess, ChildState: finalState, Iter: iter, Result: result}
}

// Fail builds the singleton failure message; distinct instances compare
// equal in every field that matters (Kind), so building it fresh each
// time is fine and avoids a shared mutable global.
func Fail() Message {
	return Message{Kind: KindFailure}
}
