package matcher

import (
	"github.com/ava12/pex/perr"
	"github.com/ava12/pex/source"
)

// ErrorMatcher unconditionally raises a ParserError when executed. A
// grammar places one where it has decided the input is unrecoverable
// typically placed as the tail of a Seq, after a distinguishing
// prefix has already matched, to turn "expected X" into a hard abort
// instead of a plain Failure that would let a sibling alternative run.
type ErrorMatcher struct {
	id  int
	msg string
}

// NewError builds an ErrorMatcher that aborts with msg.
func NewError(id int, msg string) *ErrorMatcher {
	return &ErrorMatcher{id: id, msg: msg}
}

func (e *ErrorMatcher) ID() int      { return e.id }
func (e *ErrorMatcher) Name() string { return "error(" + e.msg + ")" }

func (e *ErrorMatcher) Execute(cfg *Config, state State, iter source.Iter) (Message, error) {
	return Message{}, perr.NewParserError(e.msg, iter)
}

// Success and Failure are unreachable: ErrorMatcher never delegates to a
// child, so the trampoline never calls them. They exist to satisfy the
// Matcher interface.
func (e *ErrorMatcher) Success(cfg *Config, parentState, childState State, iter source.Iter, result Value) (Message, error) {
	return Message{}, perr.NewConfigError("ErrorMatcher %q received an unexpected Success callback", e.msg)
}

func (e *ErrorMatcher) Failure(cfg *Config, parentState State) (Message, error) {
	return Message{}, perr.NewConfigError("ErrorMatcher %q received an unexpected Failure callback", e.msg)
}
