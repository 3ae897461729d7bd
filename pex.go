/*
Package pex is a message-passing parser-combinator engine: a trampoline
that drives a tree of Matcher values against a Source without recursing
on the host call stack, so a grammar's nesting depth is never bounded by
Go's own stack.

Consists of subpackages:
  - cmd/pexdebug: console utility that runs the reference combinator
    grammar against a file or stdin and prints its result, optionally
    with a debug trace;
  - combinator: a reference matcher library (Literal, Seq, Alt, Repeat,
    Transform, Ref) built to exercise the engine, not a required part
    of it — matchers are an open extension point (see matcher.Matcher);
  - engine: the Execute/Success/Failure trampoline and its cache;
  - matcher: the Matcher protocol, message types, and the Try/Error
    matchers every grammar can reuse regardless of which combinator
    library built it;
  - perr: the error types raised and caught while parsing;
  - source: the discarding, line-buffered cursor a grammar parses over.

Typical usage is:

1. Build a grammar as a tree of matcher.Matcher values, e.g. using the
combinator subpackage.

2. Open a Source over the input with FromString or New.

3. Call Parse (or ParseString) with an Options value selecting which of
the four dispatch modes to run in, and read back the parsed Value or a
diagnostic error.
*/
package pex

import (
	"io"

	"github.com/ava12/pex/debug"
	"github.com/ava12/pex/engine"
	"github.com/ava12/pex/matcher"
	"github.com/ava12/pex/source"
)

// Options selects the engine's dispatch mode and, optionally, where to
// send a debug trace.
type Options struct {
	// Cache enables memoizing Execute/Success/Failure results by
	// (matcher identity, state, cursor), trading memory for avoiding
	// repeated work on shared subgrammars.
	Cache bool

	// Try enables the matcher.Try backtracking scope. A grammar that
	// never uses matcher.Try can leave this false; matcher.Try itself
	// reports a *perr.ConfigError if invoked while Try is disabled.
	Try bool

	// Debug, if true, emits one line per dispatch step to Trace (or to
	// io.Discard if Trace is nil).
	Debug bool

	// Trace receives the formatted debug lines when Debug is set. See
	// package debug for the line format.
	Trace io.Writer
}

// Result is what a successful parse returns: the grammar's top-level
// Value, the cursor it stopped at, and the trace ID any debug lines were
// correlated with, so a caller collecting Trace output separately can
// match it back up.
type Result struct {
	Value   matcher.Value
	Stopped source.Iter
	TraceID string
}

// Parse runs grammar against src under opts.
func Parse(grammar matcher.Matcher, src *source.Source, opts Options) (Result, error) {
	traceID := engine.NewTraceID()

	engOpts := engine.Options{
		Cache: opts.Cache,
		Try:   opts.Try,
		Debug: opts.Debug,
	}
	if opts.Debug && opts.Trace != nil {
		engOpts.Trace = debug.New(opts.Trace, traceID, src)
	}

	value, stopped, err := engine.Run(grammar, src, engOpts, traceID)
	if err != nil {
		return Result{TraceID: traceID}, err
	}
	return Result{Value: value, Stopped: stopped, TraceID: traceID}, nil
}

// ParseString is a convenience wrapper for parsing an in-memory string;
// name is used only for diagnostics (see perr.Error.SourceName).
func ParseString(grammar matcher.Matcher, name, content string, opts Options) (Result, error) {
	return Parse(grammar, source.FromString(name, content), opts)
}

// ParseOne is shorthand for the first successful parse of grammar
// against src: it returns that result, or, if none succeeds, the
// parser's farthest failure.
//
// If grammar raises a *perr.ParserError partway through, ParseOne aborts
// immediately with that error even if some untried alternative earlier
// in the grammar might have consumed the rest of the input successfully:
// once a matcher declares the input malformed, that is authoritative.
func ParseOne(grammar matcher.Matcher, src *source.Source, opts Options) (Result, error) {
	return Parse(grammar, src, opts)
}
