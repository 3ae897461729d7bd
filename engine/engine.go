// Package engine implements the trampoline driver loop: it walks
// Execute/Success/Failure messages against a stack of suspended parent
// frames, in cached and uncached variants sharing a single loop
// parameterized by Options.Cache rather than being forked into two
// near-duplicate functions.
package engine

import (
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/ava12/pex/matcher"
	"github.com/ava12/pex/perr"
	"github.com/ava12/pex/source"
)

// Options selects one of the four dispatch modes: cached or not,
// try-enabled or not.
type Options struct {
	Cache bool
	Try   bool
	Debug bool

	// Trace receives one line per dispatch step when Debug is set. If
	// nil while Debug is true, tracing is silently skipped.
	Trace Tracer
}

// Tracer receives formatted debug lines; see package debug for the
// stable line format package debug produces.
type Tracer interface {
	Execute(depth int, iter source.Iter, parentName, childName string)
	Success(depth int, iter source.Iter, parentName string, result matcher.Value)
	Failure(depth int, iter source.Iter, parentName string)
}

// Failure is returned by Run when the grammar could not match the
// input. It carries the farthest cursor any dispatch reached, a cheap
// heuristic for user-facing diagnostics.
type Failure struct {
	Farthest source.Iter
}

func (f *Failure) Error() string {
	return "parse failed"
}

type cacheKey struct {
	id    int
	state matcher.State
	iter  source.Iter
}

type frame struct {
	parent      matcher.Matcher
	parentState matcher.State
	key         cacheKey
	cached      bool
}

// Run drives grammar against src until the top-level frame resolves.
// traceID correlates every debug line emitted during this call (see
// package pex, which stamps it with a fresh UUID per parse); Run itself
// does not generate the ID; callers that don't care may pass an empty
// string.
func Run(grammar matcher.Matcher, src *source.Source, opts Options, traceID string) (matcher.Value, source.Iter, error) {
	cfg := &matcher.Config{Source: src, TryEnabled: opts.Try}

	var cache map[cacheKey]matcher.Message
	if opts.Cache {
		cache = make(map[cacheKey]matcher.Message)
	}

	var stack []frame
	var farthest source.Iter

	track := func(i source.Iter) {
		if farthest.Less(i) {
			farthest = i
		}
	}

	cur := matcher.Exec(nil, nil, grammar, matcher.Clean, src.Start())

	for {
		switch cur.Kind {
		case matcher.KindExecute:
			track(cur.Iter)
			f := frame{parent: cur.Parent, parentState: cur.ParentState}

			var (
				next matcher.Message
				err  error
				hit  bool
			)

			if opts.Cache {
				f.key = cacheKey{cur.Child.ID(), cur.ChildState, cur.Iter}
				f.cached = true
				if m, ok := cache[f.key]; ok {
					next, hit = m, true
				}
			}

			stack = append(stack, f)

			if opts.Debug && opts.Trace != nil {
				opts.Trace.Execute(len(stack), cur.Iter, matcherName(cur.Parent), cur.Child.Name())
			}

			if !hit {
				next, err = cur.Child.Execute(cfg, cur.ChildState, cur.Iter)
				if err != nil {
					if perr.IsExpired(err) {
						next = matcher.Fail()
					} else {
						return nil, source.Iter{}, abort(err, cur.Child.Name())
					}
				}
			}

			cur = next

		case matcher.KindSuccess:
			track(cur.Iter)
			n := len(stack) - 1
			f := stack[n]
			stack = stack[:n]

			src.Expire(cur.Iter)

			if opts.Cache && f.cached {
				cache[f.key] = cur
			}

			if f.parent == nil {
				return cur.Result, cur.Iter, nil
			}

			if opts.Debug && opts.Trace != nil {
				opts.Trace.Success(len(stack)+1, cur.Iter, f.parent.Name(), cur.Result)
			}

			next, err := f.parent.Success(cfg, f.parentState, cur.ChildState, cur.Iter, cur.Result)
			if err != nil {
				if perr.IsExpired(err) {
					next = matcher.Fail()
				} else {
					return nil, source.Iter{}, abort(err, f.parent.Name())
				}
			}
			cur = next

		case matcher.KindFailure:
			n := len(stack) - 1
			f := stack[n]
			stack = stack[:n]

			if opts.Cache && f.cached {
				cache[f.key] = matcher.Fail()
			}

			if f.parent == nil {
				return nil, source.Iter{}, &Failure{Farthest: farthest}
			}

			if opts.Debug && opts.Trace != nil {
				opts.Trace.Failure(len(stack)+1, farthest, f.parent.Name())
			}

			next, err := f.parent.Failure(cfg, f.parentState)
			if err != nil {
				if perr.IsExpired(err) {
					next = matcher.Fail()
				} else {
					return nil, source.Iter{}, abort(err, f.parent.Name())
				}
			}
			cur = next
		}
	}
}

func matcherName(m matcher.Matcher) string {
	if m == nil {
		return "-root-"
	}
	return m.Name()
}

// abort wraps a propagating ParserError/ConfigError with the name of
// the matcher that raised it. The wrapped error's dynamic type is
// preserved: errors.As still recovers the *perr.ParserError or
// *perr.ConfigError.
func abort(err error, matcherName string) error {
	return pkgerrors.Wrapf(err, "in matcher %q", matcherName)
}

// NewTraceID returns a fresh v4 UUID for correlating one parse's debug
// trace lines.
func NewTraceID() string {
	return uuid.NewString()
}
