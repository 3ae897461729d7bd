// Package matcher defines the contract every grammar node satisfies —
// the Execute/Success/Failure handlers dispatched by the trampoline in
// package engine — plus the message and value types they exchange, and
// two matcher kinds every grammar can rely on regardless of which
// combinator library built it: Try, a backtracking scope around a
// child matcher, and ErrorMatcher, a leaf that always aborts the parse
// with a ParserError carrying a diagnostic message.
package matcher

// State is a matcher's per-attempt progress record. Concrete matchers
// define their own state types; all of them must be comparable so a
// State can serve as (part of) the engine's cache key. The two canonical
// sentinels are Clean and Dirty.
type State any

type cleanState struct{}
type dirtyState struct{}

// Clean marks a matcher that has never been executed at this cursor.
var Clean State = cleanState{}

// Dirty marks a matcher that is exhausted: re-entering it must fail.
var Dirty State = dirtyState{}

// IsClean reports whether s is the Clean sentinel.
func IsClean(s State) bool {
	_, ok := s.(cleanState)
	return ok
}

// IsDirty reports whether s is the Dirty sentinel.
func IsDirty(s State) bool {
	_, ok := s.(dirtyState)
	return ok
}
