// Package source implements the input abstraction the trampoline reads
// from: a cursor type (Iter), range slicing for regex-style
// look-inside-line matchers, and the expiration operation that lets a
// streaming parse discard consumed input while a Try scope keeps it
// alive for backtracking.
package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/ava12/pex/perr"
)

// Source owns a lazily-fetched line buffer plus the discard frontier
// described here: zero lines have been permanently dropped,
// right is the rightmost expired column on the first retained line, and
// frozen counts nested Try scopes currently suppressing expiration.
type Source struct {
	name   string
	r      *bufio.Reader
	lines  []string
	zero   int
	right  int
	frozen uint32
	eof    bool
}

// New wraps an io.Reader as a Source. name is used in error messages and
// debug traces.
func New(name string, r io.Reader) *Source {
	return &Source{name: name, r: bufio.NewReader(r)}
}

// FromString wraps an in-memory string as a Source.
func FromString(name, content string) *Source {
	return New(name, strings.NewReader(content))
}

// Name returns the source's name.
func (s *Source) Name() string { return s.name }

// Start returns the cursor at the beginning of input.
func (s *Source) Start() Iter { return Iter{1, 1} }

// End returns the floating end-of-input sentinel; comparisons against it
// require unifying it with an actual cursor first (see Slice).
func (s *Source) End() Iter { return Iter{FloatLine, EndCol} }

// Frozen reports the current Try-scope nesting depth.
func (s *Source) Frozen() uint32 { return s.frozen }

// Freeze increments the freeze counter, suspending Expire. Called by the
// Try matcher on entry.
func (s *Source) Freeze() { s.frozen++ }

// Thaw decrements the freeze counter. Called by the Try matcher on exit.
func (s *Source) Thaw() {
	if s.frozen > 0 {
		s.frozen--
	}
}

// ensureLine lazily fetches lines from the underlying reader until line
// l (1-indexed) is present in the buffer, or the stream is exhausted.
func (s *Source) ensureLine(l int) error {
	need := l - s.zero
	if need < 1 {
		return nil
	}

	for len(s.lines) < need {
		if s.eof {
			s.lines = append(s.lines, "")
			continue
		}

		line, err := s.r.ReadString('\n')
		if err == io.EOF {
			s.eof = true
			if line != "" {
				s.lines = append(s.lines, line)
			}
			continue
		} else if err != nil {
			return err
		}

		s.lines = append(s.lines, line)
	}

	return nil
}

// checkExpired implements invariant (a): any cursor at or before the
// discard frontier is expired.
func (s *Source) checkExpired(i Iter) error {
	if i.line <= s.zero || (i.line == s.zero+1 && i.col < s.right) {
		return perr.NewExpired(s.name, i.line, i.col)
	}
	return nil
}

func (s *Source) lineRunes(l int) ([]rune, error) {
	if err := s.ensureLine(l); err != nil {
		return nil, err
	}
	idx := l - s.zero - 1
	if idx < 0 || idx >= len(s.lines) {
		return nil, nil
	}
	return []rune(s.lines[idx]), nil
}

// Done reports whether the referenced line has no more characters and
// the underlying stream is exhausted.
func (s *Source) Done(i Iter) bool {
	if err := s.ensureLine(i.line); err != nil {
		return true
	}
	idx := i.line - s.zero - 1
	if idx < 0 || idx >= len(s.lines) {
		return true
	}
	runes := []rune(s.lines[idx])
	return i.col-1 >= len(runes) && s.eof && idx == len(s.lines)-1
}

// Next reads one character at i, advancing the column within the
// current line. Reading a line's trailing newline (stored as part of the
// line's content) exhausts the line, so the returned cursor wraps to
// (line+1, 1). Returns io.EOF once Done(i) is true.
func (s *Source) Next(i Iter) (rune, Iter, error) {
	if err := s.checkExpired(i); err != nil {
		return 0, Iter{}, err
	}

	runes, err := s.lineRunes(i.line)
	if err != nil {
		return 0, Iter{}, err
	}

	if i.col-1 < len(runes) {
		ch := runes[i.col-1]
		if ch == '\n' {
			return ch, Iter{i.line + 1, 1}, nil
		}
		return ch, Iter{i.line, i.col + 1}, nil
	}

	if s.Done(i) {
		return 0, i, io.EOF
	}

	return s.Next(Iter{i.line + 1, 1})
}

// Slice returns the substring for a range contained within a single
// line, resolving FloatLine/EndCol unification placeholders in Stop.
// Ranges spanning lines are a ConfigError.
func (s *Source) Slice(r Range) (string, error) {
	start, stop := r.Start, r.Stop
	if stop.line == FloatLine {
		stop.line = start.line
	}
	if start.line != stop.line {
		return "", perr.NewConfigError("range spans lines %d and %d", start.line, stop.line)
	}

	if err := s.checkExpired(start); err != nil {
		return "", err
	}

	runes, err := s.lineRunes(start.line)
	if err != nil {
		return "", err
	}

	endCol := stop.col
	if endCol == EndCol {
		endCol = len(runes) + 1
	}
	if start.col < 1 || start.col > endCol || endCol-1 > len(runes) {
		return "", perr.NewConfigError("range [%d,%d) out of bounds on line %d", start.col, endCol, start.line)
	}

	return string(runes[start.col-1 : endCol-1]), nil
}

// Expire advances the discard frontier through i. A no-op while frozen.
// The branch below is intentionally asymmetric: right always advances
// when the frontier moves to a new line, but only advances on the
// current line when the new column is strictly greater, so a smaller,
// stale Expire call can never un-expire content a later call already
// discarded.
func (s *Source) Expire(i Iter) {
	if s.frozen > 0 || i.line == FloatLine {
		return
	}

	if i.line > s.zero+1 {
		drop := i.line - 1 - s.zero
		if drop > 0 && drop <= len(s.lines) {
			s.lines = s.lines[drop:]
		} else if drop > len(s.lines) {
			s.lines = s.lines[:0]
		}
		s.zero = i.line - 1
		s.right = i.col
	} else if i.line == s.zero+1 && i.col > s.right {
		s.right = i.col
	}
}
