// Package debug implements a stable trace-line format for the debug
// overlay: one line per dispatch step, giving the cursor, call-stack
// depth, and what transitioned.
package debug

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ava12/pex/matcher"
	"github.com/ava12/pex/source"
)

const previewWidth = 12

// Tracer writes formatted trace lines to an io.Writer. It implements
// engine.Tracer structurally (no import of engine, to keep debug below
// engine in the dependency order).
type Tracer struct {
	w        io.Writer
	traceID  string
	src      *source.Source
	Fallible error
}

// New builds a Tracer writing to w, correlating every line with
// traceID (see engine.NewTraceID).
func New(w io.Writer, traceID string, src *source.Source) *Tracer {
	return &Tracer{w: w, traceID: traceID, src: src}
}

func (t *Tracer) write(line string) {
	if t.Fallible != nil {
		return
	}
	_, err := io.WriteString(t.w, line+"\n")
	if err != nil {
		t.Fallible = err
	}
}

func (t *Tracer) preview(i source.Iter) string {
	s, err := t.src.Slice(source.Range{Start: i, Stop: t.src.End()})
	if err != nil {
		return strings.Repeat(" ", previewWidth)
	}
	s = escape(s)
	if utf8.RuneCountInString(s) > previewWidth {
		r := []rune(s)
		s = string(r[:previewWidth])
	}
	return fmt.Sprintf("%-*s", previewWidth, s)
}

func escape(s string) string {
	replacer := strings.NewReplacer("\n", "\\n", "\t", "\\t", "\r", "\\r")
	return replacer.Replace(s)
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// Execute emits an "<line>,<col>:<preview> <depth> <indent><parent>-><child> [<traceID>]" line.
func (t *Tracer) Execute(depth int, iter source.Iter, parentName, childName string) {
	t.write(fmt.Sprintf("%d,%d:%s %d %s%s->%s [%s]",
		iter.Line(), iter.Col(), t.preview(iter), depth, indent(depth), parentName, childName, t.traceID))
}

// Success emits an "...<parent><-<short(result)> [<traceID>]" line.
func (t *Tracer) Success(depth int, iter source.Iter, parentName string, result matcher.Value) {
	t.write(fmt.Sprintf("%d,%d:%s %d %s%s<-%s [%s]",
		iter.Line(), iter.Col(), t.preview(iter), depth, indent(depth), parentName, shortValue(result), t.traceID))
}

// Failure emits an "...<parent><-!!! [<traceID>]" line.
func (t *Tracer) Failure(depth int, iter source.Iter, parentName string) {
	t.write(fmt.Sprintf("%d,%d:%s %d %s%s<-!!! [%s]",
		iter.Line(), iter.Col(), t.preview(iter), depth, indent(depth), parentName, t.traceID))
}

func shortValue(v matcher.Value) string {
	if !v.Present() {
		return "-"
	}
	parts := make([]string, 0, len(v))
	for _, item := range v {
		parts = append(parts, fmt.Sprintf("%v", item))
	}
	s := strings.Join(parts, ",")
	if len(s) > previewWidth {
		s = s[:previewWidth]
	}
	return s
}
