/*
pexdebug is a console utility that runs the reference combinator grammar
(a comma-separated word list) against a file or stdin and prints its
result, optionally alongside a full debug trace.

Usage is

	pexdebug [--cache] [--try] [--debug] [<file>]

With no <file>, input is read from stdin.
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava12/pex"
	"github.com/ava12/pex/combinator"
	"github.com/ava12/pex/matcher"
	"github.com/ava12/pex/source"
)

func main() {
	var (
		useCache bool
		useTry   bool
		useDebug bool
	)

	root := &cobra.Command{
		Use:   "pexdebug [file]",
		Short: "run the reference word-list grammar and print its result",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "<stdin>"
			var r io.Reader = os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer f.Close()
				r = f
				name = args[0]
			}

			src := source.New(name, r)
			grammar := wordList()

			opts := pex.Options{
				Cache: useCache,
				Try:   useTry,
				Debug: useDebug,
				Trace: os.Stderr,
			}

			result, err := pex.ParseOne(grammar, src, opts)
			if err != nil {
				return fmt.Errorf("parse %s: %w", name, err)
			}

			fmt.Printf("words: %v\n", []any(result.Value))
			fmt.Printf("trace id: %s\n", result.TraceID)
			return nil
		},
	}

	root.Flags().BoolVar(&useCache, "cache", false, "memoize dispatch results by matcher, state, and cursor")
	root.Flags().BoolVar(&useTry, "try", false, "enable the Try backtracking scope")
	root.Flags().BoolVar(&useDebug, "debug", false, "print one trace line per dispatch step to stderr")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// wordList builds letter+ (',' letter+)*, joining each word's characters
// into one string and the whole list into a []any of those strings.
func wordList() matcher.Matcher {
	a := combinator.NewArena()

	letter := a.Satisfy("letter", func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	})

	word := a.Repeat(letter, 1, -1).Joined(func(v matcher.Value) matcher.Value {
		s := ""
		for _, c := range v {
			s += c.(string)
		}
		return matcher.One(s)
	})

	comma := a.Literal(",")
	tail := a.Seq(comma, word).Joined(func(v matcher.Value) matcher.Value {
		return matcher.One(v[1])
	})

	list := a.Seq(word, a.Repeat(tail, 0, -1))
	return list
}
