/*
Package topdown implements membership tests for context-free grammars, using
a deterministic predictive parser as well as an exhaustive backtracking
recognizer.

A Parser is created from an arbitrary grammar. The grammar will be normalized
for top-down parsing (see ll.Normalize) and analysed, and a prediction table
is computed from the FIRST and FOLLOW sets of the normalized grammar.

	b := ll.NewGrammarBuilder("Expressions")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").T("n").End()
	g, _ := b.Grammar()
	p, err := topdown.NewParser(g)
	ok := p.Accepts([]string{"n", "+", "n"})

Input is a sequence of terminal names. Clients may instead provide a
scanner.Tokenizer, in which case the lexemes of the tokens are used.

The predictive parser is fast, but will give wrong answers for grammars which
are not LL(1), even after normalization. Parser.Conflicts reports the
offending table entries. The exhaustive recognizer (Recognize, and
Parser.AcceptsExhaustive) decides membership for every grammar, at the price
of exponential worst-case run time. It is limited by a step budget, which may
be configured with the global configuration key "oracle-step-budget".

Configuration flag "panic-on-ll-conflict" lets NewParser fail for grammars
which result in a prediction table with conflicts.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package topdown

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llnorm.topdown'.
func tracer() tracing.Trace {
	return tracing.Select("llnorm.topdown")
}
