/*
Package trepl/main provides an interactive command line tool (T.REPL) for
membership queries against a context-free grammar. T.REPL normalizes one of
its built-in grammars for top-down parsing and then checks every line of
input with both the predictive parser and the exhaustive recognizer of
package topdown.

Lines starting with a colon are commands:

    :grammar            print the normalized grammar as a tree
    :raw                print the grammar before normalization
    :first  <symbol>    print FIRST(symbol)
    :follow <symbol>    print FOLLOW(symbol)
    :conflicts          list conflicts of the prediction table
    :lexer go|terminals select the tokenizer
    :quit               leave T.REPL

Symbols are given by their printed names, e.g. E' for a helper symbol.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llnorm.trepl'
func tracer() tracing.Trace {
	return tracing.Select("llnorm.trepl")
}
