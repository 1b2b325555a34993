/*
Package ll implements context-free grammars and their normalization for
top-down (LL) parsing.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Terminals are
identified by their names, which are matched against input tokens.
Grammars may contain epsilon-productions.

Example:

    b := ll.NewGrammarBuilder("G")
    b.LHS("E").N("T").T("+").N("E").End()   // E  ->  T + E
    b.LHS("E").N("T").End()                 // E  ->  T
    b.LHS("T").T("n").End()                 // T  ->  n
    b.LHS("T").T("(").N("E").T(")").End()   // T  ->  ( E )
    g, err := b.Grammar()

The first left-hand side symbol is the start symbol, unless clients set
one explicitly with b.Start(…). Grammars are validated on construction.

Normalization

Grammars are immutable values. Every transformation returns a new grammar:

    g.RemoveUselessSymbols()    // keep productive and reachable symbols only
    g.EliminateEpsilonRules()   // remove ε-productions (except S' -> ε)
    g.EliminateLeftRecursion()  // Paull's algorithm
    g.Factorize()               // left-factoring

Normalize(g) applies all of them, in exactly this order.
Transformations synthesize new non-terminals. A synthesized non-terminal
carries its lineage (the non-terminal it stems from and the derivation steps
which created it). Symbols are compared by lineage, never by their printed
name.

Static Grammar Analysis

After the grammar is normalized it is subjected to an LLAnalysis object,
which computes nullable symbols, FIRST and FOLLOW sets.

    ga := ll.Analysis(ll.Normalize(g))
    for _, A := range ga.Grammar().NonTerminals() {
        fmt.Printf("FIRST(%s) = %v", A, ga.First(A))
    }

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ll

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llnorm.ll'.
func tracer() tracing.Trace {
	return tracing.Select("llnorm.ll")
}
