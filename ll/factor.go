package ll

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Factorize left-factors a grammar. Rules of a non-terminal A sharing their
// first symbol X
//
//    A -> X α1 | X α2 | …
//
// are replaced by
//
//    A -> X A',   A' -> α1 | α2 | …
//
// with A' a new non-terminal (αi may be empty). New non-terminals are
// factored as well, until no non-terminal has two rules with an equal first
// symbol. This terminates, as the alternatives of every new non-terminal are
// strictly shorter than the rules they stem from.
func (g *Grammar) Factorize() *Grammar {
	fresh := newFreshSymbols(g)
	alts := g.rhsIndex()
	continuations := make(map[Symbol][]Symbol) // A -> new non-terminals factored out of A
	worklist := arraystack.New()
	for i := len(g.nonterminals) - 1; i >= 0; i-- { // pop in declaration order
		worklist.Push(g.nonterminals[i])
	}
	for !worklist.Empty() {
		x, _ := worklist.Pop()
		A := x.(Symbol)
		var factored [][]Symbol
		for _, group := range groupByFirstSymbol(alts[A]) {
			if len(group) == 1 {
				factored = append(factored, group[0])
				continue
			}
			X := group[0][0]
			A1 := fresh.derive(A, FactorStep)
			tracer().Debugf("factoring %v out of %d rules of %v, continuing with %v", X, len(group), A, A1)
			factored = append(factored, []Symbol{X, A1})
			for _, rhs := range group {
				alts[A1] = append(alts[A1], rhs[1:])
			}
			continuations[A] = append(continuations[A], A1)
			worklist.Push(A1)
		}
		alts[A] = factored
	}
	var nonterms []Symbol
	var rules []*Rule
	var collect func(A Symbol)
	collect = func(A Symbol) { // continuations are listed after their origin
		nonterms = append(nonterms, A)
		for _, A1 := range continuations[A] {
			collect(A1)
		}
	}
	for _, A := range g.nonterminals {
		collect(A)
	}
	for _, A := range nonterms {
		for _, rhs := range alts[A] {
			rules = append(rules, &Rule{lhs: A, rhs: rhs})
		}
	}
	return derived(g, nonterms, rules, g.start)
}

// groupByFirstSymbol partitions alternatives by their first symbol, keeping
// the order of first occurrence. Every empty alternative forms a group of its own.
func groupByFirstSymbol(rhss [][]Symbol) [][][]Symbol {
	var groups [][][]Symbol
	at := make(map[Symbol]int)
	for _, rhs := range rhss {
		if len(rhs) == 0 {
			groups = append(groups, [][]Symbol{rhs})
			continue
		}
		if i, ok := at[rhs[0]]; ok {
			groups[i] = append(groups[i], rhs)
			continue
		}
		at[rhs[0]] = len(groups)
		groups = append(groups, [][]Symbol{rhs})
	}
	return groups
}
