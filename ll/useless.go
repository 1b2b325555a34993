package ll

import (
	"github.com/emirpasic/gods/lists/arraylist"
)

// RemoveUselessSymbols returns a grammar restricted to non-terminals which are
// both productive (derive some terminal string) and reachable from the start
// symbol. Productivity is computed first; reachability is computed on the
// grammar already pruned of unproductive symbols.
//
// The start symbol is kept in any case. If it is unproductive, the resulting
// grammar has no rules and describes the empty language.
func (g *Grammar) RemoveUselessSymbols() *Grammar {
	productive := g.productiveSymbols()
	var rules []*Rule
	for _, r := range g.rules {
		if productive.Contains(r.LHS()) && productive.ContainsAll(r.nonTerminals()) {
			rules = append(rules, r)
		}
	}
	pruned := assemble(g.Name, g.terminals, g.nonterminals, rules, g.start)
	reachable := pruned.reachableSymbols()
	rules = rules[:0:0]
	for _, r := range pruned.rules {
		if reachable.Contains(r.LHS()) {
			rules = append(rules, r)
		}
	}
	var nonterms []Symbol
	for _, A := range g.nonterminals {
		if A == g.start || productive.Contains(A) && reachable.Contains(A) {
			nonterms = append(nonterms, A)
		}
	}
	tracer().Debugf("%d of %d non-terminals are productive and reachable", len(nonterms), len(g.nonterminals))
	return derived(g, nonterms, rules, g.start)
}

// productiveSymbols computes the set of non-terminals deriving a terminal
// string.
func (g *Grammar) productiveSymbols() SymbolSet {
	productive := SymbolSet{}
	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			if productive.Contains(r.LHS()) {
				continue
			}
			if productive.ContainsAll(r.nonTerminals()) {
				productive = productive.Add(r.LHS())
				changed = true
			}
		}
	}
	return productive
}

// reachableSymbols computes the set of non-terminals reachable from the
// start symbol.
func (g *Grammar) reachableSymbols() SymbolSet {
	reachable := SymbolSet{}.Add(g.start)
	worklist := arraylist.New()
	worklist.Add(g.start)
	for !worklist.Empty() {
		x, _ := worklist.Get(worklist.Size() - 1)
		worklist.Remove(worklist.Size() - 1)
		for _, r := range g.index[x.(Symbol)] {
			for _, A := range r.nonTerminals() {
				if !reachable.Contains(A) {
					reachable = reachable.Add(A)
					worklist.Add(A)
				}
			}
		}
	}
	return reachable
}

// nonTerminals returns the non-terminals of the RHS of r.
func (r *Rule) nonTerminals() []Symbol {
	var N []Symbol
	for _, A := range r.rhs {
		if A.IsNonTerminal() {
			N = append(N, A)
		}
	}
	return N
}
