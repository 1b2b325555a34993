package ll

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// --- Detection -------------------------------------------------------------

// HasLeftRecursion checks if a left-recursive non-terminal is reachable from
// the start symbol.
//
// For every non-terminal A we collect the non-terminals which may occur as the
// leftmost symbol of a derivation from A. A nullable non-terminal may vanish
// and uncover its right neighbour, a terminal never vanishes. Left recursion
// is a cycle in this graph.
func (g *Grammar) HasLeftRecursion() bool {
	edges := g.leftmostGraph(g.NullableSymbols())
	return findCycle(g.start, edges)
}

// leftmostGraph returns, for every non-terminal, the non-terminals which may
// appear leftmost in one of its rules. Edge lists are free of duplicates and in
// rule order.
func (g *Grammar) leftmostGraph(nullable SymbolSet) map[Symbol][]Symbol {
	edges := make(map[Symbol][]Symbol, len(g.nonterminals))
	for _, A := range g.nonterminals {
		var seen SymbolSet
		for _, r := range g.index[A] {
			for _, B := range r.rhs {
				if B.IsTerminal() {
					break
				}
				if !seen.Contains(B) {
					seen = seen.Add(B)
					edges[A] = append(edges[A], B)
				}
				if !nullable.Contains(B) {
					break
				}
			}
		}
	}
	return edges
}

type dfsMark uint8

const (
	unvisited dfsMark = iota
	inProgress
	resolved // fully explored, no cycle below
)

type dfsFrame struct {
	node Symbol
	next int // next edge to explore
}

// findCycle does a depth-first search from start, detecting back-edges.
// Resolved nodes are never explored twice, which keeps the search linear in
// the number of edges.
func findCycle(start Symbol, edges map[Symbol][]Symbol) bool {
	marks := map[Symbol]dfsMark{start: inProgress}
	stack := arraystack.New()
	stack.Push(&dfsFrame{node: start})
	for !stack.Empty() {
		top, _ := stack.Peek()
		frame := top.(*dfsFrame)
		if frame.next == len(edges[frame.node]) {
			marks[frame.node] = resolved
			stack.Pop()
			continue
		}
		B := edges[frame.node][frame.next]
		frame.next++
		switch marks[B] {
		case inProgress:
			tracer().Debugf("left recursion: %v -> … -> %v", B, frame.node)
			return true
		case unvisited:
			marks[B] = inProgress
			stack.Push(&dfsFrame{node: B})
		}
	}
	return false
}

// --- Elimination -----------------------------------------------------------

// EliminateLeftRecursion removes left recursion with Paull's algorithm.
//
// Non-terminals are processed in order A0 = start, A1, … (remaining
// non-terminals in their existing order). For every Ai and every Aj with j<i,
// rules Ai -> Aj γ are replaced by Ai -> δ γ for every rule Aj -> δ.
// Afterwards direct left recursion of Ai is removed:
//
//    Ai -> Ai α | β    ⇒    Ai -> β H,   H -> α H | ε
//
// with H a new non-terminal. Rules Ai -> Ai (empty α) are dropped.
//
// The result is free of left recursion if g is free of useless symbols and
// ε-productions, except for S -> ε for a start symbol S not occuring on a
// right hand side (see EliminateEpsilonRules).
func (g *Grammar) EliminateLeftRecursion() *Grammar {
	fresh := newFreshSymbols(g)
	order := make([]Symbol, 0, len(g.nonterminals))
	order = append(order, g.start)
	for _, A := range g.nonterminals {
		if A != g.start {
			order = append(order, A)
		}
	}
	alts := g.rhsIndex()
	helpers := make(map[Symbol]Symbol)
	for i, Ai := range order {
		for j := 0; j < i; j++ {
			alts[Ai] = substituteLeading(alts[Ai], order[j], alts[order[j]])
		}
		var H Symbol
		var hrules [][]Symbol
		alts[Ai], H, hrules = removeDirectRecursion(Ai, alts[Ai], fresh)
		if H.Kind() != NoSymbol {
			helpers[Ai] = H
			alts[H] = hrules
		}
	}
	var nonterms []Symbol
	var rules []*Rule
	for _, A := range g.nonterminals {
		nonterms = append(nonterms, A)
		if H, ok := helpers[A]; ok {
			nonterms = append(nonterms, H)
		}
	}
	for _, A := range nonterms {
		for _, rhs := range alts[A] {
			rules = append(rules, &Rule{lhs: A, rhs: rhs})
		}
	}
	return derived(g, nonterms, rules, g.start)
}

// substituteLeading replaces every RHS starting with B by the alternatives of B,
// each followed by the remainder of the RHS.
func substituteLeading(rhss [][]Symbol, B Symbol, balts [][]Symbol) [][]Symbol {
	var result [][]Symbol
	for _, rhs := range rhss {
		if len(rhs) == 0 || rhs[0] != B {
			result = append(result, rhs)
			continue
		}
		for _, delta := range balts {
			alt := make([]Symbol, 0, len(delta)+len(rhs)-1)
			alt = append(append(alt, delta...), rhs[1:]...)
			result = append(result, alt)
		}
	}
	return dedupRHS(result)
}

// removeDirectRecursion splits the alternatives of A into A -> A α and A -> β.
// If there is at least one non-empty α, it returns the new alternatives for A
// together with a helper non-terminal H and its alternatives. Otherwise H is
// the zero symbol.
func removeDirectRecursion(A Symbol, rhss [][]Symbol, fresh *freshSymbols) ([][]Symbol, Symbol, [][]Symbol) {
	var alphas, betas [][]Symbol
	for _, rhs := range rhss {
		if len(rhs) > 0 && rhs[0] == A {
			if len(rhs) > 1 {
				alphas = append(alphas, rhs[1:])
			}
			continue // A -> A is dropped
		}
		betas = append(betas, rhs)
	}
	if len(alphas) == 0 {
		return betas, Symbol{}, nil
	}
	H := fresh.derive(A, RecursionStep)
	tracer().Debugf("removing direct left recursion of %v with %v", A, H)
	Arules := make([][]Symbol, 0, len(betas))
	for _, beta := range betas {
		Arules = append(Arules, append(append([]Symbol(nil), beta...), H))
	}
	Hrules := make([][]Symbol, 0, len(alphas)+1)
	for _, alpha := range alphas {
		Hrules = append(Hrules, append(append([]Symbol(nil), alpha...), H))
	}
	Hrules = append(Hrules, []Symbol{}) // H -> ε
	return Arules, H, Hrules
}

func dedupRHS(rhss [][]Symbol) [][]Symbol {
	seen := make(map[string]bool, len(rhss))
	result := rhss[:0:0]
	for _, rhs := range rhss {
		k := seqKey(Symbol{}, rhs)
		if !seen[k] {
			seen[k] = true
			result = append(result, rhs)
		}
	}
	return result
}
