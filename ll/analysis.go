package ll

import (
	"math"

	"github.com/emirpasic/gods/sets/treeset"
)

// LLAnalysis is an object for grammar analysis (computing FIRST and FOLLOW
// sets and nullable symbols). Create one with Analysis(g).
//
// FIRST sets contain terminals and possibly Epsilon, FOLLOW sets contain
// terminals and possibly EOF.
type LLAnalysis struct {
	g        *Grammar
	nullable SymbolSet
	first    map[Symbol]*treeset.Set
	follow   map[Symbol]*treeset.Set
	minYield map[Symbol]int
}

// Infinity is the minimal yield of unproductive non-terminals.
const Infinity = math.MaxInt32

// Analysis creates an analyser for a grammar and computes all its sets.
func Analysis(g *Grammar) *LLAnalysis {
	ga := &LLAnalysis{
		g:        g,
		nullable: g.NullableSymbols(),
		first:    make(map[Symbol]*treeset.Set, len(g.nonterminals)),
		follow:   make(map[Symbol]*treeset.Set, len(g.nonterminals)),
	}
	for _, A := range g.nonterminals {
		ga.first[A] = treeset.NewWith(SymbolComparator)
		ga.follow[A] = treeset.NewWith(SymbolComparator)
	}
	ga.computeFirst()
	ga.computeFollow()
	ga.computeMinYield()
	return ga
}

// Grammar returns the grammar this analyser operates on.
func (ga *LLAnalysis) Grammar() *Grammar {
	return ga.g
}

// IsNullable is true if A derives the empty word.
func (ga *LLAnalysis) IsNullable(A Symbol) bool {
	return ga.nullable.Contains(A)
}

// First returns FIRST(A) for a non-terminal A, ordered by SymbolComparator.
func (ga *LLAnalysis) First(A Symbol) []Symbol {
	return symbols(ga.first[A])
}

// Follow returns FOLLOW(A) for a non-terminal A, ordered by SymbolComparator.
func (ga *LLAnalysis) Follow(A Symbol) []Symbol {
	return symbols(ga.follow[A])
}

// FirstOfSequence returns FIRST of a sequence of symbols. FIRST of the empty
// sequence is {ε}.
func (ga *LLAnalysis) FirstOfSequence(seq []Symbol) []Symbol {
	return symbols(ga.firstOf(seq))
}

// MinYield returns the length of the shortest terminal string derivable from
// A. It is 1 for terminals and Infinity for unproductive non-terminals.
func (ga *LLAnalysis) MinYield(A Symbol) int {
	if A.IsTerminal() {
		return 1
	}
	if n, ok := ga.minYield[A]; ok {
		return n
	}
	return Infinity
}

// firstOf computes FIRST of a sequence from the current FIRST sets of
// non-terminals.
func (ga *LLAnalysis) firstOf(seq []Symbol) *treeset.Set {
	F := treeset.NewWith(SymbolComparator)
	for _, A := range seq {
		if A.IsTerminal() {
			F.Add(A)
			return F
		}
		vanishes := false
		if fa, ok := ga.first[A]; ok {
			for _, x := range fa.Values() {
				if x.(Symbol) == Epsilon {
					vanishes = true
				} else {
					F.Add(x)
				}
			}
		}
		if !vanishes {
			return F
		}
	}
	F.Add(Epsilon)
	return F
}

func (ga *LLAnalysis) computeFirst() {
	for changed := true; changed; {
		changed = false
		for _, r := range ga.g.rules {
			F := ga.first[r.LHS()]
			size := F.Size()
			F.Add(ga.firstOf(r.rhs).Values()...)
			changed = changed || F.Size() != size
		}
	}
	tracer().Debugf("FIRST sets complete")
}

func (ga *LLAnalysis) computeFollow() {
	ga.follow[ga.g.start].Add(EOF)
	for changed := true; changed; {
		changed = false
		for _, r := range ga.g.rules {
			for i, X := range r.rhs {
				if !X.IsNonTerminal() {
					continue
				}
				F := ga.follow[X]
				size := F.Size()
				beta := r.rhs[i+1:]
				if len(beta) == 0 {
					F.Add(ga.follow[r.LHS()].Values()...)
				} else {
					fb := ga.firstOf(beta)
					if fb.Contains(Epsilon) {
						fb.Remove(Epsilon)
						F.Add(ga.follow[r.LHS()].Values()...)
					}
					F.Add(fb.Values()...)
				}
				changed = changed || F.Size() != size
			}
		}
	}
	tracer().Debugf("FOLLOW sets complete")
}

// computeMinYield is a Bellman-Ford style fixpoint over the rules.
func (ga *LLAnalysis) computeMinYield() {
	ga.minYield = make(map[Symbol]int, len(ga.g.nonterminals))
	for changed := true; changed; {
		changed = false
		for _, r := range ga.g.rules {
			n := ga.SequenceYield(r.rhs)
			if n < ga.MinYield(r.LHS()) {
				ga.minYield[r.LHS()] = n
				changed = true
			}
		}
	}
}

// SequenceYield returns the length of the shortest terminal string derivable
// from a sequence of symbols, capped at Infinity.
func (ga *LLAnalysis) SequenceYield(seq []Symbol) int {
	n := 0
	for _, A := range seq {
		m := ga.MinYield(A)
		if m >= Infinity-n {
			return Infinity
		}
		n += m
	}
	return n
}

func symbols(set *treeset.Set) []Symbol {
	if set == nil {
		return nil
	}
	syms := make([]Symbol, 0, set.Size())
	for _, x := range set.Values() {
		syms = append(syms, x.(Symbol))
	}
	return syms
}
