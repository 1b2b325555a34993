package ll

// NullableSymbols returns the set of non-terminals which derive the empty
// word ("disappearing" non-terminals).
func (g *Grammar) NullableSymbols() SymbolSet {
	nullable := SymbolSet{}
	for changed := true; changed; {
		changed = false
		for _, r := range g.rules {
			if nullable.Contains(r.LHS()) {
				continue
			}
			if r.vanishes(nullable) {
				nullable = nullable.Add(r.LHS())
				changed = true
			}
		}
	}
	return nullable
}

// vanishes is true if every symbol of the RHS is contained in nullable.
// It is vacuously true for ε-productions.
func (r *Rule) vanishes(nullable SymbolSet) bool {
	for _, A := range r.rhs {
		if A.IsTerminal() || !nullable.Contains(A) {
			return false
		}
	}
	return true
}

// --- ε-elimination ---------------------------------------------------------

// EliminateEpsilonRules returns a grammar without ε-productions, describing
// the same language.
//
// Every rule is replaced by all the variants of keeping or dropping each
// occurrence of a nullable non-terminal. ε-productions and empty variants are
// dropped. If the start symbol S is nullable, a new start symbol S' is
// introduced, with rules
//
//    S' -> ε
//    S' -> S
//
// This is the only ε-production in the resulting grammar. S' is prepended to
// the list of non-terminals.
func (g *Grammar) EliminateEpsilonRules() *Grammar {
	nullable := g.NullableSymbols()
	tracer().Debugf("nullable non-terminals: %d", nullable.Size())
	var rules []*Rule
	start, nonterms := g.start, g.nonterminals
	if nullable.Contains(g.start) {
		start = newFreshSymbols(g).derive(g.start, StartStep)
		nonterms = append([]Symbol{start}, g.nonterminals...)
		rules = append(rules, NewRule(start), NewRule(start, g.start))
	}
	for _, r := range g.rules {
		if r.IsEpsilon() {
			continue
		}
		for _, rhs := range r.withoutNullables(nullable) {
			if len(rhs) > 0 {
				rules = append(rules, &Rule{lhs: r.LHS(), rhs: rhs})
			}
		}
	}
	return derived(g, nonterms, rules, start)
}
