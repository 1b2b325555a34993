package ll

// Normalize prepares a grammar for top-down parsing. It applies, in this order,
//
//    RemoveUselessSymbols
//    EliminateEpsilonRules
//    EliminateLeftRecursion
//    Factorize
//
// The order is relevant: left-factoring expects input free of left recursion
// and ε-productions, and left-recursion removal relies on the non-terminal
// order established after pruning.
//
// The resulting grammar describes the same language as g.
func Normalize(g *Grammar) *Grammar {
	tracer().Infof("normalizing grammar %q with %d rules", g.Name, g.Size())
	h := g.RemoveUselessSymbols()
	tracer().Debugf("after removal of useless symbols: %d rules", h.Size())
	h = h.EliminateEpsilonRules()
	tracer().Debugf("after ε-elimination: %d rules", h.Size())
	h = h.EliminateLeftRecursion()
	tracer().Debugf("after left-recursion removal: %d rules", h.Size())
	h = h.Factorize()
	tracer().Infof("normalized grammar %q has %d rules", h.Name, h.Size())
	h.Dump()
	return h
}
