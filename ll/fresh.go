package ll

// freshSymbols hands out synthesized non-terminals which do not clash with
// any non-terminal of a grammar, nor with one handed out before.
// Every transformation owns its own instance, so transformations remain pure
// functions of their input grammar.
type freshSymbols struct {
	taken SymbolSet
}

func newFreshSymbols(g *Grammar) *freshSymbols {
	f := &freshSymbols{taken: SymbolSet{}}
	for _, A := range g.nonterminals {
		f.taken = f.taken.Add(A)
	}
	return f
}

// derive returns a new non-terminal with lineage A + step. The serial of the
// step is the lowest one not yet in use.
func (f *freshSymbols) derive(A Symbol, step Step) Symbol {
	for serial := 0; ; serial++ {
		B := A.Derive(step, serial)
		if !f.taken.Contains(B) {
			f.taken = f.taken.Add(B)
			tracer().Debugf("new symbol %v from %v", B, A)
			return B
		}
	}
}
