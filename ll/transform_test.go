package ll

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func build(t *testing.T, b *GrammarBuilder) *Grammar {
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// firstSymbolsUnique checks that no non-terminal has two rules starting with
// the same symbol.
func firstSymbolsUnique(t *testing.T, g *Grammar) {
	for _, A := range g.NonTerminals() {
		seen := SymbolSet{}
		for _, r := range g.RulesFor(A) {
			if r.IsEpsilon() {
				continue
			}
			assert.False(t, seen.Contains(r.At(0)), "%v has two rules starting with %v", A, r.At(0))
			seen = seen.Add(r.At(0))
		}
	}
}

func TestNullable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Nullable")
	b.LHS("S").N("A").N("B").End()
	b.LHS("A").Epsilon()
	b.LHS("B").Epsilon()
	g := build(t, b)
	nullable := g.NullableSymbols()
	assert.Equal(t, 3, nullable.Size())
	assert.True(t, nullable.ContainsAll([]Symbol{NonTerminal("S"), NonTerminal("A"), NonTerminal("B")}))
	//
	b = NewGrammarBuilder("NotNullable")
	b.LHS("S").N("A").T("x").End()
	b.LHS("A").Epsilon()
	nullable = build(t, b).NullableSymbols()
	assert.False(t, nullable.Contains(NonTerminal("S")))
	assert.True(t, nullable.Contains(NonTerminal("A")))
}

func TestHasLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Indirect")
	b.LHS("S").N("A").N("B").End()
	b.LHS("B").N("S").End()
	b.LHS("A").N("B").End()
	assert.True(t, build(t, b).HasLeftRecursion())
	//
	b = NewGrammarBuilder("Direct")
	b.LHS("A").N("A").End()
	b.LHS("B").Epsilon()
	assert.True(t, build(t, b).HasLeftRecursion())
	//
	b = NewGrammarBuilder("None")
	b.LHS("A").T("chr").T("ast").End()
	assert.False(t, build(t, b).HasLeftRecursion())
	//
	b = NewGrammarBuilder("Hidden") // S -> A S x, A -> ε
	b.LHS("S").N("A").N("S").T("x").End()
	b.LHS("S").T("y").End()
	b.LHS("A").Epsilon()
	assert.True(t, build(t, b).HasLeftRecursion())
	//
	b = NewGrammarBuilder("Unreachable") // left recursion not reachable from S
	b.LHS("S").T("s").End()
	b.LHS("U").N("U").T("u").End()
	assert.False(t, build(t, b).HasLeftRecursion())
	//
	assert.True(t, arithmetic(t).HasLeftRecursion())
}

func TestEpsilonCombinatorics(t *testing.T) {
	A, B, S, x := NonTerminal("A"), NonTerminal("B"), NonTerminal("S"), Terminal("x")
	r := NewRule(S, A, x, B)
	nullable := SymbolSet{}.Add(A).Add(B)
	assert.Equal(t, [][]Symbol{{A, x, B}, {x, B}, {A, x}, {x}}, r.withoutNullables(nullable))
	r = NewRule(S, A, B)
	variants := r.withoutNullables(nullable)
	assert.Len(t, variants, 4)
	assert.Empty(t, variants[3])
}

func TestRemoveUselessSymbols(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Useless")
	b.LHS("S").T("a").End()
	b.LHS("S").N("X").End()
	b.LHS("S").N("A").N("X").End()
	b.LHS("A").T("b").End()
	b.LHS("X").N("X").T("b").End()
	b.LHS("Y").T("c").End()
	g := build(t, b)
	h := g.RemoveUselessSymbols()
	assert.Equal(t, []Symbol{NonTerminal("S")}, h.NonTerminals())
	assert.Equal(t, 1, h.Size())
	assert.Equal(t, "S -> a", h.Rule(0).String())
	assert.Equal(t, g.Terminals(), h.Terminals())
	assert.Equal(t, 6, g.Size()) // g is unchanged
	//
	b = NewGrammarBuilder("Unproductive")
	b.LHS("S").N("S").T("a").End()
	h = build(t, b).RemoveUselessSymbols()
	assert.Equal(t, NonTerminal("S"), h.Start())
	assert.Equal(t, 0, h.Size())
}

func TestEliminateEpsilonRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Optionals")
	b.LHS("S").N("A").N("B").End()
	b.LHS("A").T("a").End()
	b.LHS("A").Epsilon()
	b.LHS("B").T("b").End()
	b.LHS("B").Epsilon()
	g := build(t, b)
	h := g.EliminateEpsilonRules()
	S := NonTerminal("S")
	S1 := S.Derive(StartStep, 0)
	assert.Equal(t, S1, h.Start())
	assert.Equal(t, S1, h.NonTerminals()[0])
	assert.Equal(t, []string{"S' -> ε", "S' -> S"}, ruleStrings(h.RulesFor(S1)))
	assert.Equal(t, []string{"S -> A B", "S -> B", "S -> A"}, ruleStrings(h.RulesFor(S)))
	for _, r := range h.Rules() {
		if r.IsEpsilon() {
			assert.Equal(t, S1, r.LHS())
		}
		for _, A := range r.RHS() {
			assert.NotEqual(t, S1, A)
		}
	}
	//
	b = NewGrammarBuilder("NotNullable")
	b.LHS("S").N("A").T("x").End()
	b.LHS("A").T("a").End()
	b.LHS("A").Epsilon()
	h = build(t, b).EliminateEpsilonRules()
	assert.Equal(t, S, h.Start())
	assert.Equal(t, []string{"S -> A x", "S -> x", "A -> a"}, ruleStrings(h.Rules()))
}

func TestStartSymbolNameIsFresh(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	S := NonTerminal("S")
	taken := S.Derive(StartStep, 0)
	rules := []*Rule{NewRule(S, taken), NewRule(taken)}
	g, err := NewGrammar("Clash", nil, []Symbol{S, taken}, rules, S)
	if err != nil {
		t.Fatal(err)
	}
	h := g.EliminateEpsilonRules()
	assert.Equal(t, S.Derive(StartStep, 1), h.Start())
}

func TestEliminateLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	h := arithmetic(t).EliminateLeftRecursion()
	assert.False(t, h.HasLeftRecursion())
	E, T := NonTerminal("E"), NonTerminal("T")
	E1, T1 := E.Derive(RecursionStep, 0), T.Derive(RecursionStep, 0)
	assert.Equal(t, []Symbol{E, E1, T, T1, NonTerminal("F")}, h.NonTerminals())
	assert.Equal(t, []string{"E -> T E'"}, ruleStrings(h.RulesFor(E)))
	assert.Equal(t, []string{"E' -> + T E'", "E' -> ε"}, ruleStrings(h.RulesFor(E1)))
	assert.Equal(t, []string{"T' -> * F T'", "T' -> ε"}, ruleStrings(h.RulesFor(T1)))
}

func TestEliminateIndirectLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Indirect") // S -> A a | b,  A -> S c | d
	b.LHS("S").N("A").T("a").End()
	b.LHS("S").T("b").End()
	b.LHS("A").N("S").T("c").End()
	b.LHS("A").T("d").End()
	g := build(t, b)
	h := g.EliminateLeftRecursion()
	assert.False(t, h.HasLeftRecursion())
	A := NonTerminal("A")
	assert.Equal(t, []string{"A -> b c A'", "A -> d A'"}, ruleStrings(h.RulesFor(A)))
	assert.Equal(t, []string{"A' -> a c A'", "A' -> ε"}, ruleStrings(h.RulesFor(A.Derive(RecursionStep, 0))))
}

func TestSelfLoopsAreDropped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Loops") // S -> S | a
	b.LHS("S").N("S").End()
	b.LHS("S").T("a").End()
	g := build(t, b)
	h := g.EliminateLeftRecursion()
	assert.Equal(t, []Symbol{NonTerminal("S")}, h.NonTerminals())
	assert.Equal(t, []string{"S -> a"}, ruleStrings(h.Rules()))
}

func TestLeftRecursionRemovalIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Indirect")
	b.LHS("S").N("A").T("a").End()
	b.LHS("S").T("b").End()
	b.LHS("A").N("S").T("c").End()
	b.LHS("A").T("d").End()
	for _, g := range []*Grammar{arithmetic(t), build(t, b)} {
		h := g.RemoveUselessSymbols().EliminateEpsilonRules().EliminateLeftRecursion()
		assert.Equal(t, h.Fingerprint(), h.EliminateLeftRecursion().Fingerprint(), "grammar %q", g.Name)
	}
}

func TestFactorize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Prefixes")
	b.LHS("S").T("a").T("b").T("c").End()
	b.LHS("S").T("a").T("b").T("d").End()
	b.LHS("S").T("a").N("B").End()
	b.LHS("S").T("a").End()
	b.LHS("S").T("f").End()
	b.LHS("B").T("e").End()
	g := build(t, b)
	h := g.Factorize()
	firstSymbolsUnique(t, h)
	S := NonTerminal("S")
	S1 := S.Derive(FactorStep, 0)
	S2 := S1.Derive(FactorStep, 0)
	assert.Equal(t, []Symbol{S, S1, S2, NonTerminal("B")}, h.NonTerminals())
	assert.Equal(t, []string{"S -> a S'", "S -> f"}, ruleStrings(h.RulesFor(S)))
	assert.Equal(t, []string{"S' -> b S''", "S' -> B", "S' -> ε"}, ruleStrings(h.RulesFor(S1)))
	assert.Equal(t, []string{"S'' -> c", "S'' -> d"}, ruleStrings(h.RulesFor(S2)))
	assert.Equal(t, h.Fingerprint(), h.Factorize().Fingerprint())
}

func TestNormalize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Statements")
	b.LHS("Stmt").T("if").N("Expr").T("then").N("Stmt").End()
	b.LHS("Stmt").T("if").N("Expr").T("then").N("Stmt").T("else").N("Stmt").End()
	b.LHS("Stmt").N("Stmt").T(";").N("Stmt").End()
	b.LHS("Stmt").T("x").End()
	b.LHS("Stmt").Epsilon()
	b.LHS("Expr").T("b").End()
	b.LHS("Junk").N("Junk").End()
	for _, g := range []*Grammar{arithmetic(t), build(t, b)} {
		h := Normalize(g)
		assert.False(t, h.HasLeftRecursion(), "grammar %q", g.Name)
		firstSymbolsUnique(t, h)
		assert.Equal(t, g.Fingerprint(), g.Fingerprint()) // input unchanged
	}
}

func ruleStrings(rules []*Rule) []string {
	s := make([]string, len(rules))
	for i, r := range rules {
		s[i] = r.String()
	}
	return s
}
