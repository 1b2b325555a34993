package ll

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// E -> E + T | T,  T -> T * F | F,  F -> ( E ) | n
func arithmetic(t *testing.T) *Grammar {
	b := NewGrammarBuilder("Arithmetic")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("n").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestSymbolLineage(t *testing.T) {
	E := NonTerminal("E")
	E1 := E.Derive(RecursionStep, 0)
	assert.Equal(t, E1, NonTerminal("E").Derive(RecursionStep, 0))
	assert.NotEqual(t, E1, E.Derive(FactorStep, 0))
	assert.NotEqual(t, E1, E.Derive(RecursionStep, 1))
	assert.Equal(t, "E'", E1.String())
	assert.Equal(t, "E'", E.Derive(FactorStep, 0).String()) // display only
	assert.Equal(t, "E'1'", E.Derive(RecursionStep, 1).Derive(FactorStep, 0).String())
	assert.Equal(t, []Step{RecursionStep, FactorStep}, E1.Derive(FactorStep, 0).Steps())
	assert.Equal(t, E, E1.Origin())
	assert.True(t, E1.IsDerived())
	assert.False(t, E.IsDerived())
	assert.NotEqual(t, NonTerminal("a"), Terminal("a"))
	assert.Panics(t, func() { Terminal("a").Derive(FactorStep, 0) })
	assert.Equal(t, "ε", Epsilon.String())
	assert.Equal(t, "#eof", EOF.String())
}

func TestSymbolComparator(t *testing.T) {
	E := NonTerminal("E")
	assert.Equal(t, 0, SymbolComparator(E, NonTerminal("E")))
	assert.Equal(t, -1, SymbolComparator(Terminal("z"), NonTerminal("A")))
	assert.Equal(t, -1, SymbolComparator(E, E.Derive(StartStep, 0)))
	assert.Equal(t, 1, SymbolComparator(EOF, Epsilon))
}

func TestBuilder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	g := arithmetic(t)
	assert.Equal(t, NonTerminal("E"), g.Start())
	assert.Equal(t, 6, g.Size())
	assert.Len(t, g.Terminals(), 5)
	assert.Equal(t, []Symbol{NonTerminal("E"), NonTerminal("T"), NonTerminal("F")}, g.NonTerminals())
	assert.Len(t, g.RulesFor(NonTerminal("F")), 2)
	assert.Equal(t, "E -> E + T", g.Rule(0).String())
	assert.Nil(t, g.Rule(6))
	assert.True(t, g.HasTerminal(Terminal("n")))
	assert.False(t, g.HasTerminal(NonTerminal("n")))
	assert.True(t, g.HasNonTerminal(NonTerminal("T")))
	assert.False(t, g.HasEpsilonRule(NonTerminal("E")))
	t.Logf("\n%v", g)
	g.Dump()
}

func TestBuilderStartAndEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("A").T("a").End()
	b.LHS("S").N("A").End()
	b.LHS("S").T("x").Epsilon()
	b.Start("S").Terminal("unused").NonTerminal("U")
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, NonTerminal("S"), g.Start())
	assert.True(t, g.HasEpsilonRule(NonTerminal("S")))
	assert.Equal(t, "S -> ε", g.RulesFor(NonTerminal("S"))[1].String())
	assert.True(t, g.HasTerminal(Terminal("unused")))
	assert.True(t, g.HasNonTerminal(NonTerminal("U")))
}

func TestGrammarValidation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	S, A, a := NonTerminal("S"), NonTerminal("A"), Terminal("a")
	rules := []*Rule{
		NewRule(S, A, a),
		NewRule(S, Terminal("b")),
		NewRule(NonTerminal("X"), a),
		NewRule(S, EOF),
	}
	_, err := NewGrammar("broken", []Symbol{a, a}, []Symbol{S}, rules, NonTerminal("Z"))
	if !assert.Error(t, err) {
		return
	}
	assert.True(t, errors.Is(err, ErrInvalidGrammar))
	msg := err.Error()
	for _, violation := range []string{
		"terminal a declared twice",
		"start symbol Z",
		"undeclared non-terminal A",
		"undeclared terminal b",
		"X -> a: LHS",
		"marker #eof",
	} {
		assert.True(t, strings.Contains(msg, violation), "expected %q in error message %q", violation, msg)
	}
}

func TestDuplicateRulesAreMerged(t *testing.T) {
	S, a := NonTerminal("S"), Terminal("a")
	g, err := NewGrammar("dup", []Symbol{a}, []Symbol{S}, []*Rule{NewRule(S, a), NewRule(S, a), NewRule(S)}, S)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 2, g.Size())
}

func TestRuleIdentity(t *testing.T) {
	E, n := NonTerminal("E"), Terminal("n")
	r1 := NewRule(E, n, E.Derive(RecursionStep, 0))
	r2 := NewRule(E, n, E.Derive(RecursionStep, 0))
	r3 := NewRule(E, n, E.Derive(FactorStep, 0))
	assert.True(t, r1.Equals(r2))
	assert.False(t, r1.Equals(r3))
	assert.Equal(t, r1.Hash(), r2.Hash())
	assert.NotEqual(t, r1.Hash(), r3.Hash())
	assert.Equal(t, r1.String(), r3.String())
	assert.Equal(t, 2, r1.Len())
	assert.Equal(t, n, r1.At(0))
	rhs := r1.RHS()
	rhs[0] = E
	assert.Equal(t, n, r1.At(0))
}

func TestFingerprint(t *testing.T) {
	g1, g2 := arithmetic(t), arithmetic(t)
	assert.Equal(t, g1.Fingerprint(), g2.Fingerprint())
	assert.NotEqual(t, g1.Fingerprint(), g1.EliminateLeftRecursion().Fingerprint())
}

func TestSuccessorDoesNotShareRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.ll")
	defer teardown()
	//
	b := NewGrammarBuilder("Shared")
	b.LHS("S").T("a").End()
	b.LHS("S").N("A").End()
	b.LHS("A").T("a").N("A").End()
	b.LHS("A").T("b").End()
	g := build(t, b)
	h := g.RemoveUselessSymbols()
	before := h.String()
	rules := g.Rules()
	rules[0] = NewRule(NonTerminal("A"), Terminal("b"))
	rhs := rules[1].RHS()
	rhs[0] = Terminal("b")
	for _, r := range g.RulesFor(NonTerminal("S")) {
		r.RHS()[0] = NonTerminal("S")
	}
	assert.Equal(t, before, h.String())
	assert.Equal(t, "S -> a", g.Rule(0).String())
	assert.Equal(t, "S -> a", h.Rule(0).String())
	for _, r := range h.RulesFor(NonTerminal("S")) {
		assert.Equal(t, NonTerminal("S"), r.LHS())
	}
	assert.Len(t, h.RulesFor(NonTerminal("S")), 2)
}
