package ll

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cnf/structhash"
)

// ErrInvalidGrammar is returned (wrapped) if grammar construction detects a
// violation of the grammar invariants.
var ErrInvalidGrammar = errors.New("invalid grammar")

// Grammar is a context-free grammar: a set of terminals, a set of
// non-terminals, a set of rules and a start symbol.
//
// Grammars are immutable. All transformations return a new grammar, which
// does not share rule storage with its predecessor. Sets are ordered by
// declaration; the order of non-terminals is relevant for some
// transformations (see EliminateLeftRecursion).
type Grammar struct {
	Name         string
	terminals    []Symbol
	nonterminals []Symbol
	rules        []*Rule
	index        map[Symbol][]*Rule // LHS -> rules
	start        Symbol
}

// NewGrammar creates a grammar from its constituents. It checks that
//
//  - every rule's LHS is a declared non-terminal,
//  - every terminal of a RHS is a declared terminal,
//  - every non-terminal of a RHS is a declared non-terminal,
//  - the start symbol is a declared non-terminal.
//
// If any check fails, NewGrammar returns an error wrapping ErrInvalidGrammar,
// listing all violations. Duplicate rules are silently merged.
func NewGrammar(name string, terminals, nonterminals []Symbol, rules []*Rule, start Symbol) (*Grammar, error) {
	g := assemble(name, terminals, nonterminals, rules, start)
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// derived is used by transformations to create a successor grammar.
// Transformations must not violate the grammar invariants; if they do,
// this is a programming error and we panic.
func derived(g *Grammar, nonterminals []Symbol, rules []*Rule, start Symbol) *Grammar {
	h := assemble(g.Name, g.terminals, nonterminals, rules, start)
	if err := h.validate(); err != nil {
		panic(fmt.Sprintf("transformation produced broken grammar: %v", err))
	}
	return h
}

func assemble(name string, terminals, nonterminals []Symbol, rules []*Rule, start Symbol) *Grammar {
	g := &Grammar{
		Name:         name,
		terminals:    append([]Symbol(nil), terminals...),
		nonterminals: append([]Symbol(nil), nonterminals...),
		rules:        make([]*Rule, 0, len(rules)),
		index:        make(map[Symbol][]*Rule, len(nonterminals)),
		start:        start,
	}
	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		k := r.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		g.rules = append(g.rules, r)
		g.index[r.LHS()] = append(g.index[r.LHS()], r)
	}
	return g
}

func (g *Grammar) validate() error {
	var violations []string
	T, N := SymbolSet{}, SymbolSet{}
	for _, A := range g.terminals {
		if !A.IsTerminal() {
			violations = append(violations, fmt.Sprintf("%v declared as terminal", A))
		} else if T.Contains(A) {
			violations = append(violations, fmt.Sprintf("terminal %v declared twice", A))
		}
		T = T.Add(A)
	}
	for _, A := range g.nonterminals {
		if !A.IsNonTerminal() {
			violations = append(violations, fmt.Sprintf("%v declared as non-terminal", A))
		} else if N.Contains(A) {
			violations = append(violations, fmt.Sprintf("non-terminal %v declared twice", A))
		}
		N = N.Add(A)
	}
	if !N.Contains(g.start) {
		violations = append(violations, fmt.Sprintf("start symbol %v is not a declared non-terminal", g.start))
	}
	for _, r := range g.rules {
		if !N.Contains(r.LHS()) {
			violations = append(violations, fmt.Sprintf("rule %v: LHS is not a declared non-terminal", r))
		}
		for _, A := range r.rhs {
			switch {
			case A.IsTerminal() && !T.Contains(A):
				violations = append(violations, fmt.Sprintf("rule %v: undeclared terminal %v", r, A))
			case A.IsNonTerminal() && !N.Contains(A):
				violations = append(violations, fmt.Sprintf("rule %v: undeclared non-terminal %v", r, A))
			case !A.IsTerminal() && !A.IsNonTerminal():
				violations = append(violations, fmt.Sprintf("rule %v: marker %v not allowed in rules", r, A))
			}
		}
	}
	if len(violations) > 0 {
		return fmt.Errorf("%w %q: %s", ErrInvalidGrammar, g.Name, strings.Join(violations, "; "))
	}
	return nil
}

// --- Accessors -------------------------------------------------------------

// Start returns the start symbol.
func (g *Grammar) Start() Symbol {
	return g.start
}

// Terminals returns the terminals of g, in declaration order.
func (g *Grammar) Terminals() []Symbol {
	return append([]Symbol(nil), g.terminals...)
}

// NonTerminals returns the non-terminals of g, in declaration order.
func (g *Grammar) NonTerminals() []Symbol {
	return append([]Symbol(nil), g.nonterminals...)
}

// Rules returns all rules of g.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// Size returns the number of rules of g.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns rule number no.
func (g *Grammar) Rule(no int) *Rule {
	if no < 0 || no >= len(g.rules) {
		return nil
	}
	return g.rules[no]
}

// RulesFor returns all rules with LHS A.
func (g *Grammar) RulesFor(A Symbol) []*Rule {
	return append([]*Rule(nil), g.index[A]...)
}

// HasEpsilonRule is true if A -> ε is a rule of g.
func (g *Grammar) HasEpsilonRule(A Symbol) bool {
	for _, r := range g.index[A] {
		if r.IsEpsilon() {
			return true
		}
	}
	return false
}

// HasTerminal checks if A is a terminal of g.
func (g *Grammar) HasTerminal(A Symbol) bool {
	if !A.IsTerminal() {
		return false
	}
	for _, B := range g.terminals {
		if A == B {
			return true
		}
	}
	return false
}

// HasNonTerminal checks if A is a non-terminal of g.
func (g *Grammar) HasNonTerminal(A Symbol) bool {
	for _, B := range g.nonterminals {
		if A == B {
			return true
		}
	}
	return false
}

// rhsIndex returns a fresh map from non-terminals to copies of their RHSs.
// Transformations work on it without touching g.
func (g *Grammar) rhsIndex() map[Symbol][][]Symbol {
	m := make(map[Symbol][][]Symbol, len(g.nonterminals))
	for _, A := range g.nonterminals {
		for _, r := range g.index[A] {
			m[A] = append(m[A], r.RHS())
		}
	}
	return m
}

// Fingerprint returns a stable hash value of the rule set of g.
// Grammars with equal start symbol and equal rules (in equal order) have equal
// fingerprints.
func (g *Grammar) Fingerprint() string {
	d := struct {
		Start string
		Rules []ruleDigest
	}{
		Start: g.start.key(),
		Rules: make([]ruleDigest, len(g.rules)),
	}
	for i, r := range g.rules {
		d.Rules[i] = r.digest()
	}
	h, err := structhash.Hash(d, 1)
	if err != nil {
		panic(err)
	}
	return h
}

// --- Output ----------------------------------------------------------------

func (g *Grammar) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Grammar %q, start = %v\n", g.Name, g.start)
	b.WriteString("Terminals:")
	for _, A := range g.terminals {
		b.WriteByte(' ')
		b.WriteString(A.String())
	}
	b.WriteString("\nNon-terminals:")
	for _, A := range g.nonterminals {
		b.WriteByte(' ')
		b.WriteString(A.String())
	}
	b.WriteString("\n")
	for i, r := range g.rules {
		fmt.Fprintf(&b, "%3d: %v\n", i, r)
	}
	return b.String()
}

// Dump is a debugging helper, printing the rules of g to the tracer.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	tracer().Debugf("start = %v", g.start)
	for i, r := range g.rules {
		tracer().Debugf("%3d: %v", i, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}
