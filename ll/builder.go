package ll

// GrammarBuilder is a helper for building grammars. Clients create one with
// NewGrammarBuilder and then add rules, one at a time:
//
//     b := ll.NewGrammarBuilder("G")
//     b.LHS("S").N("A").T("a").End()  // S  ->  A a
//     b.LHS("A").Epsilon()            // A  ->
//     g, err := b.Grammar()
//
// Symbols are declared implicitly by their first occurence. Symbols which do
// not occur in any rule may be declared with Terminal and NonTerminal.
type GrammarBuilder struct {
	name         string
	terminals    []Symbol
	nonterminals []Symbol
	declared     SymbolSet
	rules        []*Rule
	start        Symbol
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	return &GrammarBuilder{
		name:     gname,
		declared: SymbolSet{},
	}
}

// RuleBuilder is a builder type for rules. Use LHS(…) of a grammar builder
// to get one.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs Symbol
	rhs []Symbol
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	A := gb.declare(NonTerminal(name))
	if gb.start.Kind() == NoSymbol {
		gb.start = A
	}
	return &RuleBuilder{gb: gb, lhs: A}
}

// Start sets the start symbol. If it is not called, the LHS of the first rule
// is the start symbol.
func (gb *GrammarBuilder) Start(name string) *GrammarBuilder {
	gb.start = gb.declare(NonTerminal(name))
	return gb
}

// Terminal declares terminals which may not occur in any rule.
func (gb *GrammarBuilder) Terminal(names ...string) *GrammarBuilder {
	for _, name := range names {
		gb.declare(Terminal(name))
	}
	return gb
}

// NonTerminal declares non-terminals which may not occur in any rule.
func (gb *GrammarBuilder) NonTerminal(names ...string) *GrammarBuilder {
	for _, name := range names {
		gb.declare(NonTerminal(name))
	}
	return gb
}

func (gb *GrammarBuilder) declare(A Symbol) Symbol {
	if gb.declared.Contains(A) {
		return A
	}
	gb.declared = gb.declared.Add(A)
	if A.IsTerminal() {
		gb.terminals = append(gb.terminals, A)
	} else {
		gb.nonterminals = append(gb.nonterminals, A)
	}
	return A
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.gb.declare(NonTerminal(name)))
	return rb
}

// T appends a terminal to the builder.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, rb.gb.declare(Terminal(name)))
	return rb
}

// End a rule.
func (rb *RuleBuilder) End() *Rule {
	r := NewRule(rb.lhs, rb.rhs...)
	rb.gb.rules = append(rb.gb.rules, r)
	return r
}

// Epsilon sets epsilon as the RHS of a production and ends the rule.
// Previously appended symbols are discarded.
func (rb *RuleBuilder) Epsilon() *Rule {
	rb.rhs = nil
	return rb.End()
}

// Grammar returns the grammar, if it is valid.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	g, err := NewGrammar(gb.name, gb.terminals, gb.nonterminals, gb.rules, gb.start)
	if err != nil {
		tracer().Errorf("grammar %q: %v", gb.name, err)
		return nil, err
	}
	return g, nil
}
