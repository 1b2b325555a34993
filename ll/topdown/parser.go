package topdown

import (
	"errors"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/llnorm/ll"
	"github.com/npillmayer/llnorm/ll/scanner"
	"github.com/npillmayer/llnorm/ll/sparse"
	"github.com/npillmayer/schuko/gconf"
)

// ErrTableConflict is returned by NewParser for grammars which are not LL(1)
// after normalization, if configuration flag "panic-on-ll-conflict" is set.
var ErrTableConflict = errors.New("conflicting entries in prediction table")

// Parser is a predictive top-down parser. Create one with NewParser.
//
// Parsers are read-only after construction and may be used concurrently.
type Parser struct {
	g      *ll.Grammar       // the normalized grammar
	ga     *ll.LLAnalysis    // FIRST and FOLLOW sets of g
	table  *sparse.IntMatrix // prediction table: non-terminal × lookahead -> rules
	rows   map[ll.Symbol]int // non-terminal -> table row
	cols   map[string]int    // terminal name -> table column
	eof    int               // column of end-of-input
	oracle *Oracle           // exhaustive recognizer for g
	strict bool              // fail on conflicts
	budget int               // step budget of the oracle
	rules  []*ll.Rule        // rules of g, by table value
}

// Option configures a parser.
type Option func(p *Parser)

// StepBudget limits the number of steps of the exhaustive recognizer.
// Values ≤ 0 select the default budget.
func StepBudget(n int) Option {
	return func(p *Parser) {
		p.budget = n
	}
}

// FailOnConflict lets NewParser return an error if the prediction table
// contains conflicts. It overrides configuration flag "panic-on-ll-conflict".
func FailOnConflict(b bool) Option {
	return func(p *Parser) {
		p.strict = b
	}
}

// NewParser normalizes g, computes FIRST and FOLLOW sets for the normalized
// grammar and creates a prediction table.
//
// Conflicting table entries are traced. The parser will then select the
// first applicable rule in grammar order. If option FailOnConflict or
// configuration flag "panic-on-ll-conflict" is set, an error wrapping
// ErrTableConflict is returned instead.
func NewParser(g *ll.Grammar, opts ...Option) (*Parser, error) {
	if g == nil {
		return nil, fmt.Errorf("cannot create parser without grammar: %w", ll.ErrInvalidGrammar)
	}
	p := &Parser{
		strict: gconf.GetBool("panic-on-ll-conflict"),
		budget: gconf.GetInt("oracle-step-budget"),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.g = ll.Normalize(g)
	p.ga = ll.Analysis(p.g)
	p.rules = p.g.Rules()
	p.oracle = newOracle(p.ga, p.budget)
	p.buildTable()
	if conflicts := p.Conflicts(); len(conflicts) > 0 {
		for _, c := range conflicts {
			tracer().Errorf("LL(1) conflict: %v", c)
		}
		if p.strict {
			return nil, fmt.Errorf("grammar %q has %d conflicts: %w", g.Name, len(conflicts), ErrTableConflict)
		}
	}
	return p, nil
}

// Grammar returns the normalized grammar the parser operates on.
func (p *Parser) Grammar() *ll.Grammar {
	return p.g
}

// Analysis returns FIRST and FOLLOW sets of the normalized grammar.
func (p *Parser) Analysis() *ll.LLAnalysis {
	return p.ga
}

// --- Prediction table ------------------------------------------------------

// buildTable enters every rule A -> α into the cells (A, a) for a ∈ FIRST(α).
// Then, for every A with a nullable alternative, the cells (A, b) for b ∈
// FOLLOW(A) receive the ε-rule of A, followed by the other nullable rules.
// As the first value of a cell is the one used for prediction, rules predicted
// by FIRST sets take precedence, in grammar order.
func (p *Parser) buildTable() {
	nonterms, terms := p.g.NonTerminals(), p.g.Terminals()
	p.rows = make(map[ll.Symbol]int, len(nonterms))
	p.cols = make(map[string]int, len(terms))
	for i, A := range nonterms {
		p.rows[A] = i
	}
	for j, a := range terms {
		p.cols[a.Name()] = j
	}
	p.eof = len(terms)
	p.table = sparse.NewIntMatrix(len(nonterms), len(terms)+1, sparse.DefaultNullValue)
	nullableRules := make(map[ll.Symbol][]int)
	for no, r := range p.rules {
		first := p.ga.FirstOfSequence(r.RHS())
		for _, a := range first {
			if a == ll.Epsilon {
				if r.IsEpsilon() {
					nullableRules[r.LHS()] = append([]int{no}, nullableRules[r.LHS()]...)
				} else {
					nullableRules[r.LHS()] = append(nullableRules[r.LHS()], no)
				}
				continue
			}
			p.table.Add(p.rows[r.LHS()], p.cols[a.Name()], int32(no))
		}
	}
	for _, A := range nonterms {
		for _, no := range nullableRules[A] {
			for _, b := range p.ga.Follow(A) {
				p.table.Add(p.rows[A], p.column(b), int32(no))
			}
		}
	}
	tracer().Debugf("prediction table for %q has %d entries", p.g.Name, p.table.ValueCount())
}

func (p *Parser) column(a ll.Symbol) int {
	if a == ll.EOF {
		return p.eof
	}
	return p.cols[a.Name()]
}

// lookahead returns the table column of token no. i of the input, or -1 for
// tokens which are not a terminal of the grammar.
func (p *Parser) lookahead(tokens []string, i int) int {
	if i >= len(tokens) {
		return p.eof
	}
	if j, ok := p.cols[tokens[i]]; ok {
		return j
	}
	return -1
}

// Conflict is a cell of the prediction table with more than one rule.
type Conflict struct {
	NonTerminal ll.Symbol
	Lookahead   ll.Symbol // a terminal or ll.EOF
	Rules       []*ll.Rule
}

func (c Conflict) String() string {
	rules := make([]string, len(c.Rules))
	for i, r := range c.Rules {
		rules[i] = r.String()
	}
	return fmt.Sprintf("[%v, %v]: %s", c.NonTerminal, c.Lookahead, strings.Join(rules, " | "))
}

// Conflicts returns all cells of the prediction table with more than one
// candidate rule. For an LL(1) grammar the list is empty.
func (p *Parser) Conflicts() []Conflict {
	nonterms, terms := p.g.NonTerminals(), p.g.Terminals()
	var conflicts []Conflict
	p.table.Each(func(i, j int, values []int32) {
		if len(values) < 2 {
			return
		}
		c := Conflict{NonTerminal: nonterms[i], Lookahead: ll.EOF}
		if j < len(terms) {
			c.Lookahead = terms[j]
		}
		for _, no := range values {
			c.Rules = append(c.Rules, p.rules[no])
		}
		conflicts = append(conflicts, c)
	})
	return conflicts
}

// Predict returns the rule the parser selects for non-terminal A and
// lookahead a (a terminal or ll.EOF), or nil.
func (p *Parser) Predict(A ll.Symbol, a ll.Symbol) *ll.Rule {
	i, ok := p.rows[A]
	if !ok {
		return nil
	}
	j := p.eof
	if a != ll.EOF {
		if j, ok = p.cols[a.Name()]; !ok {
			return nil
		}
	}
	if no := p.table.Value(i, j); no != p.table.NullValue() {
		return p.rules[no]
	}
	return nil
}

// --- Membership ------------------------------------------------------------

// Accepts checks if a sequence of terminal names is a sentence of the
// grammar, using the predictive parser.
func (p *Parser) Accepts(tokens []string) bool {
	return p.AcceptsPredictive(tokens)
}

// AcceptsPredictive runs the predictive parser on tokens. The parser keeps
// a stack of pending symbols, initially the start symbol. Terminals on top of
// the stack have to match the next token, non-terminals are replaced by the
// rule selected from the prediction table. Tokens are accepted if the stack
// is empty after all input has been consumed.
func (p *Parser) AcceptsPredictive(tokens []string) bool {
	stack := arraystack.New()
	stack.Push(p.g.Start())
	pos := 0
	for !stack.Empty() {
		x, _ := stack.Pop()
		X := x.(ll.Symbol)
		if X.IsTerminal() {
			if pos >= len(tokens) || tokens[pos] != X.Name() {
				tracer().Debugf("expected %v at position %d", X, pos)
				return false
			}
			pos++
			continue
		}
		la := p.lookahead(tokens, pos)
		if la < 0 {
			tracer().Debugf("token %q at position %d is not a terminal", tokens[pos], pos)
			return false
		}
		no := p.table.Value(p.rows[X], la)
		if no == p.table.NullValue() {
			tracer().Debugf("no rule for %v at position %d", X, pos)
			return false
		}
		rhs := p.rules[no].RHS()
		for i := len(rhs) - 1; i >= 0; i-- {
			stack.Push(rhs[i])
		}
	}
	if pos < len(tokens) {
		tracer().Debugf("input left over at position %d", pos)
		return false
	}
	return true
}

// AcceptsExhaustive decides membership of tokens with the exhaustive
// recognizer for the normalized grammar. It returns an error wrapping
// ErrStepBudgetExceeded if the recognizer gave up.
func (p *Parser) AcceptsExhaustive(tokens []string) (bool, error) {
	return p.oracle.Accepts(tokens)
}

// ErrOracleDisagreement is returned by CrossCheck if predictive parsing and
// exhaustive search disagree on an input.
var ErrOracleDisagreement = errors.New("predictive parser and exhaustive recognizer disagree")

// CrossCheck runs both membership tests on tokens and reports an error if
// they disagree. For grammars without prediction conflicts they will always
// agree.
func (p *Parser) CrossCheck(tokens []string) error {
	predictive := p.AcceptsPredictive(tokens)
	exhaustive, err := p.AcceptsExhaustive(tokens)
	if err != nil {
		return err
	}
	if predictive != exhaustive {
		return fmt.Errorf("%w: predictive=%v, exhaustive=%v for input %q",
			ErrOracleDisagreement, predictive, exhaustive, strings.Join(tokens, " "))
	}
	return nil
}

// AcceptsInput reads tokens from a tokenizer until end of input and runs the
// predictive parser on their lexemes. Errors reported by the tokenizer are
// returned and the input is rejected.
func (p *Parser) AcceptsInput(t scanner.Tokenizer) (bool, error) {
	var scanErr error
	t.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	lexemes := scanner.Lexemes(t)
	if scanErr != nil {
		return false, fmt.Errorf("scanning input: %w", scanErr)
	}
	return p.AcceptsPredictive(lexemes), nil
}
