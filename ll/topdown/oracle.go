package topdown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/llnorm/ll"
	"github.com/npillmayer/schuko/gconf"
)

// DefaultStepBudget is the number of search steps after which the exhaustive
// recognizer gives up, if no other budget is configured.
const DefaultStepBudget = 1000000

// ErrStepBudgetExceeded is returned by the exhaustive recognizer if it has
// not come to a decision within its step budget.
var ErrStepBudgetExceeded = errors.New("step budget of exhaustive recognizer exceeded")

// Recognize decides if tokens is a sentence of g by exhaustive search over
// all leftmost derivations. It works for arbitrary grammars, including
// ambiguous and left-recursive ones, and is intended as a reference for
// checking grammar transformations and the predictive parser.
//
// The step budget is taken from configuration key "oracle-step-budget".
func Recognize(g *ll.Grammar, tokens []string) (bool, error) {
	return NewOracle(g, gconf.GetInt("oracle-step-budget")).Accepts(tokens)
}

// Oracle is an exhaustive recognizer for a grammar. Create one with NewOracle.
type Oracle struct {
	ga     *ll.LLAnalysis
	budget int
	ids    map[ll.Symbol]int
}

// NewOracle creates an exhaustive recognizer for g, which gives up after
// budget steps. A budget ≤ 0 selects DefaultStepBudget.
func NewOracle(g *ll.Grammar, budget int) *Oracle {
	return newOracle(ll.Analysis(g), budget)
}

func newOracle(ga *ll.LLAnalysis, budget int) *Oracle {
	if budget <= 0 {
		budget = DefaultStepBudget
	}
	o := &Oracle{ga: ga, budget: budget, ids: make(map[ll.Symbol]int)}
	for _, A := range ga.Grammar().Terminals() {
		o.ids[A] = len(o.ids)
	}
	for _, A := range ga.Grammar().NonTerminals() {
		o.ids[A] = len(o.ids)
	}
	return o
}

// searchState is a choice point of the search: input before position pos
// has been matched, and the symbols of pending have yet to derive the rest.
type searchState struct {
	pos     int
	pending []ll.Symbol
}

// Accepts decides membership of tokens.
//
// The search runs on an explicit stack of states. A state with input left and
// a terminal on top of pending has to match the next token. For a
// non-terminal on top, successor states for every rule of the non-terminal
// are pushed, the first rule ending up on top of the stack. A state is
// accepting if all input has been consumed and all pending symbols are
// nullable.
//
// States whose pending symbols cannot derive a string as short as the
// remaining input are pruned, as are states already visited. This suffices
// for termination on many grammars, but not for all: left recursion through
// nullable symbols may create an unbounded number of states. The step budget
// catches these cases.
func (o *Oracle) Accepts(tokens []string) (bool, error) {
	g := o.ga.Grammar()
	input := make([]ll.Symbol, len(tokens))
	for i, tok := range tokens {
		input[i] = ll.Terminal(tok)
		if !g.HasTerminal(input[i]) {
			return false, nil
		}
	}
	visited := make(map[string]bool)
	stack := arraystack.New()
	stack.Push(searchState{pos: 0, pending: []ll.Symbol{g.Start()}})
	for steps := 0; !stack.Empty(); steps++ {
		if steps >= o.budget {
			tracer().Errorf("exhaustive recognizer gave up after %d steps", steps)
			return false, fmt.Errorf("input %q: %w", strings.Join(tokens, " "), ErrStepBudgetExceeded)
		}
		x, _ := stack.Pop()
		state := x.(searchState)
		rest := len(input) - state.pos
		if rest == 0 && o.allNullable(state.pending) {
			tracer().Debugf("exhaustive recognizer accepted after %d steps", steps)
			return true, nil
		}
		if len(state.pending) == 0 || o.ga.SequenceYield(state.pending) > rest {
			continue
		}
		key := o.stateKey(state)
		if visited[key] {
			continue
		}
		visited[key] = true
		X := state.pending[0]
		if X.IsTerminal() {
			if input[state.pos] == X { // rest > 0, as X yields 1
				stack.Push(searchState{pos: state.pos + 1, pending: state.pending[1:]})
			}
			continue
		}
		rules := g.RulesFor(X)
		for i := len(rules) - 1; i >= 0; i-- {
			rhs := rules[i].RHS()
			pending := make([]ll.Symbol, 0, len(rhs)+len(state.pending)-1)
			pending = append(append(pending, rhs...), state.pending[1:]...)
			stack.Push(searchState{pos: state.pos, pending: pending})
		}
	}
	return false, nil
}

func (o *Oracle) allNullable(syms []ll.Symbol) bool {
	for _, A := range syms {
		if !o.ga.IsNullable(A) {
			return false
		}
	}
	return true
}

func (o *Oracle) stateKey(state searchState) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(state.pos))
	for _, A := range state.pending {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(o.ids[A]))
	}
	return b.String()
}
