package ll

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/utils"
)

// SymbolKind tags the variants of grammar symbols.
type SymbolKind uint8

// Kinds of symbols. Epsilon and EndOfInput are markers used by
// FIRST and FOLLOW sets; they never occur within rules.
const (
	NoSymbol SymbolKind = iota
	TerminalKind
	NonTerminalKind
	EpsilonKind
	EndOfInputKind
)

// Step denotes a transformation step which synthesizes a non-terminal.
type Step byte

// Derivation steps recorded in the lineage of synthesized non-terminals.
const (
	StartStep     Step = 's' // new start symbol for ε-elimination
	RecursionStep Step = 'r' // helper for removal of direct left recursion
	FactorStep    Step = 'f' // continuation after a common prefix
)

// Symbol is a grammar symbol, i.e. a terminal or a non-terminal.
//
// Symbols are small values and may be compared with ==. A synthesized
// non-terminal carries the name of the declared non-terminal it originates
// from, plus the chain of derivation steps which created it. Two symbols are
// equal if and only if kind, name and lineage are equal.
type Symbol struct {
	kind    SymbolKind
	name    string
	lineage string // encoded derivation steps; empty for declared symbols
}

// Epsilon is the marker for the empty word in FIRST sets.
var Epsilon = Symbol{kind: EpsilonKind}

// EOF is the end-of-input marker in FOLLOW sets.
var EOF = Symbol{kind: EndOfInputKind}

// Terminal creates a terminal symbol for a token name.
func Terminal(name string) Symbol {
	return Symbol{kind: TerminalKind, name: name}
}

// NonTerminal creates a (declared) non-terminal symbol.
func NonTerminal(name string) Symbol {
	return Symbol{kind: NonTerminalKind, name: name}
}

// Derive creates a synthesized non-terminal from A. serial disambiguates
// multiple derivations with the same step.
func (A Symbol) Derive(step Step, serial int) Symbol {
	if A.kind != NonTerminalKind {
		panic(fmt.Sprintf("cannot derive a non-terminal from %v", A))
	}
	return Symbol{
		kind:    NonTerminalKind,
		name:    A.name,
		lineage: fmt.Sprintf("%s/%c%d", A.lineage, step, serial),
	}
}

// Kind returns the variant of a symbol.
func (A Symbol) Kind() SymbolKind {
	return A.kind
}

// Name returns the name of a terminal or of the declared non-terminal a symbol
// originates from. Use String() for a printable name of synthesized symbols.
func (A Symbol) Name() string {
	return A.name
}

// IsTerminal is true for terminals.
func (A Symbol) IsTerminal() bool {
	return A.kind == TerminalKind
}

// IsNonTerminal is true for declared and synthesized non-terminals.
func (A Symbol) IsNonTerminal() bool {
	return A.kind == NonTerminalKind
}

// IsDerived is true for non-terminals synthesized by a transformation.
func (A Symbol) IsDerived() bool {
	return A.lineage != ""
}

// Origin returns the declared non-terminal a derived symbol stems from.
// For all other symbols, Origin returns the symbol itself.
func (A Symbol) Origin() Symbol {
	return Symbol{kind: A.kind, name: A.name}
}

// Steps returns the derivation steps of a synthesized non-terminal.
func (A Symbol) Steps() []Step {
	var steps []Step
	for _, s := range strings.Split(A.lineage, "/") {
		if s != "" {
			steps = append(steps, Step(s[0]))
		}
	}
	return steps
}

// String renders a symbol. Every derivation step appends a prime, followed
// by the serial if it is not 0. Rendered names of different symbols may
// collide.
func (A Symbol) String() string {
	switch A.kind {
	case EpsilonKind:
		return "ε"
	case EndOfInputKind:
		return "#eof"
	case NoSymbol:
		return "<none>"
	}
	if A.lineage == "" {
		return A.name
	}
	var b strings.Builder
	b.WriteString(A.name)
	for _, s := range strings.Split(A.lineage, "/") {
		if s == "" {
			continue
		}
		b.WriteByte('\'')
		if serial := s[1:]; serial != "0" {
			b.WriteString(serial)
		}
	}
	return b.String()
}

// key is an unambiguous string encoding of a symbol.
func (A Symbol) key() string {
	return fmt.Sprintf("%d%q%s", A.kind, A.name, A.lineage)
}

// SymbolComparator orders symbols by kind, name and lineage. It is
// suitable for gods' ordered containers.
func SymbolComparator(a, b interface{}) int {
	A, B := a.(Symbol), b.(Symbol)
	if c := utils.IntComparator(int(A.kind), int(B.kind)); c != 0 {
		return c
	}
	if c := utils.StringComparator(A.name, B.name); c != 0 {
		return c
	}
	return utils.StringComparator(A.lineage, B.lineage)
}

// --- Symbol sets -----------------------------------------------------------

// SymbolSet is a simple set of symbols. The nil set is a valid empty set
// for reading.
type SymbolSet map[Symbol]struct{}

var exists = struct{}{}

// Add adds a symbol and returns the (possibly newly allocated) set.
func (set SymbolSet) Add(A Symbol) SymbolSet {
	if set == nil {
		set = SymbolSet{}
	}
	set[A] = exists
	return set
}

// Contains checks for membership of A.
func (set SymbolSet) Contains(A Symbol) bool {
	if set == nil {
		return false
	}
	_, ok := set[A]
	return ok
}

// Size returns the number of symbols in the set.
func (set SymbolSet) Size() int {
	return len(set)
}

// ContainsAll is true if every symbol in syms is contained in set.
func (set SymbolSet) ContainsAll(syms []Symbol) bool {
	for _, A := range syms {
		if !set.Contains(A) {
			return false
		}
	}
	return true
}
