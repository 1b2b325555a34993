package ll

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
)

// Rule is a production of a grammar: LHS -> RHS.
// A rule with an empty right hand side is an ε-production.
//
// Rules are immutable.
type Rule struct {
	lhs Symbol
	rhs []Symbol
}

// NewRule creates a rule. The RHS symbols are copied.
func NewRule(lhs Symbol, rhs ...Symbol) *Rule {
	return &Rule{
		lhs: lhs,
		rhs: append([]Symbol(nil), rhs...),
	}
}

// LHS returns the left hand side of a rule.
func (r *Rule) LHS() Symbol {
	return r.lhs
}

// RHS returns a copy of the right hand side of a rule.
func (r *Rule) RHS() []Symbol {
	return append([]Symbol(nil), r.rhs...)
}

// Len returns the length of the right hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// At returns the i-th symbol of the right hand side.
func (r *Rule) At(i int) Symbol {
	return r.rhs[i]
}

// IsEpsilon is true for ε-productions.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 0
}

// Equals compares two rules by value.
func (r *Rule) Equals(other *Rule) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.lhs != other.lhs || len(r.rhs) != len(other.rhs) {
		return false
	}
	for i, A := range r.rhs {
		if A != other.rhs[i] {
			return false
		}
	}
	return true
}

func (r *Rule) String() string {
	if len(r.rhs) == 0 {
		return fmt.Sprintf("%v -> ε", r.lhs)
	}
	var b strings.Builder
	b.WriteString(r.lhs.String())
	b.WriteString(" ->")
	for _, A := range r.rhs {
		b.WriteByte(' ')
		b.WriteString(A.String())
	}
	return b.String()
}

// key is an unambiguous encoding of a rule's value.
func (r *Rule) key() string {
	return seqKey(r.lhs, r.rhs)
}

func seqKey(lhs Symbol, rhs []Symbol) string {
	var b strings.Builder
	b.WriteString(lhs.key())
	b.WriteString("→")
	for _, A := range rhs {
		b.WriteString(A.key())
		b.WriteByte(' ')
	}
	return b.String()
}

type ruleDigest struct {
	LHS string
	RHS []string
}

func (r *Rule) digest() ruleDigest {
	d := ruleDigest{LHS: r.lhs.key(), RHS: make([]string, len(r.rhs))}
	for i, A := range r.rhs {
		d.RHS[i] = A.key()
	}
	return d
}

// Hash returns a stable hash value of a rule. Equal rules have equal hashes.
func (r *Rule) Hash() string {
	return fmt.Sprintf("%x", structhash.Sha1(r.digest(), 1))
}

// --- ε-combinatorics -------------------------------------------------------

// withoutNullables expands the RHS of a rule into every variant where each
// occurrence of a nullable non-terminal is either kept or dropped.
// Non-nullable symbols are never dropped. The variant keeping all symbols
// comes first. Empty variants are included.
func (r *Rule) withoutNullables(nullable SymbolSet) [][]Symbol {
	variants := [][]Symbol{{}}
	for _, A := range r.rhs {
		if A.IsNonTerminal() && nullable.Contains(A) {
			n := len(variants)
			for i := 0; i < n; i++ {
				keep := append(append([]Symbol(nil), variants[i]...), A)
				variants = append(variants, variants[i]) // drop A
				variants[i] = keep
			}
			continue
		}
		for i := range variants {
			variants[i] = append(variants[i], A)
		}
	}
	return variants
}
