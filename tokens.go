package llnorm

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to applications (and scanners) to define them.
type TokType int

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals of a grammar.
//
// Parsers of this module match tokens against terminals by lexeme:
//
//    TokType = '+'         // identifier for this kind of tokens (scanner specific)
//    Lexeme  = "+"         // lexeme how it appeared in the input stream, matches terminal "+"
//    Span    = 5…6         // occured from position 5 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run.
// A span denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsNull is true for the zero span.
func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
