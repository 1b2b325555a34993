/*
Package scanner defines an interface for scanners to be used with the parsers
of package topdown.

Two default scanner implementations are provided: (1) a thin wrapper over the
Go std lib 'text/scanner', and (2) an adapter for lexmachine, living in
sub-package `lexmach`, which is able to create a scanner from the terminals of
a grammar.

Parsers match tokens to terminals by their lexeme, so for a grammar with
terminals "n", "+", "(" and ")" the input

    n+(n+n)

will be split into the lexemes n + ( n + n ) by the Go tokenizer.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"io"
	"text/scanner"

	"github.com/npillmayer/llnorm"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'llnorm.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("llnorm.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface. After the end of input has been reached,
// NextToken returns tokens of type EOF.
type Tokenizer interface {
	NextToken() llnorm.Token
	SetErrorHandler(func(error))
}

// Lexemes drains a tokenizer and returns the lexemes of all tokens up to
// end of input.
func Lexemes(t Tokenizer) []string {
	var lexemes []string
	for token := t.NextToken(); token.TokType() != EOF; token = t.NextToken() {
		lexemes = append(lexemes, token.Lexeme())
	}
	tracer().Debugf("input consists of %d tokens", len(lexemes))
	return lexemes
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(scanError{pos: s.Pos().String(), msg: msg})
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type scanError struct {
	pos, msg string
}

func (e scanError) Error() string {
	return e.pos + ": " + e.msg
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() llnorm.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	return DefaultToken{
		kind:   llnorm.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   llnorm.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   llnorm.TokType
	lexeme string
	Val    interface{}
	span   llnorm.Span
}

// MakeDefaultToken creates a token from its parts.
func MakeDefaultToken(typ llnorm.TokType, lexeme string, span llnorm.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() llnorm.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() llnorm.Span {
	return t.span
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}
