/*
Package lexmach provides a scanner adapter for lexmachine
(https://github.com/timtadh/lexmachine).

Clients either set up a lexmachine lexer themselves (NewLMAdapter), or let
the package create one recognizing exactly the terminals of a grammar
(ForTerminals). The latter is convenient for grammars with multi-character
terminals, like keywords, for which the Go tokenizer would produce the wrong
lexemes.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach

import (
	"strings"
	"unicode"

	"github.com/npillmayer/llnorm"
	"github.com/npillmayer/llnorm/ll/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'llnorm.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("llnorm.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string, tokenIds map[string]int) (*LMAdapter, error) {
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	if init != nil {
		init(adapter.Lexer)
	}
	for _, lit := range literals {
		adapter.Lexer.Add([]byte(quote(lit)), MakeToken(lit, tokenIds[lit]))
	}
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// ForTerminals creates an adapter which recognizes the given terminal names as
// literals, skipping whitespace in between. Token types are the position of a
// terminal in the argument list, starting at 1.
//
// A typical call is
//
//     names := make([]string, 0)
//     for _, a := range g.Terminals() {
//         names = append(names, a.Name())
//     }
//     adapter, err := lexmach.ForTerminals(names)
//
func ForTerminals(terminals []string) (*LMAdapter, error) {
	ids := make(map[string]int, len(terminals))
	var literals []string
	for i, name := range terminals {
		if name == "" {
			continue
		}
		ids[name] = i + 1
		literals = append(literals, name)
	}
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	}
	return NewLMAdapter(init, literals, nil, ids)
}

// quote escapes every character of a literal which is not a letter or a digit.
func quote(lit string) string {
	var b strings.Builder
	for _, r := range lit {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{s, logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// NextToken is part of the Tokenizer interface. Unconsumable input is reported
// to the error handler and skipped.
func (lms *LMScanner) NextToken() llnorm.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
			if lms.scanner.TC <= ui.StartTC {
				lms.scanner.TC = ui.StartTC + 1
			}
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", llnorm.Span{0, 0})
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	return scanner.MakeDefaultToken(
		llnorm.TokType(token.Type),
		string(token.Lexeme),
		llnorm.Span{uint64(token.StartColumn), uint64(token.EndColumn)},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
