package scanner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"n",
	"n+(n+n)*n",
	"chr ast",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 9, 2, 3, 5}

func TestScan1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader, SkipComments(true))
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestLexemes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.scanner")
	defer teardown()
	//
	lexemes := Lexemes(GoTokenizer("expr", strings.NewReader("n(n+n)*n")))
	if strings.Join(lexemes, " ") != "n ( n + n ) * n" {
		t.Errorf("unexpected lexemes: %v", lexemes)
	}
}

func TestErrorHandler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "llnorm.scanner")
	defer teardown()
	//
	var errs []error
	tok := GoTokenizer("broken", strings.NewReader(`"unterminated`))
	tok.SetErrorHandler(func(e error) { errs = append(errs, e) })
	Lexemes(tok)
	if len(errs) == 0 {
		t.Errorf("Expected scanner to report an error for unterminated string")
	}
}
