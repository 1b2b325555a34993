package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/llnorm/ll"
	"github.com/npillmayer/llnorm/ll/scanner"
	"github.com/npillmayer/llnorm/ll/scanner/lexmach"
	"github.com/npillmayer/llnorm/ll/topdown"
)

// We provide two grammars for experiments. The expression grammar is
// left-recursive, the statement grammar has ε-productions and needs
// left-factoring.
//
//  Expr   ➞ Expr SumOp Term  |  Term
//  Term   ➞ Term ProdOp Factor  |  Factor
//  Factor ➞ n  |  ( Expr )
//  SumOp  ➞ +  |  -
//  ProdOp ➞ *  |  /
//
//  Stmts  ➞ Stmt ; Stmts  |  ε
//  Stmt   ➞ if c then Stmt  |  if c then Stmt else Stmt  |  begin Stmts end  |  x
//
func makeGrammar(name string) (*ll.Grammar, error) {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelError)
	defer tracer().SetTraceLevel(level)
	var b *ll.GrammarBuilder
	switch name {
	case "expr":
		b = ll.NewGrammarBuilder("Expressions")
		b.LHS("Expr").N("Expr").N("SumOp").N("Term").End()
		b.LHS("Expr").N("Term").End()
		b.LHS("Term").N("Term").N("ProdOp").N("Factor").End()
		b.LHS("Term").N("Factor").End()
		b.LHS("Factor").T("n").End()
		b.LHS("Factor").T("(").N("Expr").T(")").End()
		b.LHS("SumOp").T("+").End()
		b.LHS("SumOp").T("-").End()
		b.LHS("ProdOp").T("*").End()
		b.LHS("ProdOp").T("/").End()
	case "stmt":
		b = ll.NewGrammarBuilder("Statements")
		b.LHS("Stmts").N("Stmt").T(";").N("Stmts").End()
		b.LHS("Stmts").Epsilon()
		b.LHS("Stmt").T("if").T("c").T("then").N("Stmt").End()
		b.LHS("Stmt").T("if").T("c").T("then").N("Stmt").T("else").N("Stmt").End()
		b.LHS("Stmt").T("begin").N("Stmts").T("end").End()
		b.LHS("Stmt").T("x").End()
	default:
		return nil, fmt.Errorf("no built-in grammar %q, use 'expr' or 'stmt'", name)
	}
	return b.Grammar()
}

// main() starts an interactive CLI ("T.REPL"), where users may enter
// sentences of a grammar. T.REPL will check every input line for membership
// in the language of the grammar and print out the result.
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	gname := flag.String("grammar", "expr", "Built-in grammar [expr|stmt]")
	initf := flag.String("init", "", "Initial load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to TREPL")    // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up grammar and parser
	g, err := makeGrammar(*gname)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	tracer().SetTraceLevel(traceLevel(*tlevel)) // now set the user supplied level
	parser, err := topdown.NewParser(g)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	parser.Grammar().Dump() // only visible in debug mode
	//
	// set up REPL
	repl, err := readline.New("trepl> ")
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(3)
	}
	intp := &Intp{
		raw:    g,
		parser: parser,
		repl:   repl,
		lexer:  "go",
	}
	if input := strings.TrimSpace(strings.Join(flag.Args(), " ")); input != "" {
		tracer().Infof("Input argument is \"%s\"", input)
		if _, err := intp.Eval(input); err != nil {
			pterm.Error.Println(err.Error())
		}
	}
	//
	// load an init file and start receiving commands / sentences
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.loadInitFile(*initf)           // init file name provided by flag
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	raw    *ll.Grammar
	parser *topdown.Parser
	repl   *readline.Instance
	lexer  string            // "go" or "terminals"
	lm     *lexmach.LMAdapter // created on first use
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()
	lines := bufio.NewScanner(f)
	lineno := 1
	for lines.Scan() {
		line := lines.Text()
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
		lineno++
	}
	if err := lines.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Eval executes a command or checks a sentence, given on a line by itself.
func (intp *Intp) Eval(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, intp.check(line)
	}
	args := strings.Fields(line)
	switch args[0] {
	case ":quit", ":q":
		return true, nil
	case ":grammar":
		printGrammar(intp.parser.Grammar())
	case ":raw":
		printGrammar(intp.raw)
	case ":first", ":follow":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: %s <symbol>", args[0])
		}
		A, ok := intp.symbol(args[1])
		if !ok {
			return false, fmt.Errorf("no non-terminal %s in normalized grammar", args[1])
		}
		set := intp.parser.Analysis().First(A)
		if args[0] == ":follow" {
			set = intp.parser.Analysis().Follow(A)
		}
		pterm.Info.Println(fmt.Sprintf("%s(%v) = %v", strings.ToUpper(args[0][1:]), A, set))
	case ":conflicts":
		conflicts := intp.parser.Conflicts()
		if len(conflicts) == 0 {
			pterm.Info.Println("grammar is LL(1)")
		}
		for _, c := range conflicts {
			pterm.Error.Println(c.String())
		}
	case ":lexer":
		if len(args) != 2 || (args[1] != "go" && args[1] != "terminals") {
			return false, fmt.Errorf("usage: :lexer go|terminals")
		}
		intp.lexer = args[1]
	default:
		return false, fmt.Errorf("unknown command %s", args[0])
	}
	return false, nil
}

// check tokenizes a line and runs both membership tests on it.
func (intp *Intp) check(line string) error {
	tokenizer, err := intp.tokenizer(line)
	if err != nil {
		return err
	}
	var scanErr error
	tokenizer.SetErrorHandler(func(e error) { scanErr = e })
	tokens := scanner.Lexemes(tokenizer)
	if scanErr != nil {
		return scanErr
	}
	tracer().Debugf("tokens: %v", tokens)
	predictive := intp.parser.AcceptsPredictive(tokens)
	if err := intp.parser.CrossCheck(tokens); err != nil {
		return err
	}
	if predictive {
		pterm.Info.Println("accepted")
	} else {
		pterm.Info.Println("rejected")
	}
	return nil
}

func (intp *Intp) tokenizer(line string) (scanner.Tokenizer, error) {
	if intp.lexer == "go" {
		return scanner.GoTokenizer("trepl", strings.NewReader(line)), nil
	}
	if intp.lm == nil {
		var names []string
		for _, a := range intp.parser.Grammar().Terminals() {
			names = append(names, a.Name())
		}
		lm, err := lexmach.ForTerminals(names)
		if err != nil {
			return nil, err
		}
		intp.lm = lm
	}
	return intp.lm.Scanner(line)
}

// symbol finds a non-terminal of the normalized grammar by its printed name.
func (intp *Intp) symbol(name string) (ll.Symbol, bool) {
	for _, A := range intp.parser.Grammar().NonTerminals() {
		if A.String() == name {
			return A, true
		}
	}
	return ll.Symbol{}, false
}

// printGrammar displays the rules of a grammar as a tree, grouped by
// non-terminal.
func printGrammar(g *ll.Grammar) {
	pterm.Println(g.Name)
	list := pterm.LeveledList{}
	for _, A := range g.NonTerminals() {
		list = append(list, pterm.LeveledListItem{Level: 0, Text: A.String()})
		for _, r := range g.RulesFor(A) {
			list = append(list, pterm.LeveledListItem{Level: 1, Text: r.String()})
		}
	}
	root := pterm.NewTreeFromLeveledList(list)
	pterm.DefaultTree.WithRoot(root).Render()
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
