package parser

import (
	"strings"

	"github.com/pargus/pargus/driver/lexer"
	"github.com/pargus/pargus/report"
)

// Parser runs a generated action/goto table over a token stream and builds
// one parse tree. A parser drives a single invocation; independent parsers
// may share the same grammar because the tables are never mutated.
type Parser struct {
	gram     Grammar
	toks     *lexer.TokenStream
	errState *report.ErrorState
	stack    *parseStack
	pos      int
}

func NewParser(gram Grammar, errState *report.ErrorState, toks *lexer.TokenStream) *Parser {
	return &Parser{
		gram:     gram,
		toks:     toks,
		errState: errState,
	}
}

// Parse drives the shift/reduce loop until acceptance or the first failure.
// On success the sole remaining tree is detached from the stack and returned;
// on failure the recorded error is returned and no partial tree survives.
func (p *Parser) Parse() (*Tree, error) {
	p.stack = newParseStack(p.gram.InitialState())
	p.pos = 0
	for {
		// The parse is complete when exactly one non-sentinel element
		// remains and it holds the accept nonterminal. The sentinel carries
		// no tree, so the check must not run against an empty stack.
		if tree := p.stack.topTree(); tree != nil && !tree.Terminal() &&
			tree.Symbol == p.gram.AcceptSymbol() && p.stack.size() == 2 {
			return p.stack.pop(1)[0], nil
		}

		p.skipIgnoredTokens()

		lookahead := p.gram.EOF()
		if p.pos < p.toks.Len() {
			lookahead = p.toks.Get(p.pos).TerminalID.Int()
		}

		act := p.gram.Action(p.stack.topState(), lookahead)
		switch {
		case act < 0:
			return nil, p.failUnexpectedToken(lookahead)
		case act == 0:
			if p.pos >= p.toks.Len() {
				return nil, p.errState.Setf(report.KindUnexpectedEOF, p.endPos(),
					"unexpected end of input%v", p.expectedSuffix())
			}
			p.shift()
		default:
			p.reduce(act - 1)
		}
	}
}

// shift pushes a terminal node for the token at the read cursor and advances
// the cursor by one. The cursor never moves on a reduce.
func (p *Parser) shift() {
	tok := p.toks.Get(p.pos)
	next := p.gram.GoTo(p.stack.topState(), tok.TerminalID.Int())
	p.stack.push(NewTerminalTree(tok), next)
	p.pos++
}

// reduce pops the production's RHS off the stack and pushes a nonterminal
// node owning the popped trees as its children.
func (p *Parser) reduce(prod int) {
	n := p.gram.AlternativeSymbolCount(prod)
	lhs := p.gram.LHS(prod)
	children := p.stack.pop(n)
	next := p.gram.GoTo(p.stack.topState(), p.symbolColumn(lhs))
	p.stack.push(NewNonTerminalTree(lhs, children), next)
}

// symbolColumn locates a nonterminal's column in the goto table. Terminals
// occupy the first TerminalCount columns at their own IDs.
func (p *Parser) symbolColumn(nonTerminal int) int {
	return p.gram.TerminalCount() + nonTerminal
}

// skipIgnoredTokens advances the cursor past tokens whose terminal the
// grammar marks as skipped, like whitespace. The lexer still emits them, so
// token spans keep covering the whole source.
func (p *Parser) skipIgnoredTokens() {
	for p.pos < p.toks.Len() && p.gram.TerminalSkip(p.toks.Get(p.pos).TerminalID.Int()) {
		p.pos++
	}
}

func (p *Parser) failUnexpectedToken(lookahead int) error {
	if p.pos >= p.toks.Len() {
		return p.errState.Setf(report.KindBadToken, p.endPos(),
			"unexpected %v%v", p.gram.Terminal(p.gram.EOF()), p.expectedSuffix())
	}
	tok := p.toks.Get(p.pos)
	return p.errState.Setf(report.KindBadToken, tok.From,
		"unexpected token %v at position %v%v", p.gram.Terminal(lookahead), tok.From, p.expectedSuffix())
}

// endPos is the byte offset reported for failures at the end of the stream.
func (p *Parser) endPos() int {
	if p.toks.Len() == 0 {
		return 0
	}
	return p.toks.Get(p.toks.Len() - 1).To
}

// expectedSuffix lists the terminals acceptable in the current state, for
// error messages.
func (p *Parser) expectedSuffix() string {
	terms := p.expectedTerminals(p.stack.topState())
	if len(terms) == 0 {
		return ""
	}
	return "; expected: " + strings.Join(terms, ", ")
}

func (p *Parser) expectedTerminals(state int) []string {
	terms := []string{}
	for t := 0; t < p.gram.TerminalCount(); t++ {
		if p.gram.TerminalSkip(t) {
			continue
		}
		act := p.gram.Action(state, t)
		if act < 0 {
			continue
		}
		// A shift entry in the end-of-input column can never be taken, so it
		// doesn't make the end of input acceptable.
		if t == p.gram.EOF() && act == 0 {
			continue
		}
		terms = append(terms, p.gram.Terminal(t))
	}
	return terms
}
