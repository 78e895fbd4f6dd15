package parser

import "github.com/pargus/pargus/spec"

// Grammar is the parser's view of a generated parsing table.
//
// Action uses the encoding -1 = reject, 0 = shift, n > 0 = reduce using
// production n-1. GoTo is indexed by symbol column: a terminal's column is
// its own ID, nonterminal n's column is TerminalCount()+n.
type Grammar interface {
	InitialState() int
	Action(state int, terminal int) int
	GoTo(state int, symbol int) int
	LHS(prod int) int
	AlternativeSymbolCount(prod int) int
	TerminalCount() int
	TerminalSkip(terminal int) bool
	AcceptSymbol() int
	EOF() int
	Terminal(terminal int) string
	NonTerminal(nonTerminal int) string
}

type grammarImpl struct {
	g *spec.SyntacticSpec
}

func NewGrammar(g *spec.SyntacticSpec) Grammar {
	return &grammarImpl{
		g: g,
	}
}

func (g *grammarImpl) InitialState() int {
	return g.g.InitialState
}

func (g *grammarImpl) Action(state int, terminal int) int {
	return g.g.Action[state*g.g.TerminalCount+terminal]
}

func (g *grammarImpl) GoTo(state int, symbol int) int {
	return g.g.GoTo[state*(g.g.TerminalCount+g.g.NonTerminalCount)+symbol]
}

func (g *grammarImpl) LHS(prod int) int {
	return g.g.LHSSymbols[prod]
}

func (g *grammarImpl) AlternativeSymbolCount(prod int) int {
	return g.g.AlternativeSymbolCounts[prod]
}

func (g *grammarImpl) TerminalCount() int {
	return g.g.TerminalCount
}

func (g *grammarImpl) TerminalSkip(terminal int) bool {
	if len(g.g.TerminalSkip) == 0 {
		return false
	}
	return g.g.TerminalSkip[terminal] != 0
}

func (g *grammarImpl) AcceptSymbol() int {
	return g.g.AcceptSymbol
}

func (g *grammarImpl) EOF() int {
	return g.g.EOFSymbol
}

func (g *grammarImpl) Terminal(terminal int) string {
	return g.g.Terminals[terminal]
}

func (g *grammarImpl) NonTerminal(nonTerminal int) string {
	return g.g.NonTerminals[nonTerminal]
}
