package lexer

import (
	"io"

	"github.com/pargus/pargus/report"
)

// StateID represents an ID of a state of the lexical automaton.
type StateID int

func (id StateID) Int() int {
	return int(id)
}

// TerminalID represents an ID of a terminal symbol. ID 0 means
// "no terminal"; real terminals have positive IDs.
type TerminalID int

const TerminalIDNone = TerminalID(0)

func (id TerminalID) Int() int {
	return int(id)
}

// Token is one recognized lexical unit. From and To are byte offsets into
// the source; To is exclusive. A token is immutable once appended.
type Token struct {
	TerminalID TerminalID
	From       int
	To         int
}

const initialTokenStreamCapacity = 8

// TokenStream is an append-only sequence of tokens in source order. The
// lexer is its only writer; during parsing it is read-only.
type TokenStream struct {
	tokens []Token
}

func NewTokenStream() *TokenStream {
	return &TokenStream{
		tokens: make([]Token, 0, initialTokenStreamCapacity),
	}
}

// Append adds a token to the end of the stream.
func (s *TokenStream) Append(term TerminalID, from, to int) {
	s.tokens = append(s.tokens, Token{
		TerminalID: term,
		From:       from,
		To:         to,
	})
}

// Get returns the token at position i. The position must be < Len.
func (s *TokenStream) Get(i int) Token {
	return s.tokens[i]
}

func (s *TokenStream) Len() int {
	return len(s.tokens)
}

// Lexer runs a generated transition table over source text and produces a
// token stream following longest-match semantics.
type Lexer struct {
	spec     LexSpec
	src      []byte
	errState *report.ErrorState
}

// NewLexer returns a new lexer. The source is read wholesale up front; the
// automaton itself performs no I/O.
func NewLexer(spec LexSpec, errState *report.ErrorState, src io.Reader) (*Lexer, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	return &Lexer{
		spec:     spec,
		src:      b,
		errState: errState,
	}, nil
}

// Run scans the whole source. On success the returned stream's token spans
// partition the source exactly. When the automaton stalls before the end of
// the input, Run records a bad character failure at the stalled position and
// returns it; the partially built stream is discarded.
func (l *Lexer) Run() (*TokenStream, error) {
	toks := NewTokenStream()
	pos := 0
	for pos < len(l.src) {
		state := l.spec.InitialState()
		lastAccept := TerminalIDNone
		lastAcceptEnd := pos
		scan := pos
		for scan < len(l.src) {
			next, ok := l.spec.NextState(state, l.src[scan])
			if !ok {
				break
			}
			state = next
			scan++
			if term, ok := l.spec.Accept(state); ok {
				// A later accepting state always wins within one attempt.
				lastAccept = term
				lastAcceptEnd = scan
			}
		}
		if lastAccept == TerminalIDNone {
			break
		}
		toks.Append(lastAccept, pos, lastAcceptEnd)
		// The automaton may have overrun past the last accepting state;
		// resume right after the accepted lexeme, not at the furthest reach.
		pos = lastAcceptEnd
	}
	if pos < len(l.src) {
		return nil, l.errState.Setf(report.KindBadCharacter, pos, "invalid character at position %v", pos)
	}
	return toks, nil
}

// Source returns the raw source text the lexer was built over.
func (l *Lexer) Source() []byte {
	return l.src
}
