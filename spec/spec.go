package spec

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/pargus/pargus/compressor"
)

// StateID represents an ID of a state of the lexical automaton.
type StateID int

const (
	// StateIDDead represents an empty entry of the transition table. When the
	// lexer reaches this state, the current match attempt is over.
	StateIDDead = StateID(0)

	// StateIDMin is the minimum valid state ID. By convention the generator
	// assigns it to the initial state.
	StateIDMin = StateID(1)
)

func (id StateID) Int() int {
	return int(id)
}

// TerminalID represents an ID of a terminal symbol. IDs of real terminals are
// positive; ID 0 doubles as "non-accepting" in the lexical accept table and
// as the end-of-input symbol in the parsing tables.
type TerminalID int

const (
	TerminalIDNone = TerminalID(0)
	TerminalIDMin  = TerminalID(1)
)

func (id TerminalID) Int() int {
	return int(id)
}

const (
	CompressionLevelNone            = 0
	CompressionLevelUniqueEntries   = 1
	CompressionLevelRowDisplacement = 2
)

// RowDisplacementTable is the serialized form of compressor.RowDisplacementTable.
type RowDisplacementTable struct {
	OriginalRowCount int       `json:"original_row_count"`
	OriginalColCount int       `json:"original_col_count"`
	EmptyValue       StateID   `json:"empty_value"`
	Entries          []StateID `json:"entries"`
	Bounds           []int     `json:"bounds"`
	RowDisplacement  []int     `json:"row_displacement"`
}

// UniqueEntriesTable is the serialized form of compressor.UniqueEntriesTable.
// The unique rows themselves are either stored flat or compressed once more
// by row displacement.
type UniqueEntriesTable struct {
	UniqueEntries             *RowDisplacementTable `json:"unique_entries,omitempty"`
	UncompressedUniqueEntries []StateID             `json:"uncompressed_unique_entries,omitempty"`
	RowNums                   []int                 `json:"row_nums"`
	OriginalRowCount          int                   `json:"original_row_count"`
	OriginalColCount          int                   `json:"original_col_count"`
}

// LexicalSpec is the generated lexical automaton: a transition table indexed
// by [state][byte] and an accept table mapping states to terminal IDs.
type LexicalSpec struct {
	InitialStateID         StateID             `json:"initial_state_id"`
	RowCount               int                 `json:"row_count"`
	ColCount               int                 `json:"col_count"`
	CompressionLevel       int                 `json:"compression_level"`
	Transition             *UniqueEntriesTable `json:"transition,omitempty"`
	UncompressedTransition []StateID           `json:"uncompressed_transition,omitempty"`
	AcceptingStates        []TerminalID        `json:"accepting_states"`
}

// NewLexicalSpec builds a LexicalSpec from a flat row-major transition table,
// compressing it to the requested level. The flat table must cover the full
// byte range, so colCount is fixed at 256 and rows are states, row 0 being
// the dead state.
func NewLexicalSpec(transition []StateID, colCount int, accepting []TerminalID, initial StateID, level int) (*LexicalSpec, error) {
	if colCount != 256 {
		return nil, fmt.Errorf("a transition table must be defined over the full byte range; col count: %v", colCount)
	}
	if len(transition)%colCount != 0 {
		return nil, fmt.Errorf("transition table length %v is not a multiple of col count %v", len(transition), colCount)
	}
	rowCount := len(transition) / colCount
	if len(accepting) != rowCount {
		return nil, fmt.Errorf("accepting states length must equal row count; rows: %v, accepting: %v", rowCount, len(accepting))
	}

	s := &LexicalSpec{
		InitialStateID:   initial,
		RowCount:         rowCount,
		ColCount:         colCount,
		CompressionLevel: level,
		AcceptingStates:  accepting,
	}

	switch level {
	case CompressionLevelNone:
		s.UncompressedTransition = transition
	case CompressionLevelUniqueEntries, CompressionLevelRowDisplacement:
		orig, err := compressor.NewOriginalTable(stateIDsToInts(transition), colCount)
		if err != nil {
			return nil, err
		}
		ueTab := compressor.NewUniqueEntriesTable()
		err = ueTab.Compress(orig)
		if err != nil {
			return nil, err
		}
		tran := &UniqueEntriesTable{
			RowNums:          ueTab.RowNums,
			OriginalRowCount: ueTab.OriginalRowCount,
			OriginalColCount: ueTab.OriginalColCount,
		}
		if level == CompressionLevelRowDisplacement {
			rdOrig, err := compressor.NewOriginalTable(ueTab.UniqueEntries, colCount)
			if err != nil {
				return nil, err
			}
			rdTab := compressor.NewRowDisplacementTable(StateIDDead.Int())
			err = rdTab.Compress(rdOrig)
			if err != nil {
				return nil, err
			}
			tran.UniqueEntries = &RowDisplacementTable{
				OriginalRowCount: rdTab.OriginalRowCount,
				OriginalColCount: rdTab.OriginalColCount,
				EmptyValue:       StateID(rdTab.EmptyValue),
				Entries:          intsToStateIDs(rdTab.Entries),
				Bounds:           rdTab.Bounds,
				RowDisplacement:  rdTab.RowDisplacement,
			}
		} else {
			tran.UncompressedUniqueEntries = intsToStateIDs(ueTab.UniqueEntries)
		}
		s.Transition = tran
	default:
		return nil, fmt.Errorf("invalid compression level: %v", level)
	}

	return s, nil
}

func stateIDsToInts(ids []StateID) []int {
	vs := make([]int, len(ids))
	for i, id := range ids {
		vs[i] = id.Int()
	}
	return vs
}

func intsToStateIDs(vs []int) []StateID {
	ids := make([]StateID, len(vs))
	for i, v := range vs {
		ids[i] = StateID(v)
	}
	return ids
}

// SyntacticSpec is the generated shift/reduce automaton.
//
// Action is indexed by [state][terminal] with stride TerminalCount. Terminal
// ID 0 is the end-of-input column. An entry encodes: -1 = reject, 0 = shift,
// n > 0 = reduce using production n-1.
//
// GoTo is indexed by [state][symbol column] with stride
// TerminalCount+NonTerminalCount. Terminal symbols occupy the first
// TerminalCount columns at their own IDs; nonterminal symbol n occupies
// column TerminalCount+n. Nonterminal ID 0 is the accept symbol.
type SyntacticSpec struct {
	InitialState            int      `json:"initial_state"`
	StateCount              int      `json:"state_count"`
	Action                  []int    `json:"action"`
	GoTo                    []int    `json:"goto"`
	LHSSymbols              []int    `json:"lhs_symbols"`
	AlternativeSymbolCounts []int    `json:"alternative_symbol_counts"`
	Terminals               []string `json:"terminals"`
	TerminalCount           int      `json:"terminal_count"`
	TerminalSkip            []int    `json:"terminal_skip"`
	NonTerminals            []string `json:"non_terminals"`
	NonTerminalCount        int      `json:"non_terminal_count"`
	EOFSymbol               int      `json:"eof_symbol"`
	AcceptSymbol            int      `json:"accept_symbol"`
}

// CompiledSpec is the unit the generator emits and the runtime consumes. It
// is immutable once loaded; independent lexers and parsers may share one
// instance freely.
type CompiledSpec struct {
	Name      string         `json:"name"`
	Lexical   *LexicalSpec   `json:"lexical"`
	Syntactic *SyntacticSpec `json:"syntactic"`
}

// Validate checks that the table shapes are consistent with the declared
// counts so that malformed generated data fails loudly at load time instead
// of causing out-of-range panics during a parse.
func (s *CompiledSpec) Validate() error {
	if s.Lexical == nil {
		return fmt.Errorf("a compiled spec must have a lexical spec")
	}
	if s.Syntactic == nil {
		return fmt.Errorf("a compiled spec must have a syntactic spec")
	}
	err := s.Lexical.validate()
	if err != nil {
		return err
	}
	err = s.Syntactic.validate()
	if err != nil {
		return err
	}
	// The lexer's accepting states yield terminal IDs that index the
	// parser's tables, so the two parts must agree.
	for i, term := range s.Lexical.AcceptingStates {
		if term.Int() < 0 || term.Int() >= s.Syntactic.TerminalCount {
			return fmt.Errorf("the accepting terminal of lexical state %v is out of range: %v", i, term)
		}
	}
	return nil
}

func (s *LexicalSpec) validate() error {
	if s.ColCount != 256 {
		return fmt.Errorf("a lexical transition table must have 256 columns; col count: %v", s.ColCount)
	}
	if s.InitialStateID.Int() <= 0 || s.InitialStateID.Int() >= s.RowCount {
		return fmt.Errorf("the initial state %v is out of range; row count: %v", s.InitialStateID, s.RowCount)
	}
	if len(s.AcceptingStates) != s.RowCount {
		return fmt.Errorf("the accepting states length must equal the row count; rows: %v, accepting: %v", s.RowCount, len(s.AcceptingStates))
	}
	switch s.CompressionLevel {
	case CompressionLevelNone:
		if len(s.UncompressedTransition) != s.RowCount*s.ColCount {
			return fmt.Errorf("the transition table length must be %v; actual: %v", s.RowCount*s.ColCount, len(s.UncompressedTransition))
		}
	case CompressionLevelUniqueEntries, CompressionLevelRowDisplacement:
		if s.Transition == nil {
			return fmt.Errorf("a compressed spec must have a transition table")
		}
		tran := s.Transition
		if len(tran.RowNums) != s.RowCount {
			return fmt.Errorf("the row nums length must equal the row count; rows: %v, row nums: %v", s.RowCount, len(tran.RowNums))
		}
		if tran.OriginalColCount != s.ColCount {
			return fmt.Errorf("the transition table column counts are inconsistent; want: %v, got: %v", s.ColCount, tran.OriginalColCount)
		}
		if s.CompressionLevel == CompressionLevelUniqueEntries {
			if len(tran.UncompressedUniqueEntries) == 0 || len(tran.UncompressedUniqueEntries)%s.ColCount != 0 {
				return fmt.Errorf("the unique entries length must be a non-zero multiple of the column count; entries: %v, columns: %v", len(tran.UncompressedUniqueEntries), s.ColCount)
			}
			uniqueRows := len(tran.UncompressedUniqueEntries) / s.ColCount
			for i, rowNum := range tran.RowNums {
				if rowNum < 0 || rowNum >= uniqueRows {
					return fmt.Errorf("the row num of state %v is out of range: %v; unique rows: %v", i, rowNum, uniqueRows)
				}
			}
		} else {
			rd := tran.UniqueEntries
			if rd == nil {
				return fmt.Errorf("a row-displacement spec must have its inner table")
			}
			if len(rd.Entries) != len(rd.Bounds) {
				return fmt.Errorf("the entries and bounds must have the same length; entries: %v, bounds: %v", len(rd.Entries), len(rd.Bounds))
			}
			if len(rd.RowDisplacement) != rd.OriginalRowCount {
				return fmt.Errorf("the row displacement length must equal the unique row count; rows: %v, displacements: %v", rd.OriginalRowCount, len(rd.RowDisplacement))
			}
			for i, rowNum := range tran.RowNums {
				if rowNum < 0 || rowNum >= rd.OriginalRowCount {
					return fmt.Errorf("the row num of state %v is out of range: %v; unique rows: %v", i, rowNum, rd.OriginalRowCount)
				}
				d := rd.RowDisplacement[rowNum]
				if d < 0 || d+s.ColCount > len(rd.Entries) {
					return fmt.Errorf("the displacement of state %v runs past the entries: %v", i, d)
				}
			}
		}
	default:
		return fmt.Errorf("invalid compression level: %v", s.CompressionLevel)
	}
	return nil
}

func (s *SyntacticSpec) validate() error {
	if s.TerminalCount <= 0 || s.NonTerminalCount <= 0 {
		return fmt.Errorf("terminal count and non-terminal count must be >=1; terminals: %v, non-terminals: %v", s.TerminalCount, s.NonTerminalCount)
	}
	if s.InitialState < 0 || s.InitialState >= s.StateCount {
		return fmt.Errorf("the initial state %v is out of range; state count: %v", s.InitialState, s.StateCount)
	}
	if len(s.Action) != s.StateCount*s.TerminalCount {
		return fmt.Errorf("the action table length must be %v; actual: %v", s.StateCount*s.TerminalCount, len(s.Action))
	}
	if len(s.GoTo) != s.StateCount*(s.TerminalCount+s.NonTerminalCount) {
		return fmt.Errorf("the goto table length must be %v; actual: %v", s.StateCount*(s.TerminalCount+s.NonTerminalCount), len(s.GoTo))
	}
	if len(s.LHSSymbols) != len(s.AlternativeSymbolCounts) {
		return fmt.Errorf("the production tables must have the same length; lhs symbols: %v, alternative symbol counts: %v", len(s.LHSSymbols), len(s.AlternativeSymbolCounts))
	}
	if len(s.Terminals) != s.TerminalCount {
		return fmt.Errorf("the terminals length must equal the terminal count; count: %v, terminals: %v", s.TerminalCount, len(s.Terminals))
	}
	if len(s.NonTerminals) != s.NonTerminalCount {
		return fmt.Errorf("the non-terminals length must equal the non-terminal count; count: %v, non-terminals: %v", s.NonTerminalCount, len(s.NonTerminals))
	}
	if len(s.TerminalSkip) != 0 && len(s.TerminalSkip) != s.TerminalCount {
		return fmt.Errorf("the terminal skip length must be 0 or equal the terminal count; count: %v, skip: %v", s.TerminalCount, len(s.TerminalSkip))
	}
	for i, lhs := range s.LHSSymbols {
		if lhs < 0 || lhs >= s.NonTerminalCount {
			return fmt.Errorf("the LHS symbol of production %v is out of range: %v", i, lhs)
		}
	}
	for i, n := range s.AlternativeSymbolCounts {
		if n < 0 {
			return fmt.Errorf("the alternative symbol count of production %v must be >=0: %v", i, n)
		}
	}
	// Reduce entries n > 0 name production n-1.
	for i, act := range s.Action {
		if act < -1 || act > len(s.LHSSymbols) {
			return fmt.Errorf("the action entry at %v is out of range: %v; productions: %v", i, act, len(s.LHSSymbols))
		}
	}
	for i, next := range s.GoTo {
		if next < 0 || next >= s.StateCount {
			return fmt.Errorf("the goto entry at %v is out of range: %v; state count: %v", i, next, s.StateCount)
		}
	}
	return nil
}

// Fingerprint returns a content hash of the compiled spec. Embedders can use
// it to verify that the tables and the generated glue code linking against
// them came out of the same generator run.
func (s *CompiledSpec) Fingerprint() (string, error) {
	return structhash.Hash(s, 1)
}
