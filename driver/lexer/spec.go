package lexer

import "github.com/pargus/pargus/spec"

// LexSpec is the lexer's view of a generated lexical automaton.
type LexSpec interface {
	InitialState() StateID
	NextState(state StateID, v byte) (StateID, bool)
	Accept(state StateID) (TerminalID, bool)
}

type lexSpec struct {
	spec *spec.LexicalSpec
}

func NewLexSpec(s *spec.LexicalSpec) LexSpec {
	return &lexSpec{
		spec: s,
	}
}

func (s *lexSpec) InitialState() StateID {
	return StateID(s.spec.InitialStateID.Int())
}

func (s *lexSpec) NextState(state StateID, v byte) (StateID, bool) {
	switch s.spec.CompressionLevel {
	case spec.CompressionLevelRowDisplacement:
		tran := s.spec.Transition
		rowNum := tran.RowNums[state]
		d := tran.UniqueEntries.RowDisplacement[rowNum]
		if tran.UniqueEntries.Bounds[d+int(v)] != rowNum {
			return StateID(tran.UniqueEntries.EmptyValue.Int()), false
		}
		return StateID(tran.UniqueEntries.Entries[d+int(v)].Int()), true
	case spec.CompressionLevelUniqueEntries:
		tran := s.spec.Transition
		next := tran.UncompressedUniqueEntries[tran.RowNums[state]*tran.OriginalColCount+int(v)]
		if next == spec.StateIDDead {
			return StateID(spec.StateIDDead.Int()), false
		}
		return StateID(next.Int()), true
	}

	next := s.spec.UncompressedTransition[state.Int()*s.spec.ColCount+int(v)]
	if next == spec.StateIDDead {
		return StateID(spec.StateIDDead.Int()), false
	}
	return StateID(next.Int()), true
}

func (s *lexSpec) Accept(state StateID) (TerminalID, bool) {
	term := s.spec.AcceptingStates[state]
	return TerminalID(term.Int()), term != spec.TerminalIDNone
}
