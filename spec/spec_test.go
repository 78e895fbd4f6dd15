package spec

import (
	"encoding/json"
	"fmt"
	"testing"
)

func newValidSpec() *CompiledSpec {
	tran := make([]StateID, 3*256)
	tran[1*256+'a'] = 2
	tran[2*256+'a'] = 2
	lexical, err := NewLexicalSpec(tran, 256, []TerminalID{0, 0, 1}, StateIDMin, CompressionLevelNone)
	if err != nil {
		panic(err)
	}

	return &CompiledSpec{
		Name:    "test",
		Lexical: lexical,
		Syntactic: &SyntacticSpec{
			InitialState: 1,
			StateCount:   3,
			Action: []int{
				// stride 2: eof, a
				-1, -1,
				0, 0,
				1, -1,
			},
			GoTo: []int{
				// stride 3: eof, a, start
				0, 0, 0,
				0, 2, 0,
				0, 0, 0,
			},
			LHSSymbols:              []int{0},
			AlternativeSymbolCounts: []int{1},
			Terminals:               []string{"<eof>", "a"},
			TerminalCount:           2,
			NonTerminals:            []string{"start"},
			NonTerminalCount:        1,
			EOFSymbol:               0,
			AcceptSymbol:            0,
		},
	}
}

func newCompressedLexicalSpec(level int) *LexicalSpec {
	tran := make([]StateID, 3*256)
	tran[1*256+'a'] = 2
	tran[2*256+'a'] = 2
	s, err := NewLexicalSpec(tran, 256, []TerminalID{0, 0, 1}, StateIDMin, level)
	if err != nil {
		panic(err)
	}
	return s
}

func TestCompiledSpec_Validate(t *testing.T) {
	err := newValidSpec().Validate()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		caption string
		mangle  func(s *CompiledSpec)
	}{
		{
			caption: "a lexical spec is missing",
			mangle: func(s *CompiledSpec) {
				s.Lexical = nil
			},
		},
		{
			caption: "a syntactic spec is missing",
			mangle: func(s *CompiledSpec) {
				s.Syntactic = nil
			},
		},
		{
			caption: "the transition table doesn't cover the full byte range",
			mangle: func(s *CompiledSpec) {
				s.Lexical.ColCount = 128
			},
		},
		{
			caption: "the lexical initial state is out of range",
			mangle: func(s *CompiledSpec) {
				s.Lexical.InitialStateID = 9
			},
		},
		{
			caption: "the accepting states don't match the row count",
			mangle: func(s *CompiledSpec) {
				s.Lexical.AcceptingStates = s.Lexical.AcceptingStates[:1]
			},
		},
		{
			caption: "the transition table length doesn't match the counts",
			mangle: func(s *CompiledSpec) {
				s.Lexical.UncompressedTransition = s.Lexical.UncompressedTransition[:256]
			},
		},
		{
			caption: "the compression level is invalid",
			mangle: func(s *CompiledSpec) {
				s.Lexical.CompressionLevel = 9
			},
		},
		{
			caption: "the action table length doesn't match the counts",
			mangle: func(s *CompiledSpec) {
				s.Syntactic.Action = s.Syntactic.Action[:3]
			},
		},
		{
			caption: "the goto table length doesn't match the counts",
			mangle: func(s *CompiledSpec) {
				s.Syntactic.GoTo = s.Syntactic.GoTo[:5]
			},
		},
		{
			caption: "the production tables have different lengths",
			mangle: func(s *CompiledSpec) {
				s.Syntactic.AlternativeSymbolCounts = nil
			},
		},
		{
			caption: "the parser initial state is out of range",
			mangle: func(s *CompiledSpec) {
				s.Syntactic.InitialState = 3
			},
		},
		{
			caption: "the terminal names don't match the terminal count",
			mangle: func(s *CompiledSpec) {
				s.Syntactic.Terminals = append(s.Syntactic.Terminals, "extra")
			},
		},
		{
			caption: "the non-terminal names don't match the non-terminal count",
			mangle: func(s *CompiledSpec) {
				s.Syntactic.NonTerminals = nil
			},
		},
		{
			caption: "the terminal skip length is inconsistent",
			mangle: func(s *CompiledSpec) {
				s.Syntactic.TerminalSkip = []int{1}
			},
		},
		{
			caption: "an LHS symbol is out of range",
			mangle: func(s *CompiledSpec) {
				s.Syntactic.LHSSymbols = []int{5}
			},
		},
		{
			caption: "a row-displacement spec is missing its inner table",
			mangle: func(s *CompiledSpec) {
				s.Lexical = newCompressedLexicalSpec(CompressionLevelRowDisplacement)
				s.Lexical.Transition.UniqueEntries = nil
			},
		},
		{
			caption: "the bounds don't match the entries",
			mangle: func(s *CompiledSpec) {
				s.Lexical = newCompressedLexicalSpec(CompressionLevelRowDisplacement)
				rd := s.Lexical.Transition.UniqueEntries
				rd.Bounds = rd.Bounds[:10]
			},
		},
		{
			caption: "the row displacement doesn't cover the unique rows",
			mangle: func(s *CompiledSpec) {
				s.Lexical = newCompressedLexicalSpec(CompressionLevelRowDisplacement)
				rd := s.Lexical.Transition.UniqueEntries
				rd.RowDisplacement = rd.RowDisplacement[:1]
			},
		},
		{
			caption: "a displacement runs past the entries",
			mangle: func(s *CompiledSpec) {
				s.Lexical = newCompressedLexicalSpec(CompressionLevelRowDisplacement)
				rd := s.Lexical.Transition.UniqueEntries
				rd.RowDisplacement[0] = len(rd.Entries)
			},
		},
		{
			caption: "the unique entries length doesn't match the column count",
			mangle: func(s *CompiledSpec) {
				s.Lexical = newCompressedLexicalSpec(CompressionLevelUniqueEntries)
				tran := s.Lexical.Transition
				tran.UncompressedUniqueEntries = tran.UncompressedUniqueEntries[:100]
			},
		},
		{
			caption: "a row num points past the unique rows",
			mangle: func(s *CompiledSpec) {
				s.Lexical = newCompressedLexicalSpec(CompressionLevelUniqueEntries)
				s.Lexical.Transition.RowNums[1] = 9
			},
		},
		{
			caption: "an accepting state maps to a terminal that doesn't exist",
			mangle: func(s *CompiledSpec) {
				s.Lexical.AcceptingStates[2] = 9
			},
		},
		{
			caption: "an action entry references a production that doesn't exist",
			mangle: func(s *CompiledSpec) {
				s.Syntactic.Action[2] = 9
			},
		},
		{
			caption: "an action entry is below the reject marker",
			mangle: func(s *CompiledSpec) {
				s.Syntactic.Action[2] = -2
			},
		},
		{
			caption: "a goto entry targets a state that doesn't exist",
			mangle: func(s *CompiledSpec) {
				s.Syntactic.GoTo[4] = 7
			},
		},
		{
			caption: "an alternative symbol count is negative",
			mangle: func(s *CompiledSpec) {
				s.Syntactic.AlternativeSymbolCounts[0] = -1
			},
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v %v", i, tt.caption), func(t *testing.T) {
			s := newValidSpec()
			tt.mangle(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("an error must occur")
			}
		})
	}
}

func TestNewLexicalSpec(t *testing.T) {
	tran := make([]StateID, 2*256)
	accepting := []TerminalID{0, 1}

	t.Run("each compression level passes validation", func(t *testing.T) {
		for _, level := range []int{CompressionLevelNone, CompressionLevelUniqueEntries, CompressionLevelRowDisplacement} {
			s, err := NewLexicalSpec(tran, 256, accepting, StateIDMin, level)
			if err != nil {
				t.Fatal(err)
			}
			if s.CompressionLevel != level {
				t.Fatalf("unexpected compression level; want: %v, got: %v", level, s.CompressionLevel)
			}
			err = s.validate()
			if err != nil {
				t.Fatal(err)
			}
		}
	})

	t.Run("a partial byte range is rejected", func(t *testing.T) {
		_, err := NewLexicalSpec(make([]StateID, 2*128), 128, accepting, StateIDMin, CompressionLevelNone)
		if err == nil {
			t.Fatal("an error must occur")
		}
	})

	t.Run("an inconsistent accepting table is rejected", func(t *testing.T) {
		_, err := NewLexicalSpec(tran, 256, []TerminalID{0}, StateIDMin, CompressionLevelNone)
		if err == nil {
			t.Fatal("an error must occur")
		}
	})

	t.Run("an unknown level is rejected", func(t *testing.T) {
		_, err := NewLexicalSpec(tran, 256, accepting, StateIDMin, 9)
		if err == nil {
			t.Fatal("an error must occur")
		}
	})
}

func TestCompiledSpec_Fingerprint(t *testing.T) {
	a := newValidSpec()
	b := newValidSpec()

	fpA, err := a.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	fpB, err := b.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if fpA != fpB {
		t.Fatalf("identical specs must have identical fingerprints; %v vs %v", fpA, fpB)
	}

	b.Syntactic.Action[2] = 1
	fpB, err = b.Fingerprint()
	if err != nil {
		t.Fatal(err)
	}
	if fpA == fpB {
		t.Fatal("different tables must have different fingerprints")
	}
}

func TestCompiledSpec_json(t *testing.T) {
	orig := newValidSpec()
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	loaded := &CompiledSpec{}
	err = json.Unmarshal(data, loaded)
	if err != nil {
		t.Fatal(err)
	}
	err = loaded.Validate()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Syntactic.TerminalCount != orig.Syntactic.TerminalCount ||
		loaded.Lexical.RowCount != orig.Lexical.RowCount {
		t.Fatal("a spec must survive a serialization round trip")
	}
}
