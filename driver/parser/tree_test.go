package parser

import (
	"strings"
	"testing"

	"github.com/pargus/pargus/driver/lexer"
	"github.com/pargus/pargus/report"
)

func TestPrintTree(t *testing.T) {
	src := "3+4"
	errState := report.NewErrorState()
	gram := NewGrammar(newArithSpec())
	toks := lexer.NewTokenStream()
	toks.Append(termNum, 0, 1)
	toks.Append(termAdd, 1, 2)
	toks.Append(termNum, 2, 3)
	tree, err := NewParser(gram, errState, toks).Parse()
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	PrintTree(&b, tree, gram, []byte(src))
	want := `start
└─ expr
   ├─ expr
   │  └─ num "3"
   ├─ add "+"
   └─ num "4"
`
	if b.String() != want {
		t.Fatalf("unexpected rendering;\nwant:\n%v\ngot:\n%v", want, b.String())
	}
}

func TestTree_Terminal(t *testing.T) {
	leaf := NewTerminalTree(lexer.Token{TerminalID: 1, From: 0, To: 1})
	if !leaf.Terminal() {
		t.Fatal("a node wrapping a token must be a terminal")
	}
	node := NewNonTerminalTree(symExpr, []*Tree{leaf})
	if node.Terminal() {
		t.Fatal("a node with a symbol must not be a terminal")
	}
	if len(node.Children) != 1 || node.Children[0] != leaf {
		t.Fatal("a non-terminal must own the supplied children")
	}
}

// Every node must be reachable from exactly one parent.
func TestTree_singleOwnership(t *testing.T) {
	errState := report.NewErrorState()
	gram := NewGrammar(newArithSpec())
	toks := newArithTokenStream(termNum, termAdd, termNum, termAdd, termNum)
	tree, err := NewParser(gram, errState, toks).Parse()
	if err != nil {
		t.Fatal(err)
	}

	seen := map[*Tree]bool{}
	var walk func(*Tree)
	walk = func(n *Tree) {
		if seen[n] {
			t.Fatal("a node is reachable from two distinct parents")
		}
		seen[n] = true
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)
}
