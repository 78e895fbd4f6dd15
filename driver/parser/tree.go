package parser

import (
	"fmt"
	"io"

	"github.com/pargus/pargus/driver/lexer"
)

// Tree is a node of a parse tree. A node is either a terminal wrapping one
// token or a nonterminal owning an ordered sequence of children. A
// nonterminal's child count always equals the RHS length of the production
// that produced it.
type Tree struct {
	// Token is set for terminal nodes only.
	Token *lexer.Token

	// Symbol is the nonterminal symbol ID of an interior node.
	Symbol int

	// Children are the subtrees in derivation order, exclusively owned by
	// this node. Trees are acyclic by construction.
	Children []*Tree
}

// NewTerminalTree returns a leaf wrapping a copy of the token.
func NewTerminalTree(tok lexer.Token) *Tree {
	return &Tree{
		Token: &tok,
	}
}

// NewNonTerminalTree returns an interior node taking ownership of children.
func NewNonTerminalTree(symbol int, children []*Tree) *Tree {
	return &Tree{
		Symbol:   symbol,
		Children: children,
	}
}

// Terminal reports whether the node is a leaf.
func (t *Tree) Terminal() bool {
	return t.Token != nil
}

// PrintTree writes a ruled-line rendering of the tree. Symbol names are
// resolved through the grammar and terminal lexemes are sliced out of src.
func PrintTree(w io.Writer, tree *Tree, g Grammar, src []byte) {
	printTree(w, tree, g, src, "", "")
}

func printTree(w io.Writer, tree *Tree, g Grammar, src []byte, ruledLine string, childRuledLinePrefix string) {
	if tree == nil {
		return
	}

	if tree.Terminal() {
		text := string(src[tree.Token.From:tree.Token.To])
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, g.Terminal(tree.Token.TerminalID.Int()), text)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, g.NonTerminal(tree.Symbol))
	}

	num := len(tree.Children)
	for i, child := range tree.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, g, src, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
