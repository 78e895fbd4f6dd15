package parser

// stackElement pairs a tree with the automaton state reached right after the
// tree was pushed. The bottom element is a sentinel holding no tree and the
// initial state.
type stackElement struct {
	tree  *Tree
	state int
}

const initialParseStackCapacity = 8

type parseStack struct {
	elements []stackElement
}

func newParseStack(initialState int) *parseStack {
	s := &parseStack{
		elements: make([]stackElement, 0, initialParseStackCapacity),
	}
	s.elements = append(s.elements, stackElement{
		tree:  nil,
		state: initialState,
	})
	return s
}

func (s *parseStack) push(tree *Tree, state int) {
	s.elements = append(s.elements, stackElement{
		tree:  tree,
		state: state,
	})
}

// pop removes the top n elements and returns their trees in original
// left-to-right order.
func (s *parseStack) pop(n int) []*Tree {
	trees := make([]*Tree, n)
	base := len(s.elements) - n
	for i := 0; i < n; i++ {
		trees[i] = s.elements[base+i].tree
	}
	s.elements = s.elements[:base]
	return trees
}

func (s *parseStack) topState() int {
	return s.elements[len(s.elements)-1].state
}

// topTree returns the top element's tree, or nil when only the sentinel
// remains.
func (s *parseStack) topTree() *Tree {
	return s.elements[len(s.elements)-1].tree
}

// size includes the sentinel.
func (s *parseStack) size() int {
	return len(s.elements)
}
