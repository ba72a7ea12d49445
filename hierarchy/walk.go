package hierarchy

import "errors"

// ErrStop ends a Walk early without reporting an error to the caller.
var ErrStop = errors.New("stop walk")

// VisitFunc is called once per node during a Walk. Returning ErrStop ends
// the walk cleanly; any other error aborts it and is returned unchanged.
type VisitFunc func(Node) error

// Walk visits root and its whole subtree in pre-order: a node is visited
// before any of its descendants, and earlier siblings (with their
// subtrees) before later ones.
func Walk(root Node, fn VisitFunc) error {
	if root == nil {
		return nil
	}
	err := walk(root, fn)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func walk(n Node, fn VisitFunc) error {
	if err := fn(n); err != nil {
		return err
	}
	for _, c := range n.Children() {
		if err := walk(c, fn); err != nil {
			return err
		}
	}
	return nil
}

// Depth returns the number of edges between node and its root.
func Depth(node Node) int {
	d := 0
	for p := node.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

// Root returns the topmost ancestor of node (the node with a nil parent),
// which is node itself at the root.
func Root(node Node) Node {
	n := node
	for {
		p := n.Parent()
		if p == nil {
			return n
		}
		n = p
	}
}
