// Package hierarchy provides search and path helpers for rooted, ordered
// trees of parented objects (scene graphs). The tree itself is owned and
// mutated by a host environment; this package only reads it through the
// minimal Node capability and keeps no state between calls.
package hierarchy

import "strings"

// Separator joins node names in materialized paths.
const Separator = "/"

// Node is the capability a host tree must expose per vertex.
//
// The child sequence must be ordered and index-stable for the duration of
// one search call. Parent must return a nil Node (not a typed nil wrapped
// in the interface) at the root. HasTag reports membership in the host's
// tag registry; querying a tag the host does not recognize is a contract
// violation and must return an error, which every search here propagates
// unchanged.
type Node interface {
	Children() []Node
	Parent() Node
	Name() string
	Active() bool
	HasTag(tag string) (bool, error)
}

// Predicate decides whether a node matches a search. The error return
// exists for host-contract violations (e.g. an unregistered tag); a
// predicate must never signal "no match" with an error.
type Predicate func(Node) (bool, error)

// Order selects the traversal strategy for single-result descendant search.
type Order int

const (
	// DepthFirst visits a child and its whole subtree before the next sibling.
	DepthFirst Order = iota
	// BreadthFirst visits all nodes at one depth before any deeper node,
	// so the result (if any) is at minimum depth.
	BreadthFirst
)

// FindDescendant returns the first node below root that satisfies pred,
// or nil if none does. Root itself is never considered. When activeOnly
// is set, inactive nodes are skipped as matches but their subtrees are
// still searched.
//
// DepthFirst returns the first match of a pre-order traversal: each child
// is tested before its own descendants, and a child's entire subtree is
// exhausted before the next sibling. BreadthFirst returns a match of
// minimum depth, with earlier siblings winning ties.
//
// Absence is a normal outcome, not an error; the only errors returned are
// those raised by pred itself.
func FindDescendant(root Node, pred Predicate, activeOnly bool, order Order) (Node, error) {
	if root == nil {
		return nil, nil
	}
	if order == BreadthFirst {
		return findBreadthFirst(root, pred, activeOnly)
	}
	return findDepthFirst(root, pred, activeOnly)
}

// FindDescendants returns every node below root satisfying pred, in
// pre-order traversal order. Root itself is excluded. The result may be
// empty; it is never an error.
func FindDescendants(root Node, pred Predicate, activeOnly bool) ([]Node, error) {
	if root == nil {
		return nil, nil
	}
	var out []Node
	for _, child := range root.Children() {
		err := Walk(child, func(n Node) error {
			ok, err := accepts(n, pred, activeOnly)
			if err != nil {
				return err
			}
			if ok {
				out = append(out, n)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FindAncestor walks the parent chain of node, returning the first
// ancestor satisfying pred, or nil at the root. The node itself is never
// considered. There is no activity filter on ancestor search; callers
// that want one compose it into the predicate with And(pred, IsActive).
func FindAncestor(node Node, pred Predicate) (Node, error) {
	if node == nil {
		return nil, nil
	}
	for p := node.Parent(); p != nil; p = p.Parent() {
		ok, err := pred(p)
		if err != nil {
			return nil, err
		}
		if ok {
			return p, nil
		}
	}
	return nil, nil
}

// PathOf materializes the root-to-node path as names joined by Separator,
// with a leading Separator. The result is a pure function of the tree at
// the instant of the call; a later reparent invalidates it.
func PathOf(node Node) string {
	if node == nil {
		return ""
	}
	var names []string
	for n := node; n != nil; n = n.Parent() {
		names = append(names, n.Name())
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteString(Separator)
		b.WriteString(names[i])
	}
	return b.String()
}

// FindPath resolves a path produced by PathOf back to a node, starting at
// root. The first path element must be root's own name. Returns nil if
// any element does not name a child at that level.
func FindPath(root Node, path string) Node {
	if root == nil {
		return nil
	}
	parts := strings.Split(strings.Trim(path, Separator), Separator)
	if len(parts) == 0 || parts[0] != root.Name() {
		return nil
	}
	cur := root
outer:
	for _, part := range parts[1:] {
		for _, c := range cur.Children() {
			if c.Name() == part {
				cur = c
				continue outer
			}
		}
		return nil
	}
	return cur
}

// findDepthFirst is classic recursive pre-order over n's children.
func findDepthFirst(n Node, pred Predicate, activeOnly bool) (Node, error) {
	for _, child := range n.Children() {
		ok, err := accepts(child, pred, activeOnly)
		if err != nil {
			return nil, err
		}
		if ok {
			return child, nil
		}
		found, err := findDepthFirst(child, pred, activeOnly)
		if err != nil || found != nil {
			return found, err
		}
	}
	return nil, nil
}

// findBreadthFirst is a queue-based level-order traversal, which is what
// guarantees the minimum-depth result.
func findBreadthFirst(root Node, pred Predicate, activeOnly bool) (Node, error) {
	queue := append([]Node(nil), root.Children()...)
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		ok, err := accepts(n, pred, activeOnly)
		if err != nil {
			return nil, err
		}
		if ok {
			return n, nil
		}
		queue = append(queue, n.Children()...)
	}
	return nil, nil
}

// accepts applies the activity filter before the predicate, so a tag
// predicate is never evaluated for a node the filter already rejects.
func accepts(n Node, pred Predicate, activeOnly bool) (bool, error) {
	if activeOnly && !n.Active() {
		return false, nil
	}
	return pred(n)
}
