package hierarchy

// ByName matches nodes whose display name equals name exactly.
func ByName(name string) Predicate {
	return func(n Node) (bool, error) {
		return n.Name() == name, nil
	}
}

// ByTag matches nodes carrying the given classification tag. An
// unregistered tag surfaces as an error from the host, propagated
// unchanged by the search functions.
func ByTag(tag string) Predicate {
	return func(n Node) (bool, error) {
		return n.HasTag(tag)
	}
}

// IsActive matches nodes whose activation flag is set. Useful with And to
// add an activity filter where an operation has none built in, such as
// FindAncestor.
func IsActive(n Node) (bool, error) {
	return n.Active(), nil
}

// And matches nodes satisfying every given predicate. Evaluation is
// left-to-right and stops at the first non-match or error.
func And(preds ...Predicate) Predicate {
	return func(n Node) (bool, error) {
		for _, p := range preds {
			ok, err := p(n)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}
}
