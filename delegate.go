package gesture

// Resolve finds the delegate node for an event that reached bind from target.
//
// With an empty selector Resolve returns nil: "no delegation" is the caller's
// always-matches case. Otherwise the selector is matched against bind's whole
// document, fresh on every call since membership changes between events, and
// the walk goes from target up through its ancestors, stopping before bind.
// The first node in the matched set is returned. An event dispatched on bind
// itself therefore never resolves. Listeners on bind only ever see targets in
// its subtree; the loop still stops at a nil parent as a defensive guard.
func Resolve(bind *Node, selector string, target *Node) (*Node, error) {
	if selector == "" {
		return nil, nil
	}
	if bind == nil {
		return nil, ErrNilNode
	}
	matched, err := bind.Document().QuerySelectorAll(selector)
	if err != nil {
		return nil, err
	}
	if len(matched) == 0 {
		return nil, nil
	}
	set := make(map[*Node]struct{}, len(matched))
	for _, n := range matched {
		set[n] = struct{}{}
	}
	for n := target; n != nil && n != bind; n = n.Parent {
		if _, ok := set[n]; ok {
			return n, nil
		}
	}
	return nil, nil
}
