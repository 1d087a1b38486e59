package expr

// RemoveSource pops the left-most operand from root, respecting
// transposition (a TRANSPOSE wrapper swaps which end is "left"). Returns
// the updated root — nil if the whole expression collapsed away — and the
// removed operand. A binary node left with a single child after removal
// collapses into that child in place; a TRANSPOSE left childless is
// dropped entirely.
func RemoveSource(root *Node) (*Node, *Operand) {
	return popEnd(root, true)
}

// RemoveDestination is RemoveSource's mirror: pops the right-most operand.
func RemoveDestination(root *Node) (*Node, *Operand) {
	return popEnd(root, false)
}

func popEnd(n *Node, source bool) (*Node, *Operand) {
	if n == nil {
		return nil, nil
	}
	if n.IsOperand() {
		return nil, n.Operand
	}
	if n.Op == Transpose {
		child, removed := popEnd(n.Children[0], !source)
		if child == nil {
			return nil, removed
		}
		n.Children[0] = child
		return n, removed
	}

	idx := 0
	if !source {
		idx = len(n.Children) - 1
	}
	end := n.Children[idx]
	if end.IsOperand() {
		n.Children = dropAt(n.Children, idx)
		if len(n.Children) == 1 {
			return n.Children[0], end.Operand
		}
		return n, end.Operand
	}

	newEnd, removed := popEnd(end, source)
	if newEnd == nil {
		n.Children = dropAt(n.Children, idx)
		if len(n.Children) == 1 {
			return n.Children[0], removed
		}
		return n, removed
	}
	n.Children[idx] = newEnd
	return n, removed
}

// RemoveSourceOp is RemoveSource's operation-granularity counterpart: it
// stops at the first operation child it meets (rather than descending all
// the way to a leaf operand) and removes that whole subtree, returning it
// to the caller — used by planners that want to detach an entire
// already-ordered segment instead of a single operand.
func RemoveSourceOp(root *Node) (*Node, *Node) {
	return popEndOp(root, true)
}

// RemoveDestinationOp is RemoveSourceOp's mirror.
func RemoveDestinationOp(root *Node) (*Node, *Node) {
	return popEndOp(root, false)
}

func popEndOp(n *Node, source bool) (*Node, *Node) {
	if n == nil || n.IsOperand() {
		return n, nil
	}
	if n.Op == Transpose {
		child, removed := popEndOp(n.Children[0], !source)
		if child == nil {
			return nil, removed
		}
		n.Children[0] = child
		return n, removed
	}

	idx := 0
	if !source {
		idx = len(n.Children) - 1
	}
	end := n.Children[idx]
	if end.IsOperation() {
		n.Children = dropAt(n.Children, idx)
		if len(n.Children) == 1 {
			return n.Children[0], end
		}
		return n, end
	}
	// end is already a leaf operand: there is no operation child on this
	// side to stop at, so nothing is removed.
	return n, nil
}

func dropAt(children []*Node, idx int) []*Node {
	out := make([]*Node, 0, len(children)-1)
	out = append(out, children[:idx]...)
	out = append(out, children[idx+1:]...)
	return out
}

// MultiplyToLeft wraps root in a new MUL node whose left child is a fresh
// operand bound to m, inheriting root's current source domain as its own
// destination domain so the chain stays consistent.
func MultiplyToLeft(root *Node, m MatrixHandle) *Node {
	return wrapWith(root, Mul, true, m)
}

// MultiplyToRight is MultiplyToLeft's mirror, appending to the right.
func MultiplyToRight(root *Node, m MatrixHandle) *Node {
	return wrapWith(root, Mul, false, m)
}

// AddToLeft wraps root in a new ADD node whose left child is a fresh
// operand bound to m, spanning root's own source and destination domains.
func AddToLeft(root *Node, m MatrixHandle) *Node {
	return wrapWith(root, Add, true, m)
}

// AddToRight is AddToLeft's mirror, appending to the right.
func AddToRight(root *Node, m MatrixHandle) *Node {
	return wrapWith(root, Add, false, m)
}

func wrapWith(root *Node, op OpKind, left bool, m MatrixHandle) *Node {
	var src, dest string
	switch {
	case op == Add:
		src, dest = Source(root), Destination(root)
	case left:
		src, dest = Source(root), Source(root)
	default:
		src, dest = Destination(root), Destination(root)
	}
	neighbour := &Node{Operand: &Operand{
		Matrix:     m,
		Resolved:   m.Resolved(),
		SrcDomain:  src,
		DestDomain: dest,
	}}
	if left {
		return &Node{Op: op, Children: []*Node{neighbour, root}}
	}
	return &Node{Op: op, Children: []*Node{root, neighbour}}
}
