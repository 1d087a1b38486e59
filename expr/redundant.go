package expr

// RemoveRedundantOperands implements spec §4.4's remove_redundant_operands:
// walked in the order the expressions will execute, whenever an earlier
// expression's destination is resolved by a trailing label (diagonal)
// operand, a later expression's leading label operand for that same alias
// is redundant — the label was already confirmed — and is dropped. An
// expression that loses every operand this way is removed from the result.
func RemoveRedundantOperands(exprs []*Node) []*Node {
	confirmed := map[string]bool{}
	out := make([]*Node, 0, len(exprs))
	for _, e := range exprs {
		for e != nil {
			lead, ok := leadingOperand(e)
			if !ok || !lead.Diagonal || !confirmed[lead.SrcDomain] {
				break
			}
			e, _ = RemoveSource(e)
		}
		if e == nil {
			continue
		}
		if trail, ok := trailingOperand(e); ok && trail.Diagonal {
			confirmed[trail.DestDomain] = true
		}
		out = append(out, e)
	}
	return out
}

// leadingOperand returns the operand that determines e's Source, i.e. the
// same leaf RemoveSource would pop — without mutating e.
func leadingOperand(n *Node) (*Operand, bool) {
	if n == nil {
		return nil, false
	}
	if n.IsOperand() {
		return n.Operand, true
	}
	if n.Op == Transpose {
		return trailingOperand(n.Children[0])
	}
	return leadingOperand(n.Children[0])
}

// trailingOperand returns the operand that determines e's Destination.
func trailingOperand(n *Node) (*Operand, bool) {
	if n == nil {
		return nil, false
	}
	if n.IsOperand() {
		return n.Operand, true
	}
	if n.Op == Transpose {
		return leadingOperand(n.Children[0])
	}
	if n.Op == Add {
		return trailingOperand(n.Children[0])
	}
	return trailingOperand(n.Children[len(n.Children)-1])
}
