// Package orderer implements the Traversal Orderer (spec §4.5): given an
// unordered list of algebraic expressions describing a pattern traversal,
// it scores and arranges them into an executable sequence that maximises
// selectivity at the entry point, inserting transposes where an
// expression's source is not yet resolved by an earlier one.
package orderer

import (
	"sort"

	"github.com/katalvlaran/graphcore/expr"
)

// QueryGraph answers label-lookup questions about the parsed query
// pattern, decoupling the orderer from however a caller represents its
// pattern graph (a parsed Cypher-like AST elsewhere in the host process).
type QueryGraph interface {
	// Labels returns the label names the query binds to alias, or nil if
	// the pattern places no label constraint on it.
	Labels(alias string) []string
}

// FilterInfo summarises a query's filter (WHERE) tree the way the orderer
// needs it: Filtered is the multiset of aliases appearing anywhere in a
// predicate, Independent is the multiset of aliases appearing alone in a
// predicate (i.e. that predicate mentions no other alias).
type FilterInfo struct {
	Filtered    map[string]int
	Independent map[string]int
}

func (f FilterInfo) presence(alias string) int {
	if f.Filtered[alias] > 0 {
		return 1
	}
	return 0
}

func (f FilterInfo) count(alias string) int {
	return f.Independent[alias]
}

// Plan is one algebraic expression, ordered and possibly rewritten with a
// leading transpose, plus the score it was chosen on — kept for
// diagnostics; the plan cache does not read it.
type Plan struct {
	Expr  *expr.Node
	Score float64
}

// score scaling: later phases must dominate earlier ones entirely (spec
// §4.5 "score_i = score_i + max_over_all_expressions(score_{<i})"). Plain
// addition of a shared constant across every candidate doesn't change
// relative order within a phase, so dominance instead comes from scaling:
// each phase occupies a power-of-two band far above the one below it. Label and
// filter scores are small (bounded by query arity), so these bands leave
// enormous headroom; see DESIGN.md for the chosen constants.
const (
	filterScale = 1 << 20
	boundScale  = 1 << 40
)

func labelScore(n *expr.Node, qg QueryGraph) int {
	if expr.VariableLength(n) {
		return 0
	}
	return len(qg.Labels(expr.Source(n))) + len(qg.Labels(expr.Destination(n)))
}

func edgeAliasOf(n *expr.Node) string {
	for _, o := range flattenLeaves(n) {
		if o.EdgeAlias != "" {
			return o.EdgeAlias
		}
	}
	return ""
}

func flattenLeaves(n *expr.Node) []*expr.Operand {
	if n == nil {
		return nil
	}
	if n.IsOperand() {
		return []*expr.Operand{n.Operand}
	}
	var out []*expr.Operand
	for _, c := range n.Children {
		out = append(out, flattenLeaves(c)...)
	}
	return out
}

func filterScore(n *expr.Node, fi FilterInfo, maxLabel int) float64 {
	if expr.VariableLength(n) {
		return float64(maxLabel) / 2
	}
	src, dst, edge := expr.Source(n), expr.Destination(n), edgeAliasOf(n)
	s := 2*fi.presence(src) + 2*fi.count(src) + 2*fi.presence(dst) + 2*fi.count(dst) + fi.presence(edge)
	return float64(s)
}

func boundScore(n *expr.Node, bound map[string]bool) int {
	s := 0
	if bound[expr.Source(n)] {
		s++
	}
	if bound[expr.Destination(n)] {
		s++
	}
	return s
}

func combine(label int, filter float64, bound int) float64 {
	return float64(label) + filter*filterScale + float64(bound)*boundScale
}

// Order arranges exprs into an executable sequence: each placed
// expression's source is resolved by some earlier one (or is the entry),
// ties are broken by the three-phase score, and post-ordering/entry-point
// transposes are applied in place. bound names aliases already resolved
// before this traversal segment begins (e.g. by an earlier MATCH clause).
func Order(exprs []*expr.Node, bound map[string]bool, fi FilterInfo, qg QueryGraph) []*Plan {
	if len(exprs) == 0 {
		return nil
	}
	if bound == nil {
		bound = map[string]bool{}
	}

	maxLabel := 0
	for _, e := range exprs {
		if s := labelScore(e, qg); s > maxLabel {
			maxLabel = s
		}
	}

	scores := make([]float64, len(exprs))
	for i, e := range exprs {
		scores[i] = combine(labelScore(e, qg), filterScore(e, fi, maxLabel), boundScore(e, bound))
	}

	order := arrange(exprs, scores)
	order = postOrderTranspose(order)
	order = entryTranspose(order, fi, qg, bound)

	plans := make([]*Plan, len(order))
	byExpr := map[*expr.Node]float64{}
	for i, e := range exprs {
		byExpr[e] = scores[i]
	}
	for i, e := range order {
		plans[i] = &Plan{Expr: e, Score: byExpr[e]}
	}
	return plans
}

// arrange performs the backtracking arrangement search: at each position
// the candidate set is the expressions not yet placed whose source or
// destination matches a domain already touched by a placed expression (or,
// at position 0, every expression). Candidates are tried in descending
// score order; the first that admits a full placement wins. If the
// expressions don't form a connected pattern (a malformed plan upstream),
// arrange degrades by appending whatever remains in its original order
// rather than failing outright.
func arrange(exprs []*expr.Node, scores []float64) []*expr.Node {
	n := len(exprs)
	placed := make([]bool, n)
	order := make([]int, 0, n)
	resolved := map[string]bool{}

	var backtrack func() bool
	backtrack = func() bool {
		if len(order) == n {
			return true
		}
		var candidates []int
		for i := 0; i < n; i++ {
			if placed[i] {
				continue
			}
			if len(order) == 0 || resolved[expr.Source(exprs[i])] || resolved[expr.Destination(exprs[i])] {
				candidates = append(candidates, i)
			}
		}
		if len(candidates) == 0 {
			return false
		}
		sort.SliceStable(candidates, func(a, b int) bool { return scores[candidates[a]] > scores[candidates[b]] })
		for _, c := range candidates {
			placed[c] = true
			order = append(order, c)
			src, dst := expr.Source(exprs[c]), expr.Destination(exprs[c])
			addedSrc, addedDst := !resolved[src], !resolved[dst]
			resolved[src], resolved[dst] = true, true

			if backtrack() {
				return true
			}

			order = order[:len(order)-1]
			placed[c] = false
			if addedSrc {
				delete(resolved, src)
			}
			if addedDst {
				delete(resolved, dst)
			}
		}
		return false
	}

	backtrack()

	out := make([]*expr.Node, 0, n)
	used := make([]bool, n)
	for _, i := range order {
		out = append(out, exprs[i])
		used[i] = true
	}
	for i := 0; i < n; i++ {
		if !used[i] {
			out = append(out, exprs[i])
		}
	}
	return out
}

// postOrderTranspose walks the arranged order left-to-right; any
// expression after the first whose source isn't resolved by a prior one
// is wrapped in a TRANSPOSE so it can be executed in sequence.
func postOrderTranspose(order []*expr.Node) []*expr.Node {
	resolved := map[string]bool{}
	out := make([]*expr.Node, len(order))
	for i, e := range order {
		if i > 0 && !resolved[expr.Source(e)] {
			e = expr.NewOperation(expr.Transpose, e)
		}
		out[i] = e
		resolved[expr.Source(e)] = true
		resolved[expr.Destination(e)] = true
	}
	return out
}

// entryTranspose scores the virtual source-only and destination-only
// expressions of the entry point; if the destination end would have
// ranked higher, the entry is transposed so execution starts from the
// more selective end.
func entryTranspose(order []*expr.Node, fi FilterInfo, qg QueryGraph, bound map[string]bool) []*expr.Node {
	if len(order) == 0 {
		return order
	}
	first := order[0]
	src, dst := expr.Source(first), expr.Destination(first)
	if virtualScore(dst, fi, qg, bound) > virtualScore(src, fi, qg, bound) {
		order[0] = expr.NewOperation(expr.Transpose, first)
	}
	return order
}

func virtualScore(alias string, fi FilterInfo, qg QueryGraph, bound map[string]bool) float64 {
	label := len(qg.Labels(alias))
	filter := float64(2*fi.presence(alias) + 2*fi.count(alias))
	b := 0
	if bound[alias] {
		b = 1
	}
	return combine(label, filter, b)
}
