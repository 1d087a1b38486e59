package orderer

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/graphcore/expr"
)

// PlanCache memoizes Order's result for a given (expression set, bound
// variable set) pair behind a bounded LRU, so a query planner re-ordering
// the same pattern shape across repeated executions (a prepared statement,
// or a hot path in a long-lived query plan cache) pays the backtracking
// search once. Capacity is caller-chosen; a zero or negative size disables
// caching rather than panicking, since an un-cacheable planner is still a
// valid planner.
type PlanCache struct {
	cache *lru.Cache[string, []*Plan]
}

// NewPlanCache builds a PlanCache holding up to size entries. size <= 0
// yields a cache that never stores anything, so callers always get a
// non-nil PlanCache back regardless of configuration.
func NewPlanCache(size int) *PlanCache {
	if size <= 0 {
		return &PlanCache{}
	}
	c, _ := lru.New[string, []*Plan](size)
	return &PlanCache{cache: c}
}

// OrderCached behaves like Order but consults pc first, keyed on the
// expression list's canonical form plus the bound-variable set; a hit
// skips the backtracking search and transposes entirely. pc may be nil,
// in which case this always recomputes.
func (pc *PlanCache) OrderCached(exprs []*expr.Node, bound map[string]bool, fi FilterInfo, qg QueryGraph) []*Plan {
	if pc == nil || pc.cache == nil {
		return Order(exprs, bound, fi, qg)
	}
	key := planCacheKey(exprs, bound)
	if plans, ok := pc.cache.Get(key); ok {
		return plans
	}
	plans := Order(exprs, bound, fi, qg)
	pc.cache.Add(key, plans)
	return plans
}

// Len reports how many arrangements are currently cached.
func (pc *PlanCache) Len() int {
	if pc == nil || pc.cache == nil {
		return 0
	}
	return pc.cache.Len()
}

// Purge evicts every cached arrangement, forcing the next OrderCached call
// for any key to recompute — needed when the store's label/relation
// registry changes in a way that could change labelScore's answers for an
// already-cached shape.
func (pc *PlanCache) Purge() {
	if pc == nil || pc.cache == nil {
		return
	}
	pc.cache.Purge()
}

// planCacheKey builds a canonical string identifying exprs's shape and
// bound's membership: operand domains, labels, relation types and
// var-length range in tree order, plus the sorted bound alias set. Two
// calls with the same pattern shape but different Go slice/map instances
// collide on the same key, which is the point.
func planCacheKey(exprs []*expr.Node, bound map[string]bool) string {
	var b strings.Builder
	for i, e := range exprs {
		if i > 0 {
			b.WriteByte('|')
		}
		writeNodeKey(&b, e)
	}
	b.WriteByte('#')
	names := make([]string, 0, len(bound))
	for name, on := range bound {
		if on {
			names = append(names, name)
		}
	}
	sortStrings(names)
	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(name)
	}
	return b.String()
}

func writeNodeKey(b *strings.Builder, n *expr.Node) {
	if n == nil {
		return
	}
	if n.IsOperand() {
		o := n.Operand
		b.WriteString(o.SrcDomain)
		b.WriteByte('>')
		b.WriteString(o.DestDomain)
		b.WriteByte(':')
		b.WriteString(o.EdgeAlias)
		b.WriteByte(':')
		b.WriteString(o.Label)
		b.WriteByte(':')
		b.WriteString(o.RelationType)
		if o.Diagonal {
			b.WriteString(":d")
		}
		if o.VarLength {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(o.MinHops))
			b.WriteByte('-')
			b.WriteString(strconv.Itoa(o.MaxHops))
		}
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Op.String())
	for _, c := range n.Children {
		b.WriteByte(' ')
		writeNodeKey(b, c)
	}
	b.WriteByte(')')
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
