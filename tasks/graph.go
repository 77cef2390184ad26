package tasks

import (
	"sort"
	"strconv"
	"strings"
)

// ParentID returns the id with its last dot-separated component removed, or
// "" for a top-level id.
func ParentID(id string) string {
	i := strings.LastIndex(id, ".")
	if i < 0 {
		return ""
	}
	return id[:i]
}

// CompareIDs orders two dotted numeric ids by component-wise numeric
// comparison, so "2.9" sorts before "2.10". A shorter id that is a prefix of
// a longer one sorts first.
func CompareIDs(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, _ := strconv.Atoi(as[i])
		bn, _ := strconv.Atoi(bs[i])
		if an != bn {
			if an < bn {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

// Graph is an indexed arena over one parsed task list. The indexes are built
// once per invocation; all parent and sibling lookups are then map hits
// instead of repeated linear scans. Tasks holds document order.
type Graph struct {
	Tasks      []Task
	byID       map[string]int
	childrenOf map[string][]int // parent id ("" for roots) -> ordered sibling set
}

// NewGraph indexes a parsed task list. The slice is not copied; callers must
// not mutate it while the graph is in use.
func NewGraph(list []Task) *Graph {
	g := &Graph{
		Tasks:      list,
		byID:       make(map[string]int, len(list)),
		childrenOf: make(map[string][]int),
	}
	for i, t := range list {
		if _, dup := g.byID[t.ID]; !dup {
			g.byID[t.ID] = i
		}
		g.childrenOf[t.ParentTaskID] = append(g.childrenOf[t.ParentTaskID], i)
	}
	// Sibling sets order numerically regardless of physical document order;
	// duplicate ids keep document order so the result stays deterministic.
	for parent, siblings := range g.childrenOf {
		sort.SliceStable(siblings, func(a, b int) bool {
			return CompareIDs(g.Tasks[siblings[a]].ID, g.Tasks[siblings[b]].ID) < 0
		})
		g.childrenOf[parent] = siblings
	}
	return g
}

// ByID returns the task with the given id, or ok=false when absent.
func (g *Graph) ByID(id string) (*Task, bool) {
	i, ok := g.byID[id]
	if !ok {
		return nil, false
	}
	return &g.Tasks[i], true
}

// Siblings returns the indexes of the sibling group containing the task at
// index i, in numeric id order.
func (g *Graph) Siblings(i int) []int {
	return g.childrenOf[g.Tasks[i].ParentTaskID]
}
