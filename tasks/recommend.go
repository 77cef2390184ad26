package tasks

import "sort"

// Recommend selects at most one next actionable task from a parsed task list.
// The second result mirrors Summary.ExecutionReady: it is true whenever a
// recommendation exists.
//
// Policy, in order:
//
//  1. No pending tasks: no recommendation.
//  2. Nothing completed yet: the first pending task in document order. With an
//     empty completion set no dependency can be violated, so none are checked.
//  3. Otherwise the ready set (see Graph.Ready) sorted by depth ascending then
//     numeric id ascending; shallower tasks outrank their subtasks.
//  4. Ready set empty: fall back to the first pending task in document order.
//     The recommender never reports "stuck" because of dependency-inference
//     gaps; callers that need strict prerequisite ordering must re-check the
//     recommendation against Graph.Ready themselves.
func Recommend(list []Task) (*Task, bool) {
	g := NewGraph(list)

	firstPending := -1
	completed := 0
	for i := range g.Tasks {
		switch {
		case g.Tasks[i].Completed():
			completed++
		case firstPending < 0:
			firstPending = i
		}
	}
	if firstPending < 0 {
		return nil, false
	}
	if completed == 0 {
		return &g.Tasks[firstPending], true
	}

	ready := g.ReadyTasks()
	if len(ready) == 0 {
		return &g.Tasks[firstPending], true
	}
	sort.SliceStable(ready, func(a, b int) bool {
		ta, tb := &g.Tasks[ready[a]], &g.Tasks[ready[b]]
		if da, db := ta.Depth(), tb.Depth(); da != db {
			return da < db
		}
		return CompareIDs(ta.ID, tb.ID) < 0
	})
	return &g.Tasks[ready[0]], true
}
