package tasks

// Ready reports whether the pending task at index i has every prerequisite
// satisfied:
//
//   - its parent, when a task with the parent id exists in the document, is
//     completed (a dotted id whose parent is absent does not block);
//   - every sibling ordered before it in its sibling group is completed.
//
// No other dependency signal is considered. Free-text references and
// cross-branch ids are deliberately out of scope.
func (g *Graph) Ready(i int) bool {
	t := &g.Tasks[i]
	if t.Completed() {
		return false
	}
	if t.ParentTaskID != "" {
		if parent, ok := g.ByID(t.ParentTaskID); ok && !parent.Completed() {
			return false
		}
	}
	for _, si := range g.Siblings(i) {
		if si == i {
			break
		}
		if !g.Tasks[si].Completed() {
			return false
		}
	}
	return true
}

// ReadyTasks returns the indexes of all pending tasks whose prerequisites
// hold, in document order.
func (g *Graph) ReadyTasks() []int {
	var ready []int
	for i := range g.Tasks {
		if g.Ready(i) {
			ready = append(ready, i)
		}
	}
	return ready
}
