package tasks

import (
	"fmt"
	"regexp"
)

// idRe is the boundary contract for caller-supplied task ids: dot-separated
// non-negative integers with no leading or trailing dot.
var idRe = regexp.MustCompile(`^\d+(?:\.\d+)*$`)

// ValidateID rejects a caller-supplied task id that does not match the dotted
// numeric grammar. This is the one loud failure in the package; every other
// data-shape issue degrades to a skip, a fallback, or an absence.
func ValidateID(id string) error {
	if !idRe.MatchString(id) {
		return fmt.Errorf("invalid task id %q: expected dot-separated digits such as 2 or 3.1", id)
	}
	return nil
}

// The three read modes below are the boundary of the engine. Each one
// re-parses the supplied document text in full; nothing is cached between
// calls, so results always reflect the snapshot the caller read. Invoked on
// the same snapshot they describe the same graph.

// LoadSummary parses a document and returns its summary alone.
func LoadSummary(doc string) Summary {
	return Summarize(Parse(doc))
}

// LoadAll parses a document and returns the full task list with its summary.
func LoadAll(doc string) ([]Task, Summary) {
	list := Parse(doc)
	return list, Summarize(list)
}

// LoadContext parses a document and returns the named task with its local
// context: parent, sibling count, and document-order neighbors. It returns
// ok=false when no task with the id exists, and an error only for an id that
// fails validation.
func LoadContext(doc, id string) (*Context, bool, error) {
	if err := ValidateID(id); err != nil {
		return nil, false, err
	}
	list := Parse(doc)
	g := NewGraph(list)

	pos := -1
	for i := range g.Tasks {
		if g.Tasks[i].ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return nil, false, nil
	}

	c := &Context{
		Task:         &g.Tasks[pos],
		SiblingCount: len(g.Siblings(pos)),
	}
	for i := range g.Tasks {
		c.TotalTasks++
		if g.Tasks[i].Completed() {
			c.CompletedTasks++
		}
	}
	if parent, ok := g.ByID(g.Tasks[pos].ParentTaskID); ok {
		c.ParentTask = parent
	}
	if pos > 0 {
		c.PreviousTask = &g.Tasks[pos-1]
	}
	if pos+1 < len(g.Tasks) {
		c.NextTask = &g.Tasks[pos+1]
	}
	return c, true, nil
}
