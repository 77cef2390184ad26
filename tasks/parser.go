package tasks

import (
	"regexp"
	"strings"
)

// Line grammar. A task line is a list item whose checkbox is followed by a
// dotted numeric id and a description; metadata lines carry underscore-wrapped
// Requirements/Leverage annotations anywhere in a task's trailing block.
var (
	taskLineRe     = regexp.MustCompile(`^\s*-\s*\[([x\s]*)\]\s*([0-9]+(?:\.[0-9]+)*)\s*[:.]*\s*(.+)$`)
	requirementsRe = regexp.MustCompile(`_Requirements:\s*(.+?)(?:_|$)`)
	leverageRe     = regexp.MustCompile(`_Leverage:\s*(.+?)(?:_|$)`)
)

// lineKind tags one document line during the first parse stage.
type lineKind int

const (
	lineTaskStart lineKind = iota
	lineMetadata
	lineBlank
	lineOther
)

// lineEvent is the tagged form of a single document line. Parsing is a fold
// over these events rather than a scan with a movable index, so each stage is
// testable on its own.
type lineEvent struct {
	kind     lineKind
	raw      string
	indented bool // leading whitespace present
	listItem bool // continuation of a markdown list ("- ...")

	// taskStart fields
	id        string
	desc      string
	completed bool

	// metadata fields
	requirements string
	leverage     string
}

// scanLines performs stage one: classify every line, carrying no state.
func scanLines(doc string) []lineEvent {
	lines := strings.Split(doc, "\n")
	events := make([]lineEvent, 0, len(lines))
	for _, raw := range lines {
		events = append(events, classifyLine(raw))
	}
	return events
}

func classifyLine(raw string) lineEvent {
	trimmed := strings.TrimSpace(raw)
	ev := lineEvent{
		kind:     lineOther,
		raw:      raw,
		indented: len(raw) > 0 && (raw[0] == ' ' || raw[0] == '\t'),
		listItem: strings.HasPrefix(trimmed, "-"),
	}
	if trimmed == "" {
		ev.kind = lineBlank
		return ev
	}
	if m := taskLineRe.FindStringSubmatch(raw); m != nil {
		ev.kind = lineTaskStart
		ev.completed = strings.Contains(m[1], "x")
		ev.id = m[2]
		ev.desc = strings.TrimSpace(m[3])
		return ev
	}
	req := requirementsRe.FindStringSubmatch(raw)
	lev := leverageRe.FindStringSubmatch(raw)
	if req != nil || lev != nil {
		ev.kind = lineMetadata
		if req != nil {
			ev.requirements = strings.TrimSpace(req[1])
		}
		if lev != nil {
			ev.leverage = strings.TrimSpace(lev[1])
		}
	}
	return ev
}

// Parse extracts the ordered task list from a document snapshot. Malformed
// lines are skipped; they never fail the parse or hide later valid tasks.
// Output order is document order, which downstream consumers retain as the
// tie-break of last resort.
func Parse(doc string) []Task {
	return assemble(scanLines(doc))
}

// assemble performs stage two: fold line events into Task records. A task's
// metadata block extends until the next task line, or until a blank line is
// followed by a non-indented line that is not a list continuation.
func assemble(events []lineEvent) []Task {
	var out []Task
	cur := -1 // index into out of the task whose metadata block is open
	blankSeen := false

	for _, ev := range events {
		switch ev.kind {
		case lineTaskStart:
			status := StatusPending
			if ev.completed {
				status = StatusCompleted
			}
			out = append(out, Task{
				ID:           ev.id,
				Description:  ev.desc,
				Status:       status,
				RawText:      ev.raw,
				ParentTaskID: ParentID(ev.id),
			})
			cur = len(out) - 1
			blankSeen = false

		case lineBlank:
			blankSeen = true

		case lineMetadata, lineOther:
			if blankSeen && !ev.indented && !ev.listItem {
				cur = -1
			}
			blankSeen = false
			if cur < 0 || ev.kind != lineMetadata {
				continue
			}
			// Last occurrence wins within a block.
			if ev.requirements != "" {
				out[cur].RequirementsRef = ev.requirements
			}
			if ev.leverage != "" {
				out[cur].LeverageRef = ev.leverage
			}
		}
	}
	return out
}
