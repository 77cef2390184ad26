package spec

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Pimzino/claude-code-spec-workflow/tasks"
)

// taskLineRe mirrors the tasks engine's line grammar; the executor must agree
// with the parser on what counts as a task line.
var taskLineRe = regexp.MustCompile(`^\s*-\s*\[([x\s]*)\]\s*([0-9]+(?:\.[0-9]+)*)\s*[:.]*\s*(.+)$`)

// CompleteTask marks the checkbox of one task in a tasks.md file. It is the
// only writer of spec documents in the whole system: it rewrites exactly the
// characters inside the matched task's checkbox and preserves every other
// byte of the file, so repeated parses before and after differ only in that
// task's status.
//
// It returns true when the file was changed, false when the task was already
// complete. An id that fails validation is an error before any file access;
// an id not present in the document is a not-found error.
func CompleteTask(tasksPath, id string) (bool, error) {
	if err := tasks.ValidateID(id); err != nil {
		return false, err
	}

	data, err := os.ReadFile(tasksPath)
	if err != nil {
		return false, fmt.Errorf("read tasks document: %w", err)
	}
	content := string(data)

	lines := strings.Split(content, "\n")
	found := false
	for i, line := range lines {
		lineID, boxStart, boxEnd, ok := taskLineCheckbox(line)
		if !ok || lineID != id {
			continue
		}
		found = true
		if strings.Contains(line[boxStart:boxEnd], "x") {
			return false, nil // already complete
		}
		lines[i] = line[:boxStart] + "x" + line[boxEnd:]
		break
	}
	if !found {
		return false, fmt.Errorf("task %s not found in %s", id, filepath.Base(tasksPath))
	}

	updated := strings.Join(lines, "\n")
	info, err := os.Stat(tasksPath)
	if err != nil {
		return false, fmt.Errorf("stat tasks document: %w", err)
	}
	if err := os.WriteFile(tasksPath, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("write tasks document: %w", err)
	}
	return true, nil
}

// taskLineCheckbox locates the checkbox interior of a task line and extracts
// the task id, returning ok=false for lines that are not task lines.
func taskLineCheckbox(line string) (id string, boxStart, boxEnd int, ok bool) {
	m := taskLineRe.FindStringSubmatchIndex(line)
	if m == nil {
		return "", 0, 0, false
	}
	// Submatch 1 is the checkbox interior, submatch 2 the dotted id.
	return line[m[4]:m[5]], m[2], m[3], true
}
