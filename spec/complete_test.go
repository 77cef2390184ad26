package spec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTasksFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), TasksFile)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write tasks file: %v", err)
	}
	return path
}

func TestCompleteTask(t *testing.T) {
	path := writeTasksFile(t, "# Tasks\n\n- [x] 1. Setup\n- [ ] 2. Build\n  - _Requirements: 1.1_\n- [ ] 2.1 Sub\n")

	changed, err := CompleteTask(path, "2")
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if !changed {
		t.Fatal("CompleteTask reported no change")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "# Tasks\n\n- [x] 1. Setup\n- [x] 2. Build\n  - _Requirements: 1.1_\n- [ ] 2.1 Sub\n"
	if string(data) != want {
		t.Errorf("document after completion:\n%q\nwant:\n%q", data, want)
	}
}

func TestCompleteTask_PreservesEveryOtherByte(t *testing.T) {
	// Odd spacing, trailing whitespace, and prose must come through
	// untouched; only the one checkbox changes.
	original := "prose before\n\n  -  [ ]  3.1:  Deploy it  \n\ntrailing prose\n"
	path := writeTasksFile(t, original)

	if _, err := CompleteTask(path, "3.1"); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	data, _ := os.ReadFile(path)
	got := string(data)
	if !strings.Contains(got, "-  [x]  3.1:  Deploy it  ") {
		t.Errorf("checkbox not rewritten in place:\n%q", got)
	}
	if strings.Replace(got, "[x]", "[ ]", 1) != original {
		t.Errorf("bytes outside the checkbox changed:\n%q\nwant base:\n%q", got, original)
	}
}

func TestCompleteTask_AlreadyComplete(t *testing.T) {
	path := writeTasksFile(t, "- [x] 1. Done\n")
	changed, err := CompleteTask(path, "1")
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if changed {
		t.Error("CompleteTask reported a change for an already-complete task")
	}
}

func TestCompleteTask_NotFound(t *testing.T) {
	path := writeTasksFile(t, "- [ ] 1. Only\n")
	if _, err := CompleteTask(path, "9"); err == nil {
		t.Fatal("CompleteTask succeeded for an absent task id")
	}
}

func TestCompleteTask_InvalidID(t *testing.T) {
	path := writeTasksFile(t, "- [ ] 1. Only\n")
	if _, err := CompleteTask(path, "abc"); err == nil {
		t.Fatal("CompleteTask accepted an invalid task id")
	}
}
