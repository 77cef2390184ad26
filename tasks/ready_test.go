package tasks

import "testing"

func readySet(t *testing.T, doc string) map[string]bool {
	t.Helper()
	g := NewGraph(Parse(doc))
	set := make(map[string]bool)
	for _, i := range g.ReadyTasks() {
		set[g.Tasks[i].ID] = true
	}
	return set
}

func TestReady_ParentMustBeCompleted(t *testing.T) {
	set := readySet(t, "- [ ] 1. Parent\n- [ ] 1.1 Child")
	if set["1.1"] {
		t.Error("1.1 ready while parent 1 is pending")
	}
	if !set["1"] {
		t.Error("1 not ready; it has no prerequisites")
	}

	set = readySet(t, "- [x] 1. Parent\n- [ ] 1.1 Child")
	if !set["1.1"] {
		t.Error("1.1 not ready after parent completed")
	}
}

func TestReady_AbsentParentDoesNotBlock(t *testing.T) {
	// 7.2 references parent 7, which does not exist in the document. The
	// hierarchical reference is vacuously satisfied.
	set := readySet(t, "- [x] 1. Done\n- [ ] 7.2 Orphan")
	if !set["7.2"] {
		t.Error("7.2 not ready; absent parent must not block")
	}
}

func TestReady_PrecedingSiblingsMustBeCompleted(t *testing.T) {
	set := readySet(t, "- [x] 1. Parent\n- [ ] 1.1 First\n- [ ] 1.2 Second")
	if !set["1.1"] {
		t.Error("1.1 not ready")
	}
	if set["1.2"] {
		t.Error("1.2 ready while preceding sibling 1.1 is pending")
	}

	set = readySet(t, "- [x] 1. Parent\n- [x] 1.1 First\n- [ ] 1.2 Second")
	if !set["1.2"] {
		t.Error("1.2 not ready after 1.1 completed")
	}
}

func TestReady_SiblingPrecedenceIsNumeric(t *testing.T) {
	// 2.9 precedes 2.10 numerically even though 2.10 appears first in the
	// document.
	set := readySet(t, "- [x] 2. Parent\n- [ ] 2.10 Later\n- [ ] 2.9 Earlier")
	if !set["2.9"] {
		t.Error("2.9 not ready")
	}
	if set["2.10"] {
		t.Error("2.10 ready while 2.9 is pending")
	}
}

func TestReady_MonotonicUntilCompleted(t *testing.T) {
	// Once prerequisites hold, the task stays in the ready set on every
	// subsequent call until it completes.
	doc := "- [x] 1. Parent\n- [x] 1.1 First\n- [ ] 1.2 Second"
	for call := 0; call < 3; call++ {
		if !readySet(t, doc)["1.2"] {
			t.Fatalf("call %d: 1.2 dropped out of the ready set", call)
		}
	}
	done := "- [x] 1. Parent\n- [x] 1.1 First\n- [x] 1.2 Second"
	if readySet(t, done)["1.2"] {
		t.Error("1.2 still ready after completion")
	}
}
