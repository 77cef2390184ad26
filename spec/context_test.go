package spec

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFormatSpecContext(t *testing.T) {
	root := t.TempDir()
	writeSpec(t, root, "user-auth", map[string]string{
		RequirementsFile: "# Requirements\nusers can log in",
		TasksFile:        "- [x] 1. Model\n- [ ] 2. Handlers",
	})
	s, err := Load(root, "user-auth")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	out := FormatSpecContext(s)
	for _, want := range []string{
		"Specification Context: User Auth",
		"Progress: 1/2 tasks complete (50%)",
		"users can log in",
		"_design.md not created yet_",
		"- [ ] 2. Handlers",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("context output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSteeringContext(t *testing.T) {
	root := t.TempDir()
	out := FormatSteeringContext(root)
	if !strings.Contains(out, "No steering documents found") {
		t.Errorf("expected missing-steering note, got:\n%s", out)
	}

	dir := SteeringRoot(root)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir steering: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tech.md"), []byte("# Tech\nGo services"), 0o644); err != nil {
		t.Fatalf("write tech.md: %v", err)
	}
	out = FormatSteeringContext(root)
	if !strings.Contains(out, "Go services") {
		t.Errorf("steering context missing document body:\n%s", out)
	}
	if strings.Contains(out, "No steering documents found") {
		t.Errorf("missing-steering note present with docs on disk:\n%s", out)
	}
}
