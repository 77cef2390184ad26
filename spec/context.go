package spec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Steering document file names under .claude/steering/.
var steeringFiles = []string{"product.md", "tech.md", "structure.md"}

// FormatSpecContext renders one spec's documents as a delimited markdown
// block suitable for pasting into an agent session. Missing documents are
// noted rather than omitted so the reader can see which phases exist.
func FormatSpecContext(s *Spec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Specification Context: %s\n\n", s.DisplayName)
	fmt.Fprintf(&b, "Spec: %s (phase: %s)\n", s.Name, s.Phase)
	if s.Summary.TotalTasks > 0 {
		fmt.Fprintf(&b, "Progress: %d/%d tasks complete (%d%%)\n",
			s.Summary.CompletedTasks, s.Summary.TotalTasks, s.Summary.CompletionPercentage)
	}
	b.WriteString("\n")

	writeDocumentSection(&b, "Requirements", s.Requirements)
	writeDocumentSection(&b, "Design", s.Design)
	writeDocumentSection(&b, "Tasks", s.Tasks)
	return b.String()
}

// FormatSteeringContext renders the project's steering documents as one
// delimited block. Projects without steering docs produce a short note
// instead of an empty block.
func FormatSteeringContext(projectRoot string) string {
	var b strings.Builder
	b.WriteString("## Steering Context\n\n")

	any := false
	for _, name := range steeringFiles {
		doc := readDocument(filepath.Join(SteeringRoot(projectRoot), name))
		if !doc.Exists {
			continue
		}
		any = true
		writeDocumentSection(&b, strings.TrimSuffix(name, ".md"), doc)
	}
	if !any {
		b.WriteString("No steering documents found. Run spec-workflow setup to create them.\n")
	}
	return b.String()
}

func writeDocumentSection(b *strings.Builder, title string, doc Document) {
	fmt.Fprintf(b, "### %s\n", title)
	if !doc.Exists {
		fmt.Fprintf(b, "_%s not created yet_\n\n", filepath.Base(doc.Path))
		return
	}
	fmt.Fprintf(b, "--- %s ---\n", filepath.Base(doc.Path))
	b.WriteString(strings.TrimRight(doc.Content, "\n"))
	b.WriteString("\n--- end ---\n\n")
}

// ProjectRootOrDefault resolves the project root flag, defaulting to the
// current working directory.
func ProjectRootOrDefault(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return wd, nil
}
