// Package spec models the on-disk layout of a spec-driven project: the
// .claude/specs/<name>/ directories holding requirements.md, design.md, and
// tasks.md, plus the steering documents beside them. It reads each document
// once into memory and hands the text to the tasks engine, so every load
// reflects a single consistent snapshot of the files.
package spec

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Pimzino/claude-code-spec-workflow/tasks"
)

// Well-known file and directory names under a project root.
const (
	ClaudeDir   = ".claude"
	SpecsDir    = "specs"
	SteeringDir = "steering"

	RequirementsFile = "requirements.md"
	DesignFile       = "design.md"
	TasksFile        = "tasks.md"
)

// Phase is the workflow stage a spec is in, derived from which documents
// exist and how many tasks are complete.
type Phase string

const (
	PhaseRequirements   Phase = "requirements"
	PhaseDesign         Phase = "design"
	PhaseTasks          Phase = "tasks"
	PhaseImplementation Phase = "implementation"
	PhaseDone           Phase = "done"
)

// Document is one markdown file belonging to a spec. A missing file is not an
// error; Exists is simply false and Content empty.
type Document struct {
	Path    string `json:"path"`
	Exists  bool   `json:"exists"`
	Content string `json:"content,omitempty"`
}

// Spec is one feature specification directory with its parsed task state.
type Spec struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Phase       Phase  `json:"phase"`

	Requirements Document `json:"requirements"`
	Design       Document `json:"design"`
	Tasks        Document `json:"tasks"`

	TaskList []tasks.Task  `json:"taskList"`
	Summary  tasks.Summary `json:"summary"`
}

var titleCaser = cases.Title(language.English)

// DisplayName converts a kebab-case spec name into a human-readable title,
// e.g. "user-auth" -> "User Auth".
func DisplayName(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "-", " "))
}

// SpecsRoot returns the specs directory under a project root.
func SpecsRoot(projectRoot string) string {
	return filepath.Join(projectRoot, ClaudeDir, SpecsDir)
}

// SteeringRoot returns the steering directory under a project root.
func SteeringRoot(projectRoot string) string {
	return filepath.Join(projectRoot, ClaudeDir, SteeringDir)
}

// List returns the names of all spec directories under the project root,
// sorted. A project without a specs directory has zero specs, not an error.
func List(projectRoot string) ([]string, error) {
	entries, err := os.ReadDir(SpecsRoot(projectRoot))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read specs dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Load reads one spec's documents and parses its task list. The named spec
// directory must exist; its individual documents need not.
func Load(projectRoot, name string) (*Spec, error) {
	dir := filepath.Join(SpecsRoot(projectRoot), name)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("spec %s: %w", name, err)
	}

	s := &Spec{
		Name:        name,
		DisplayName: DisplayName(name),
	}
	s.Requirements = readDocument(filepath.Join(dir, RequirementsFile))
	s.Design = readDocument(filepath.Join(dir, DesignFile))
	s.Tasks = readDocument(filepath.Join(dir, TasksFile))

	if s.Tasks.Exists {
		s.TaskList, s.Summary = tasks.LoadAll(s.Tasks.Content)
	}
	s.Phase = phaseOf(s)
	return s, nil
}

// readDocument reads a markdown file in one call so the content is a single
// snapshot. Absence is recorded, not returned as an error.
func readDocument(path string) Document {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{Path: path}
	}
	return Document{Path: path, Exists: true, Content: string(data)}
}

func phaseOf(s *Spec) Phase {
	switch {
	case !s.Requirements.Exists:
		return PhaseRequirements
	case !s.Design.Exists:
		return PhaseDesign
	case !s.Tasks.Exists:
		return PhaseTasks
	case s.Summary.TotalTasks > 0 && s.Summary.PendingTasks == 0:
		return PhaseDone
	default:
		return PhaseImplementation
	}
}

// LoadTasksDocument reads a spec's tasks.md and returns its text. It is the
// read half of the completion executor and the backing call for every task
// query mode.
func LoadTasksDocument(projectRoot, name string) (string, error) {
	path := filepath.Join(SpecsRoot(projectRoot), name, TasksFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read tasks document: %w", err)
	}
	return string(data), nil
}
