package dashboard

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Pimzino/claude-code-spec-workflow/spec"
)

// activityWindow is how recently a spec document must have changed for its
// project to count as active.
const activityWindow = 10 * time.Minute

// maxDiscoveryDepth bounds the directory walk below the discovery root.
const maxDiscoveryDepth = 3

// Project is one discovered spec-workflow project.
type Project struct {
	Path       string    `json:"path"`
	Name       string    `json:"name"`
	SpecCount  int       `json:"specCount"`
	Active     bool      `json:"active"`
	LastChange time.Time `json:"lastChange,omitempty"`
}

// Discover walks root looking for directories containing .claude/specs.
// The walk is depth-bounded and purely filesystem-based; no process
// inspection is involved. A project is active when any of its spec documents
// changed within the activity window.
func Discover(root string, now time.Time) ([]Project, error) {
	var projects []Project

	var walk func(dir string, depth int) error
	walk = func(dir string, depth int) error {
		if p, ok := inspectProject(dir, now); ok {
			projects = append(projects, p)
			return nil // projects do not nest
		}
		if depth >= maxDiscoveryDepth {
			return nil
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil // unreadable directories are skipped, not fatal
		}
		for _, e := range entries {
			if !e.IsDir() || e.Name() == spec.ClaudeDir || e.Name()[0] == '.' {
				continue
			}
			if err := walk(filepath.Join(dir, e.Name()), depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root, 0); err != nil {
		return nil, err
	}
	return projects, nil
}

// inspectProject reports whether dir is a spec-workflow project and, if so,
// summarizes its specs and recent activity.
func inspectProject(dir string, now time.Time) (Project, bool) {
	specsDir := spec.SpecsRoot(dir)
	info, err := os.Stat(specsDir)
	if err != nil || !info.IsDir() {
		return Project{}, false
	}

	p := Project{
		Path: dir,
		Name: filepath.Base(dir),
	}
	entries, err := os.ReadDir(specsDir)
	if err != nil {
		return p, true
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p.SpecCount++
		if mt := latestDocChange(filepath.Join(specsDir, e.Name())); mt.After(p.LastChange) {
			p.LastChange = mt
		}
	}
	p.Active = !p.LastChange.IsZero() && now.Sub(p.LastChange) <= activityWindow
	return p, true
}

func latestDocChange(specDir string) time.Time {
	var latest time.Time
	for _, name := range []string{spec.RequirementsFile, spec.DesignFile, spec.TasksFile} {
		if info, err := os.Stat(filepath.Join(specDir, name)); err == nil {
			if mt := info.ModTime(); mt.After(latest) {
				latest = mt
			}
		}
	}
	return latest
}
