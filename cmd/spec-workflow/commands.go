package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/Pimzino/claude-code-spec-workflow/internal/version"
	"github.com/Pimzino/claude-code-spec-workflow/scaffold"
	"github.com/Pimzino/claude-code-spec-workflow/spec"
	"github.com/Pimzino/claude-code-spec-workflow/update"
)

// --- setup ---

func cmdSetup(args []string) error {
	fs := flag.NewFlagSet("setup", flag.ExitOnError)
	var (
		project = fs.String("project", "", "project root (default: current directory)")
		force   = fs.Bool("force", false, "overwrite existing command and template files")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	root, err := spec.ProjectRootOrDefault(*project)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	res, err := scaffold.Setup(root, version.Version, *force, logger)
	if err != nil {
		return err
	}
	for _, path := range res.Created {
		fmt.Printf("created  %s\n", path)
	}
	for _, path := range res.Skipped {
		fmt.Printf("kept     %s\n", path)
	}
	return nil
}

// --- context commands ---

func cmdSpecContext(args []string) error {
	fs := flag.NewFlagSet("get-spec-context", flag.ExitOnError)
	project := fs.String("project", "", "project root (default: current directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: spec-workflow get-spec-context <spec>")
	}
	root, err := spec.ProjectRootOrDefault(*project)
	if err != nil {
		return err
	}
	s, err := spec.Load(root, fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Print(spec.FormatSpecContext(s))
	return nil
}

func cmdSteeringContext(args []string) error {
	fs := flag.NewFlagSet("get-steering-context", flag.ExitOnError)
	project := fs.String("project", "", "project root (default: current directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	root, err := spec.ProjectRootOrDefault(*project)
	if err != nil {
		return err
	}
	fmt.Print(spec.FormatSteeringContext(root))
	return nil
}

// --- specs table ---

func cmdSpecs(args []string) error {
	fs := flag.NewFlagSet("specs", flag.ExitOnError)
	project := fs.String("project", "", "project root (default: current directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	root, err := spec.ProjectRootOrDefault(*project)
	if err != nil {
		return err
	}

	names, err := spec.List(root)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("no specs — create one with /spec-create")
		return nil
	}

	fmt.Printf("%-28s %-16s %-10s %s\n", "SPEC", "PHASE", "PROGRESS", "NEXT")
	fmt.Println(strings.Repeat("-", 76))
	for _, name := range names {
		s, err := spec.Load(root, name)
		if err != nil {
			return err
		}
		next := ""
		if s.Summary.RecommendedNextTask != nil {
			next = s.Summary.RecommendedNextTask.ID + " " + s.Summary.RecommendedNextTask.Description
		}
		fmt.Printf("%-28s %-16s %-10s %s\n",
			truncate(s.DisplayName, 27),
			phaseColor(s.Phase),
			fmt.Sprintf("%d%%", s.Summary.CompletionPercentage),
			truncate(next, 20),
		)
	}
	return nil
}

var phaseColors = map[spec.Phase]*color.Color{
	spec.PhaseRequirements:   color.New(color.FgYellow),
	spec.PhaseDesign:         color.New(color.FgYellow),
	spec.PhaseTasks:          color.New(color.FgYellow),
	spec.PhaseImplementation: color.New(color.FgCyan),
	spec.PhaseDone:           color.New(color.FgGreen),
}

func phaseColor(p spec.Phase) string {
	if c, ok := phaseColors[p]; ok {
		return c.Sprintf("%-16s", string(p))
	}
	return string(p)
}

// truncate shortens s to at most n display columns, width-aware so wide
// runes do not break the table.
func truncate(s string, n int) string {
	if runewidth.StringWidth(s) <= n {
		return s
	}
	return runewidth.Truncate(s, n, "…")
}

// --- update ---

func cmdUpdate(_ []string) error {
	ctx := context.Background()
	u := update.New(version.Version)

	rel, err := u.CheckForUpdate(ctx)
	if err != nil {
		return err
	}
	if rel == nil {
		fmt.Printf("spec-workflow %s is up to date\n", version.Version)
		return nil
	}
	fmt.Printf("updating %s -> %s\n", version.Version, rel.Version)
	if err := u.ApplyUpdate(ctx, rel); err != nil {
		return err
	}
	fmt.Println("update applied — restart spec-workflow")
	return nil
}
