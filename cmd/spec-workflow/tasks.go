package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/Pimzino/claude-code-spec-workflow/spec"
	"github.com/Pimzino/claude-code-spec-workflow/tasks"
)

// cmdGetTasks is the task-graph query surface: four modes over one spec's
// tasks.md, each re-reading the document fresh.
func cmdGetTasks(args []string) error {
	fs := flag.NewFlagSet("get-tasks", flag.ExitOnError)
	var (
		project = fs.String("project", "", "project root (default: current directory)")
		mode    = fs.String("mode", "all", "all | single | next-pending | complete")
		jsonOut = fs.Bool("json", false, "print JSON instead of text")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: spec-workflow get-tasks <spec> [task-id] [flags]")
	}
	specName := fs.Arg(0)
	taskID := fs.Arg(1)

	root, err := spec.ProjectRootOrDefault(*project)
	if err != nil {
		return err
	}

	switch *mode {
	case "all":
		doc, err := spec.LoadTasksDocument(root, specName)
		if err != nil {
			return err
		}
		list, summary := tasks.LoadAll(doc)
		if *jsonOut {
			return printJSON(map[string]any{"tasks": list, "summary": summary})
		}
		printTaskList(list)
		printSummary(summary)
		return nil

	case "single":
		if taskID == "" {
			return fmt.Errorf("mode single requires a task id")
		}
		doc, err := spec.LoadTasksDocument(root, specName)
		if err != nil {
			return err
		}
		ctx, ok, err := tasks.LoadContext(doc, taskID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("task %s not found in spec %s", taskID, specName)
		}
		if *jsonOut {
			return printJSON(ctx)
		}
		printTaskContext(ctx)
		return nil

	case "next-pending":
		doc, err := spec.LoadTasksDocument(root, specName)
		if err != nil {
			return err
		}
		summary := tasks.LoadSummary(doc)
		if *jsonOut {
			return printJSON(map[string]any{
				"recommendedNextTask": summary.RecommendedNextTask,
				"executionReady":      summary.ExecutionReady,
			})
		}
		if !summary.ExecutionReady {
			fmt.Println("no pending tasks — spec is complete")
			return nil
		}
		fmt.Println("next task:")
		printTask(summary.RecommendedNextTask)
		return nil

	case "complete":
		if taskID == "" {
			return fmt.Errorf("mode complete requires a task id")
		}
		path := filepath.Join(spec.SpecsRoot(root), specName, spec.TasksFile)
		changed, err := spec.CompleteTask(path, taskID)
		if err != nil {
			return err
		}
		if !changed {
			fmt.Printf("task %s was already complete\n", taskID)
			return nil
		}
		fmt.Printf("task %s marked complete\n", taskID)
		return nil

	default:
		return fmt.Errorf("unknown mode: %s", *mode)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var (
	doneMark    = color.New(color.FgGreen).Sprint("[x]")
	pendingMark = "[ ]"
	dimText     = color.New(color.Faint).SprintFunc()
)

func printTask(t *tasks.Task) {
	mark := pendingMark
	if t.Completed() {
		mark = doneMark
	}
	fmt.Printf("  %s %s %s\n", mark, t.ID, t.Description)
	if t.RequirementsRef != "" {
		fmt.Printf("      %s\n", dimText("requirements: "+t.RequirementsRef))
	}
	if t.LeverageRef != "" {
		fmt.Printf("      %s\n", dimText("leverage: "+t.LeverageRef))
	}
}

func printTaskList(list []tasks.Task) {
	if len(list) == 0 {
		fmt.Println("no tasks")
		return
	}
	for i := range list {
		printTask(&list[i])
	}
}

func printSummary(s tasks.Summary) {
	fmt.Printf("\n%d/%d tasks complete (%d%%)\n",
		s.CompletedTasks, s.TotalTasks, s.CompletionPercentage)
	if s.RecommendedNextTask != nil {
		fmt.Println("recommended next:")
		printTask(s.RecommendedNextTask)
	}
}

func printTaskContext(c *tasks.Context) {
	printTask(c.Task)
	if c.ParentTask != nil {
		fmt.Println("parent:")
		printTask(c.ParentTask)
	}
	if c.PreviousTask != nil {
		fmt.Println("previous in document:")
		printTask(c.PreviousTask)
	}
	if c.NextTask != nil {
		fmt.Println("next in document:")
		printTask(c.NextTask)
	}
	fmt.Printf("\nspec progress: %d/%d tasks complete, %d in this sibling group\n",
		c.CompletedTasks, c.TotalTasks, c.SiblingCount)
}
