// Command spec-workflow is the spec workflow CLI client: project scaffolding,
// task-graph queries, context printing, task completion, and self-update.
package main

import (
	"fmt"
	"os"

	"github.com/Pimzino/claude-code-spec-workflow/internal/version"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cmd := args[0]
	rest := args[1:]

	var err error
	switch cmd {
	case "version":
		err = cmdVersion(rest)
	case "setup":
		err = cmdSetup(rest)
	case "get-tasks":
		err = cmdGetTasks(rest)
	case "get-spec-context":
		err = cmdSpecContext(rest)
	case "get-steering-context":
		err = cmdSteeringContext(rest)
	case "specs":
		err = cmdSpecs(rest)
	case "update":
		err = cmdUpdate(rest)
	case "dashboard":
		fmt.Fprintln(os.Stderr, "use spec-dashboard to run the dashboard daemon")
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `spec-workflow — spec-driven workflow CLI

Usage:
  spec-workflow <command> [flags] [args]

Commands:
  setup                          create the .claude workflow tree
  get-tasks <spec> [task-id]     query or complete tasks (--mode all|single|next-pending|complete)
  get-spec-context <spec>        print a spec's documents as a context block
  get-steering-context           print the steering documents as a context block
  specs                          list specs with phase and progress
  version                        print version
  update                         self-update from GitHub releases

Common flags:
  --project <dir>   project root (default: current directory)
  --json            machine-readable output where supported
`)
}

// --- version ---

func cmdVersion(_ []string) error {
	fmt.Printf("spec-workflow %s (commit %s, built %s)\n",
		version.Version, version.Commit, version.BuildDate)
	return nil
}
