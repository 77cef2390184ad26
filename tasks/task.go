// Package tasks implements the task-graph engine for spec workflow documents.
// It parses hierarchical checklist items out of a tasks.md document, derives
// parent/sibling relationships from their dotted numeric ids, and selects the
// single next actionable task. The package is pure: it never performs I/O,
// never caches, and never mutates the document it is given.
package tasks

import "strings"

// Status represents the completion state of a checklist item.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Task is one checklist item from a tasks document.
type Task struct {
	ID              string `json:"id"`
	Description     string `json:"description"`
	Status          Status `json:"status"`
	RequirementsRef string `json:"requirementsRef,omitempty"`
	LeverageRef     string `json:"leverageRef,omitempty"`
	RawText         string `json:"rawText"`
	ParentTaskID    string `json:"parentTaskId,omitempty"`
}

// Completed reports whether the task's checkbox is marked done.
func (t *Task) Completed() bool { return t.Status == StatusCompleted }

// Depth returns the nesting depth implied by the task id: the number of
// dot-separated components minus one, so "2" is depth 0 and "4.2.3" is depth 2.
func (t *Task) Depth() int { return strings.Count(t.ID, ".") }

// Summary aggregates completion statistics over one document snapshot.
// NextPendingTask and LastCompletedTask are plain document-order lookups;
// callers that need dependency-aware selection must use RecommendedNextTask.
type Summary struct {
	TotalTasks           int   `json:"totalTasks"`
	CompletedTasks       int   `json:"completedTasks"`
	PendingTasks         int   `json:"pendingTasks"`
	CompletionPercentage int   `json:"completionPercentage"`
	NextPendingTask      *Task `json:"nextPendingTask,omitempty"`
	LastCompletedTask    *Task `json:"lastCompletedTask,omitempty"`
	RecommendedNextTask  *Task `json:"recommendedNextTask,omitempty"`
	ExecutionReady       bool  `json:"executionReady"`
}

// Context describes one named task together with its document-order neighbors.
type Context struct {
	Task           *Task `json:"task"`
	ParentTask     *Task `json:"parentTask,omitempty"`
	TotalTasks     int   `json:"totalTasks"`
	CompletedTasks int   `json:"completedTasks"`
	SiblingCount   int   `json:"siblingCount"`
	NextTask       *Task `json:"nextTask,omitempty"`
	PreviousTask   *Task `json:"previousTask,omitempty"`
}
