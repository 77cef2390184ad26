package tasks

import "math"

// Summarize computes aggregate statistics over a parsed task list. It is a
// pure function of its input: completed + pending always equals total, and the
// percentage is the rounded integer share of completed tasks (0 for an empty
// list).
func Summarize(list []Task) Summary {
	var s Summary
	s.TotalTasks = len(list)
	for i := range list {
		if list[i].Completed() {
			s.CompletedTasks++
			s.LastCompletedTask = &list[i]
		} else {
			s.PendingTasks++
			if s.NextPendingTask == nil {
				s.NextPendingTask = &list[i]
			}
		}
	}
	if s.TotalTasks > 0 {
		s.CompletionPercentage = int(math.Round(100 * float64(s.CompletedTasks) / float64(s.TotalTasks)))
	}
	s.RecommendedNextTask, s.ExecutionReady = Recommend(list)
	return s
}
