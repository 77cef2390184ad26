package dashboard

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Pimzino/claude-code-spec-workflow/spec"
	"github.com/Pimzino/claude-code-spec-workflow/tasks"
)

// specListEntry is the /api/specs row: name, phase, and progress without the
// full document bodies.
type specListEntry struct {
	Name                 string     `json:"name"`
	DisplayName          string     `json:"displayName"`
	Phase                spec.Phase `json:"phase"`
	TotalTasks           int        `json:"totalTasks"`
	CompletedTasks       int        `json:"completedTasks"`
	CompletionPercentage int        `json:"completionPercentage"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.startTime).Round(time.Second).String(),
		"project": s.cfg.Dashboard.Project,
	})
}

func (s *Server) handleListSpecs(w http.ResponseWriter, _ *http.Request) {
	names, err := spec.List(s.cfg.Dashboard.Project)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	entries := []specListEntry{}
	for _, name := range names {
		sp, err := spec.Load(s.cfg.Dashboard.Project, name)
		if err != nil {
			continue // spec removed between listing and loading
		}
		entries = append(entries, specListEntry{
			Name:                 sp.Name,
			DisplayName:          sp.DisplayName,
			Phase:                sp.Phase,
			TotalTasks:           sp.Summary.TotalTasks,
			CompletedTasks:       sp.Summary.CompletedTasks,
			CompletionPercentage: sp.Summary.CompletionPercentage,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetSpec(w http.ResponseWriter, r *http.Request) {
	sp, err := spec.Load(s.cfg.Dashboard.Project, r.PathValue("name"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeJSONError(w, http.StatusNotFound, "spec not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

// handleSpecTasks serves the full task list with its summary, parsed fresh
// from the document on every request.
func (s *Server) handleSpecTasks(w http.ResponseWriter, r *http.Request) {
	doc, err := spec.LoadTasksDocument(s.cfg.Dashboard.Project, r.PathValue("name"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeJSONError(w, http.StatusNotFound, "tasks document not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	list, summary := tasks.LoadAll(doc)
	if list == nil {
		list = []tasks.Task{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tasks":   list,
		"summary": summary,
	})
}

// handleSpecNext serves the recommendation alone.
func (s *Server) handleSpecNext(w http.ResponseWriter, r *http.Request) {
	doc, err := spec.LoadTasksDocument(s.cfg.Dashboard.Project, r.PathValue("name"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeJSONError(w, http.StatusNotFound, "tasks document not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	summary := tasks.LoadSummary(doc)
	writeJSON(w, http.StatusOK, map[string]any{
		"recommendedNextTask": summary.RecommendedNextTask,
		"executionReady":      summary.ExecutionReady,
	})
}

func (s *Server) handleProjects(w http.ResponseWriter, _ *http.Request) {
	root := s.cfg.Dashboard.DiscoveryRoot
	if root == "" {
		root = s.cfg.Dashboard.Project
	}
	projects, err := Discover(root, time.Now())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if projects == nil {
		projects = []Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		writeJSON(w, http.StatusOK, []*Activity{})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	recent, err := s.archive.Recent(limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if recent == nil {
		recent = []*Activity{}
	}
	writeJSON(w, http.StatusOK, recent)
}
