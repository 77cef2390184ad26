package dashboard

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/Pimzino/claude-code-spec-workflow/config"
	"github.com/Pimzino/claude-code-spec-workflow/spec"
)

// newTestServer builds a Server over a temp project with routes registered.
func newTestServer(t *testing.T, mutate func(*config.Config)) (*Server, string) {
	t.Helper()
	project := t.TempDir()
	cfg := *config.DefaultConfig()
	cfg.Dashboard.Project = project
	if mutate != nil {
		mutate(&cfg)
	}
	s := New(cfg, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.registerRoutes()
	return s, project
}

func writeSpecDir(t *testing.T, project, name string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(spec.SpecsRoot(project), name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", file, err)
		}
	}
}

func doRequest(t *testing.T, s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleStatus(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/status", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" || body["version"] != "test" {
		t.Errorf("body = %v", body)
	}
}

func TestHandleListSpecs(t *testing.T) {
	s, project := newTestServer(t, nil)
	writeSpecDir(t, project, "user-auth", map[string]string{
		spec.RequirementsFile: "# Req",
		spec.DesignFile:       "# Design",
		spec.TasksFile:        "- [x] 1. A\n- [ ] 2. B",
	})

	rec := doRequest(t, s, http.MethodGet, "/api/specs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var entries []specListEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entries); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Name != "user-auth" || e.DisplayName != "User Auth" {
		t.Errorf("entry = %+v", e)
	}
	if e.Phase != spec.PhaseImplementation || e.CompletionPercentage != 50 {
		t.Errorf("entry = %+v, want implementation at 50%%", e)
	}
}

func TestHandleSpecTasks(t *testing.T) {
	s, project := newTestServer(t, nil)
	writeSpecDir(t, project, "user-auth", map[string]string{
		spec.TasksFile: "- [x] 1. Setup\n- [ ] 1.1 Sub A\n- [ ] 1.2 Sub B",
	})

	rec := doRequest(t, s, http.MethodGet, "/api/specs/user-auth/tasks", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Tasks   []map[string]any `json:"tasks"`
		Summary map[string]any   `json:"summary"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Tasks) != 3 {
		t.Errorf("len(tasks) = %d, want 3", len(body.Tasks))
	}
	next, _ := body.Summary["recommendedNextTask"].(map[string]any)
	if next == nil || next["id"] != "1.1" {
		t.Errorf("recommendedNextTask = %v, want id 1.1", next)
	}
}

func TestHandleSpecNext_NotFound(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/specs/missing/next", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleProjects(t *testing.T) {
	s, project := newTestServer(t, nil)
	writeSpecDir(t, project, "user-auth", map[string]string{spec.TasksFile: "- [ ] 1. A"})

	rec := doRequest(t, s, http.MethodGet, "/api/projects", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var projects []Project
	if err := json.Unmarshal(rec.Body.Bytes(), &projects); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("len(projects) = %d, want 1", len(projects))
	}
	if projects[0].SpecCount != 1 {
		t.Errorf("SpecCount = %d, want 1", projects[0].SpecCount)
	}
	if !projects[0].Active {
		t.Error("project with a just-written document not active")
	}
}

func TestAuth_DisabledPassesThrough(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/specs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with auth disabled", rec.Code)
	}
}

func TestAuth_LoginAndBearerToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	s, _ := newTestServer(t, func(cfg *config.Config) {
		cfg.Auth.Username = "admin"
		cfg.Auth.PasswordHash = string(hash)
		cfg.Auth.JWTSecret = "test-secret"
	})

	// Protected route without a token.
	rec := doRequest(t, s, http.MethodGet, "/api/specs", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated status = %d, want 401", rec.Code)
	}

	// Bad password.
	rec = doRequest(t, s, http.MethodPost, "/api/auth/login", []byte(`{"username":"admin","password":"wrong"}`))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", rec.Code)
	}

	// Good login.
	rec = doRequest(t, s, http.MethodPost, "/api/auth/login", []byte(`{"username":"admin","password":"hunter2"}`))
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var login loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.Token == "" {
		t.Fatal("login returned empty token")
	}

	// Token unlocks the protected route and /api/auth/me.
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec = httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, want 200", rec.Code)
	}
	var me map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me["username"] != "admin" {
		t.Errorf("username = %q, want admin", me["username"])
	}
}

func TestHandleActivity_NoArchive(t *testing.T) {
	s, _ := newTestServer(t, nil)
	rec := doRequest(t, s, http.MethodGet, "/api/activity", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want empty array", got)
	}
}
