package dashboard

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Pimzino/claude-code-spec-workflow/events"
)

const archiveSchema = `
CREATE TABLE IF NOT EXISTS activity (
	id              TEXT PRIMARY KEY,
	event_type      TEXT NOT NULL,
	project         TEXT NOT NULL DEFAULT '',
	spec            TEXT NOT NULL DEFAULT '',
	total_tasks     INTEGER NOT NULL DEFAULT 0,
	completed_tasks INTEGER NOT NULL DEFAULT 0,
	created_at      DATETIME NOT NULL
);
`

// Activity is one archived document-change event, powering the dashboard
// timeline. The archive is display-only: the task engine never reads it, and
// workflow state recovery always comes from the documents themselves.
type Activity struct {
	ID             string    `json:"id"`
	EventType      string    `json:"eventType"`
	Project        string    `json:"project,omitempty"`
	Spec           string    `json:"spec,omitempty"`
	TotalTasks     int       `json:"totalTasks"`
	CompletedTasks int       `json:"completedTasks"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Archive persists activity events in a SQLite database.
type Archive struct {
	db *sql.DB
}

// NewArchive opens (or creates) a SQLite database at dbPath and ensures the
// activity table exists. The caller is responsible for calling Close.
func NewArchive(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	db.SetMaxOpenConns(1) // prevent SQLITE_BUSY
	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close releases the underlying database connection.
func (a *Archive) Close() error { return a.db.Close() }

// Append records one activity event, assigning an id and timestamp when the
// caller left them empty.
func (a *Archive) Append(act *Activity) error {
	if act.ID == "" {
		act.ID = uuid.New().String()
	}
	if act.CreatedAt.IsZero() {
		act.CreatedAt = time.Now().UTC()
	}
	_, err := a.db.Exec(`
		INSERT INTO activity
			(id, event_type, project, spec, total_tasks, completed_tasks, created_at)
		VALUES (?,?,?,?,?,?,?)`,
		act.ID, act.EventType, act.Project, act.Spec,
		act.TotalTasks, act.CompletedTasks, act.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns the most recent limit events in reverse chronological order.
func (a *Archive) Recent(limit int) ([]*Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.db.Query(`
		SELECT id, event_type, project, spec, total_tasks, completed_tasks, created_at
		FROM activity ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close()

	var out []*Activity
	for rows.Next() {
		act, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, act)
	}
	return out, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanActivity.
type scanner interface {
	Scan(dest ...any) error
}

func scanActivity(s scanner) (*Activity, error) {
	var act Activity
	if err := s.Scan(
		&act.ID, &act.EventType, &act.Project, &act.Spec,
		&act.TotalTasks, &act.CompletedTasks, &act.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &act, nil
}

// Record subscribes the archive to a bus, persisting every published event.
// It returns the unsubscribe function.
func (a *Archive) Record(bus *events.Bus) func() {
	return bus.Subscribe("*", func(ev events.Event) {
		act := &Activity{
			ID:        ev.ID,
			EventType: ev.Type,
			Project:   ev.Project,
			Spec:      ev.Spec,
			CreatedAt: ev.Time,
		}
		if counts, ok := ev.Payload.(TaskCounts); ok {
			act.TotalTasks = counts.Total
			act.CompletedTasks = counts.Completed
		}
		_ = a.Append(act) // archive failures never block event delivery
	})
}

// TaskCounts is the payload attached to spec-update events.
type TaskCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}
