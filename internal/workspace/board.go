// Package workspace implements the project kanban board and notes.
//
// Column membership is the only record of a task's state: a task lives in
// exactly one of todo, inProgress or done, and carries CompletedAt exactly
// while it sits in done.
package workspace

import (
	"errors"
	"strings"
	"time"

	"github.com/good-yellow-bee/innohub/internal/models"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidColumn   = errors.New("invalid column")
	ErrEmptyTitle      = errors.New("task title is required")
	ErrEmptyNote       = errors.New("note content is required")
)

// AddTask appends task to the end of column. A task added straight to done
// is stamped as completed at now.
func AddTask(ws *models.Workspace, column models.Column, task models.Task, now time.Time) (*models.Task, error) {
	col := ws.Kanban.Column(column)
	if col == nil {
		return nil, ErrInvalidColumn
	}
	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return nil, ErrEmptyTitle
	}

	task.CreatedAt = now
	task.CompletedAt = nil
	if column == models.ColumnDone {
		completed := now
		task.CompletedAt = &completed
	}

	*col = append(*col, task)
	return &(*col)[len(*col)-1], nil
}

// Locate scans todo, inProgress and done in that order and returns the
// column and index holding taskID.
func Locate(ws *models.Workspace, taskID string) (models.Column, int, bool) {
	for _, c := range models.Columns {
		for i, t := range *ws.Kanban.Column(c) {
			if t.ID == taskID {
				return c, i, true
			}
		}
	}
	return "", -1, false
}

// MoveTask removes the task from its column and appends it to target.
// It reports whether the board changed; moving a task onto its own column
// changes nothing.
func MoveTask(ws *models.Workspace, taskID string, target models.Column, now time.Time) (models.Task, bool, error) {
	dst := ws.Kanban.Column(target)
	if dst == nil {
		return models.Task{}, false, ErrInvalidColumn
	}

	source, idx, ok := Locate(ws, taskID)
	if !ok {
		return models.Task{}, false, ErrTaskNotFound
	}

	src := ws.Kanban.Column(source)
	task := (*src)[idx]
	if source == target {
		return task, false, nil
	}

	*src = append((*src)[:idx:idx], (*src)[idx+1:]...)

	if target == models.ColumnDone {
		completed := now
		task.CompletedAt = &completed
	} else {
		task.CompletedAt = nil
	}

	*dst = append(*dst, task)
	return task, true, nil
}

// AddNote appends note with its creation time set to now.
func AddNote(ws *models.Workspace, note models.Note, now time.Time) (*models.Note, error) {
	if strings.TrimSpace(note.Content) == "" {
		return nil, ErrEmptyNote
	}
	note.CreatedAt = now
	ws.Notes = append(ws.Notes, note)
	return &ws.Notes[len(ws.Notes)-1], nil
}
