package projects

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/good-yellow-bee/innohub/internal/api/middleware"
	"github.com/good-yellow-bee/innohub/internal/api/respond"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/workspace"
)

type AddTaskRequest struct {
	Column models.Column       `json:"column"`
	Task   workspace.TaskInput `json:"task"`
}

type MoveTaskRequest struct {
	TaskID       string        `json:"taskId"`
	TargetColumn models.Column `json:"targetColumn"`
}

type NoteRequest struct {
	Content string `json:"content"`
}

// GetWorkspace returns the board and notes, empty when never used.
// Assignees and note authors are resolved to user summaries.
func (h *Handler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	ws, err := h.workspace.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.workspaceError(w, r, "get workspace", err)
		return
	}

	view, err := h.people().workspace(r.Context(), ws)
	if err != nil {
		respond.Internal(w, r, "load workspace members", err)
		return
	}
	respond.OK(w, view)
}

// AddTask appends a task to a column and returns the board.
func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	var req AddTaskRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	kanban, err := h.workspace.AddTask(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()), req.Column, req.Task)
	if err != nil {
		h.workspaceError(w, r, "add task", err)
		return
	}
	respond.OK(w, kanban)
}

// MoveTask moves a task to the end of another column and returns the board.
func (h *Handler) MoveTask(w http.ResponseWriter, r *http.Request) {
	var req MoveTaskRequest
	if !respond.Decode(w, r, &req) {
		return
	}
	if req.TaskID == "" {
		respond.Fail(w, respond.Validation("taskId is required"))
		return
	}

	kanban, err := h.workspace.MoveTask(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()), req.TaskID, req.TargetColumn)
	if err != nil {
		h.workspaceError(w, r, "move task", err)
		return
	}
	respond.OK(w, kanban)
}

// AddNote appends a note and returns all notes.
func (h *Handler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	notes, err := h.workspace.AddNote(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()), req.Content)
	if err != nil {
		h.workspaceError(w, r, "add note", err)
		return
	}
	respond.OK(w, notes)
}

func (h *Handler) workspaceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, workspace.ErrProjectNotFound):
		respond.Fail(w, respond.NotFound(msgProjectNotFound))
	case errors.Is(err, workspace.ErrTaskNotFound):
		respond.Fail(w, respond.NotFound("Task not found"))
	case errors.Is(err, workspace.ErrInvalidColumn):
		respond.Fail(w, respond.Validation("column must be one of todo, inProgress, done"))
	case errors.Is(err, workspace.ErrEmptyTitle), errors.Is(err, workspace.ErrEmptyNote):
		respond.Fail(w, respond.Validation(err.Error()))
	default:
		respond.Internal(w, r, op, err)
	}
}
