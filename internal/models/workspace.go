package models

import "time"

// Column is one of the three kanban buckets.
type Column string

const (
	ColumnTodo       Column = "todo"
	ColumnInProgress Column = "inProgress"
	ColumnDone       Column = "done"
)

// Columns lists the kanban columns in scan order.
var Columns = []Column{ColumnTodo, ColumnInProgress, ColumnDone}

// Valid reports whether c names a known column.
func (c Column) Valid() bool {
	switch c {
	case ColumnTodo, ColumnInProgress, ColumnDone:
		return true
	}
	return false
}

// Task is a kanban card. CompletedAt is set exactly when the task sits in done.
type Task struct {
	ID          string     `json:"id" bson:"id"`
	Title       string     `json:"title" bson:"title"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	AssigneeID  string     `json:"assigneeId,omitempty" bson:"assigneeId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" bson:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// Note is a free-text workspace note.
type Note struct {
	ID        string    `json:"id" bson:"id"`
	Content   string    `json:"content" bson:"content"`
	AuthorID  string    `json:"authorId" bson:"authorId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Kanban holds the three ordered task columns.
type Kanban struct {
	Todo       []Task `json:"todo" bson:"todo"`
	InProgress []Task `json:"inProgress" bson:"inProgress"`
	Done       []Task `json:"done" bson:"done"`
}

// Column returns a pointer to the named column slice, or nil for unknown names.
func (k *Kanban) Column(c Column) *[]Task {
	switch c {
	case ColumnTodo:
		return &k.Todo
	case ColumnInProgress:
		return &k.InProgress
	case ColumnDone:
		return &k.Done
	}
	return nil
}

// Workspace is the collaborative board embedded in a project.
type Workspace struct {
	Kanban Kanban `json:"kanban" bson:"kanban"`
	Notes  []Note `json:"notes" bson:"notes"`
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{
		Kanban: Kanban{Todo: []Task{}, InProgress: []Task{}, Done: []Task{}},
		Notes:  []Note{},
	}
}

// Normalize replaces nil slices with empty ones so they render as [].
func (w *Workspace) Normalize() {
	if w.Kanban.Todo == nil {
		w.Kanban.Todo = []Task{}
	}
	if w.Kanban.InProgress == nil {
		w.Kanban.InProgress = []Task{}
	}
	if w.Kanban.Done == nil {
		w.Kanban.Done = []Task{}
	}
	if w.Notes == nil {
		w.Notes = []Note{}
	}
}
