package workspace

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/good-yellow-bee/innohub/internal/ledger"
	"github.com/good-yellow-bee/innohub/internal/metrics"
	"github.com/good-yellow-bee/innohub/internal/models"
)

// ProjectStore is the subset of the project repository the board needs.
type ProjectStore interface {
	GetByID(ctx context.Context, id string) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
}

// TaskInput carries the caller-supplied fields of a new task.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssigneeID  string `json:"assignee"`
}

// Service applies board operations to stored projects. Each mutation reads
// the project, changes it in memory, records one ledger entry and replaces
// the document. Concurrent writers to one project are last-write-wins.
type Service struct {
	projects ProjectStore
	now      func() time.Time
	newID    func() string
}

// NewService creates a board service over projects.
func NewService(projects ProjectStore) *Service {
	return &Service{
		projects: projects,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
	}
}

// Get returns the project's workspace, or an empty one if it has none yet.
func (s *Service) Get(ctx context.Context, projectID string) (*models.Workspace, error) {
	p, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return p.Workspace, nil
}

// AddTask appends a task to column and returns the updated board.
func (s *Service) AddTask(ctx context.Context, projectID, actorID string, column models.Column, in TaskInput) (*models.Kanban, error) {
	if !column.Valid() {
		return nil, ErrInvalidColumn
	}
	p, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	assignee := in.AssigneeID
	if assignee == "" {
		assignee = actorID
	}
	now := s.now()

	task, err := AddTask(p.Workspace, column, models.Task{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		AssigneeID:  assignee,
	}, now)
	if err != nil {
		return nil, err
	}

	ledger.TaskAdded(p, actorID, task.Title, column, now)
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("save workspace: %w", err)
	}
	return &p.Workspace.Kanban, nil
}

// MoveTask moves a task to target and returns the board. Moving a task onto
// its current column returns the board unchanged without writing.
func (s *Service) MoveTask(ctx context.Context, projectID, actorID, taskID string, target models.Column) (*models.Kanban, error) {
	if !target.Valid() {
		return nil, ErrInvalidColumn
	}
	p, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	task, changed, err := MoveTask(p.Workspace, taskID, target, now)
	if err != nil {
		return nil, err
	}
	if !changed {
		return &p.Workspace.Kanban, nil
	}

	ledger.TaskMoved(p, actorID, task.Title, target, now)
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("save workspace: %w", err)
	}
	metrics.KanbanMovesTotal.WithLabelValues(string(target)).Inc()
	return &p.Workspace.Kanban, nil
}

// AddNote appends a note and returns all notes.
func (s *Service) AddNote(ctx context.Context, projectID, actorID, content string) ([]models.Note, error) {
	p, err := s.load(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if _, err := AddNote(p.Workspace, models.Note{ID: s.newID(), Content: content, AuthorID: actorID}, now); err != nil {
		return nil, err
	}

	ledger.NoteAdded(p, actorID, now)
	if err := s.projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("save workspace: %w", err)
	}
	return p.Workspace.Notes, nil
}

// load fetches the project and ensures it has a workspace.
func (s *Service) load(ctx context.Context, projectID string) (*models.Project, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if p == nil {
		return nil, ErrProjectNotFound
	}
	if p.Workspace == nil {
		p.Workspace = models.NewWorkspace()
	}
	p.Workspace.Normalize()
	return p, nil
}
