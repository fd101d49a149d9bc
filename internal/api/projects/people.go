package projects

import (
	"context"

	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
)

// people resolves user ids to summaries, loading each account at most once.
type people struct {
	users storage.UserRepository
	seen  map[string]models.UserSummary
}

func (h *Handler) people() *people {
	return &people{users: h.storage.Users(), seen: make(map[string]models.UserSummary)}
}

// summary returns the account's summary, or unknownOwner when it is gone.
func (p *people) summary(ctx context.Context, id string) (models.UserSummary, error) {
	if s, ok := p.seen[id]; ok {
		return s, nil
	}
	user, err := p.users.GetByID(ctx, id)
	if err != nil {
		return models.UserSummary{}, err
	}
	s := unknownOwner
	if user != nil {
		s = user.Summary()
	}
	p.seen[id] = s
	return s, nil
}

// ref is summary for optional references: an empty id yields nil.
func (p *people) ref(ctx context.Context, id string) (*models.UserSummary, error) {
	if id == "" {
		return nil, nil
	}
	s, err := p.summary(ctx, id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// TaskView is a task with its assignee resolved.
type TaskView struct {
	models.Task
	Assignee *models.UserSummary `json:"assignee,omitempty"`
}

// NoteView is a note with its author resolved.
type NoteView struct {
	models.Note
	Author *models.UserSummary `json:"author,omitempty"`
}

type KanbanView struct {
	Todo       []TaskView `json:"todo"`
	InProgress []TaskView `json:"inProgress"`
	Done       []TaskView `json:"done"`
}

type WorkspaceView struct {
	Kanban KanbanView `json:"kanban"`
	Notes  []NoteView `json:"notes"`
}

// ContributionView is a ledger entry with the acting user resolved.
type ContributionView struct {
	models.Contribution
	User *models.UserSummary `json:"user,omitempty"`
}

func (p *people) workspace(ctx context.Context, ws *models.Workspace) (*WorkspaceView, error) {
	view := &WorkspaceView{Notes: make([]NoteView, 0, len(ws.Notes))}

	columns := []struct {
		tasks []models.Task
		out   *[]TaskView
	}{
		{ws.Kanban.Todo, &view.Kanban.Todo},
		{ws.Kanban.InProgress, &view.Kanban.InProgress},
		{ws.Kanban.Done, &view.Kanban.Done},
	}
	for _, col := range columns {
		*col.out = make([]TaskView, 0, len(col.tasks))
		for _, t := range col.tasks {
			assignee, err := p.ref(ctx, t.AssigneeID)
			if err != nil {
				return nil, err
			}
			*col.out = append(*col.out, TaskView{Task: t, Assignee: assignee})
		}
	}

	for _, n := range ws.Notes {
		author, err := p.ref(ctx, n.AuthorID)
		if err != nil {
			return nil, err
		}
		view.Notes = append(view.Notes, NoteView{Note: n, Author: author})
	}
	return view, nil
}

func (p *people) contributions(ctx context.Context, entries []models.Contribution) ([]ContributionView, error) {
	views := make([]ContributionView, 0, len(entries))
	for _, c := range entries {
		user, err := p.ref(ctx, c.ActorID)
		if err != nil {
			return nil, err
		}
		views = append(views, ContributionView{Contribution: c, User: user})
	}
	return views, nil
}
