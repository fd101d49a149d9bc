// Package ledger appends and reads the per-project contribution history.
//
// Entries are only ever appended. Callers record an entry on the in-memory
// project before the single document write that persists the mutation, so
// the mutation and its entry are stored together.
package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/good-yellow-bee/innohub/internal/metrics"
	"github.com/good-yellow-bee/innohub/internal/models"
)

// Record appends one entry to the project's ledger.
func Record(p *models.Project, actorID string, action models.Action, description string, at time.Time) {
	p.Contributions = append(p.Contributions, models.Contribution{
		ActorID:     actorID,
		Action:      action,
		Description: description,
		Timestamp:   at,
	})
	metrics.ContributionsTotal.WithLabelValues(string(action)).Inc()
}

func ProjectCreated(p *models.Project, actorID string, at time.Time) {
	Record(p, actorID, models.ActionCreated, fmt.Sprintf("Created project %q", p.Title), at)
}

func ProjectUpdated(p *models.Project, actorID string, at time.Time) {
	Record(p, actorID, models.ActionUpdated, fmt.Sprintf("Updated project %q", p.Title), at)
}

// LikeToggled records a like or an unlike depending on the new state.
func LikeToggled(p *models.Project, actorID string, liked bool, at time.Time) {
	if liked {
		Record(p, actorID, models.ActionLiked, "Liked "+p.Title, at)
		return
	}
	Record(p, actorID, models.ActionUnliked, "Unliked "+p.Title, at)
}

func Commented(p *models.Project, actorID string, at time.Time) {
	Record(p, actorID, models.ActionCommented, "Commented on "+p.Title, at)
}

func RoleAdded(p *models.Project, actorID, role string, at time.Time) {
	Record(p, actorID, models.ActionAddedRole, "Added open role: "+role, at)
}

func TaskAdded(p *models.Project, actorID, title string, column models.Column, at time.Time) {
	Record(p, actorID, models.ActionUpdatedKanban, fmt.Sprintf("Added task %q to %s", title, column), at)
}

func TaskMoved(p *models.Project, actorID, title string, column models.Column, at time.Time) {
	Record(p, actorID, models.ActionMovedTask, fmt.Sprintf("Moved task %q to %s", title, column), at)
}

func NoteAdded(p *models.Project, actorID string, at time.Time) {
	Record(p, actorID, models.ActionAddedNote, "Added a note to workspace", at)
}

func CanvasUpdated(p *models.Project, actorID string, at time.Time) {
	Record(p, actorID, models.ActionUpdatedCanvas, "Updated Lean Canvas", at)
}

// Newest returns a copy of entries ordered newest first. Entries with equal
// timestamps keep reverse insertion order.
func Newest(entries []models.Contribution) []models.Contribution {
	out := make([]models.Contribution, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// Entry is a ledger entry annotated with the project it belongs to.
type Entry struct {
	models.Contribution
	ProjectID    string `json:"projectId"`
	ProjectTitle string `json:"projectTitle"`
}

// ForUser flattens the ledgers of projects into the entries made by userID,
// newest first. A positive limit caps the result.
func ForUser(projects []*models.Project, userID string, limit int) []Entry {
	entries := []Entry{}
	for _, p := range projects {
		for i := len(p.Contributions) - 1; i >= 0; i-- {
			c := p.Contributions[i]
			if c.ActorID != userID {
				continue
			}
			entries = append(entries, Entry{Contribution: c, ProjectID: p.ID, ProjectTitle: p.Title})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
