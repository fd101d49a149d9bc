package models

import "time"

// Action is the fixed vocabulary of contribution ledger entries.
type Action string

const (
	ActionCreated       Action = "created"
	ActionUpdated       Action = "updated"
	ActionLiked         Action = "liked"
	ActionUnliked       Action = "unliked"
	ActionCommented     Action = "commented"
	ActionAddedRole     Action = "added_role"
	ActionMovedTask     Action = "moved_task"
	ActionUpdatedKanban Action = "updated_kanban"
	ActionAddedNote     Action = "added_note"
	ActionUpdatedCanvas Action = "updated_canvas"
)

// Contribution is one append-only ledger entry.
type Contribution struct {
	ActorID     string    `json:"actorId" bson:"actorId"`
	Action      Action    `json:"action" bson:"action"`
	Description string    `json:"description" bson:"description"`
	Timestamp   time.Time `json:"timestamp" bson:"timestamp"`
}
