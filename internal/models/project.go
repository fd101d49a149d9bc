package models

import (
	"time"
)

// RoleStatus is the state of an open team role.
type RoleStatus string

const (
	RoleStatusOpen   RoleStatus = "open"
	RoleStatusFilled RoleStatus = "filled"
)

// Like records one user's like. A user appears at most once.
type Like struct {
	UserID    string    `json:"userId" bson:"userId"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Comment is a comment on a project or launch. Lists are kept newest first.
type Comment struct {
	ID        string    `json:"id" bson:"id"`
	UserID    string    `json:"userId" bson:"userId"`
	Name      string    `json:"name,omitempty" bson:"name,omitempty"`
	Avatar    string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// OpenRole is a team position a project owner is recruiting for.
type OpenRole struct {
	ID          string     `json:"id" bson:"id"`
	Role        string     `json:"role" bson:"role"`
	Skills      []string   `json:"skills" bson:"skills"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Status      RoleStatus `json:"status" bson:"status"`
}

// LeanCanvas is the nine-box business model summary.
type LeanCanvas struct {
	Problem          string `json:"problem" bson:"problem"`
	Solution         string `json:"solution" bson:"solution"`
	KeyMetrics       string `json:"keyMetrics" bson:"keyMetrics"`
	UniqueValue      string `json:"uniqueValue" bson:"uniqueValue"`
	UnfairAdvantage  string `json:"unfairAdvantage" bson:"unfairAdvantage"`
	Channels         string `json:"channels" bson:"channels"`
	CustomerSegments string `json:"customerSegments" bson:"customerSegments"`
	CostStructure    string `json:"costStructure" bson:"costStructure"`
	RevenueStreams   string `json:"revenueStreams" bson:"revenueStreams"`
}

// Project is a student innovation project. Workspace, ledger and canvas are
// embedded so every mutation is a single document write.
type Project struct {
	ID            string         `json:"id" bson:"_id"`
	Title         string         `json:"title" bson:"title"`
	Description   string         `json:"description" bson:"description"`
	Tags          []string       `json:"tags" bson:"tags"`
	OwnerID       string         `json:"ownerId" bson:"ownerId"`
	Link          string         `json:"link,omitempty" bson:"link,omitempty"`
	GitHub        string         `json:"github,omitempty" bson:"github,omitempty"`
	Likes         []Like         `json:"likes" bson:"likes"`
	Comments      []Comment      `json:"comments" bson:"comments"`
	OpenRoles     []OpenRole     `json:"openRoles" bson:"openRoles"`
	Workspace     *Workspace     `json:"workspace,omitempty" bson:"workspace,omitempty"`
	Contributions []Contribution `json:"contributions" bson:"contributions"`
	LeanCanvas    *LeanCanvas    `json:"leanCanvas,omitempty" bson:"leanCanvas,omitempty"`
	CreatedAt     time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// NewProject creates a new Project with initialized collections and timestamps.
func NewProject(title, description, ownerID string) *Project {
	now := time.Now()
	return &Project{
		Title:         title,
		Description:   description,
		OwnerID:       ownerID,
		Tags:          []string{},
		Likes:         []Like{},
		Comments:      []Comment{},
		OpenRoles:     []OpenRole{},
		Contributions: []Contribution{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsOwner reports whether userID owns the project.
func (p *Project) IsOwner(userID string) bool {
	return userID != "" && p.OwnerID == userID
}

// LikedBy reports whether userID has liked the project.
func (p *Project) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// Normalize replaces nil collections left by older documents with empty ones.
func (p *Project) Normalize() {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Likes == nil {
		p.Likes = []Like{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	if p.OpenRoles == nil {
		p.OpenRoles = []OpenRole{}
	}
	if p.Contributions == nil {
		p.Contributions = []Contribution{}
	}
	if p.Workspace != nil {
		p.Workspace.Normalize()
	}
}
