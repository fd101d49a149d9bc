package models

import "time"

// GrantType classifies a funding opportunity.
type GrantType string

const (
	GrantTypeGrant       GrantType = "Grant"
	GrantTypeCompetition GrantType = "Competition"
	GrantTypeScholarship GrantType = "Scholarship"
	GrantTypeHackathon   GrantType = "Hackathon"
	GrantTypeVC          GrantType = "VC"
)

// Valid reports whether t is a known grant type.
func (t GrantType) Valid() bool {
	switch t {
	case GrantTypeGrant, GrantTypeCompetition, GrantTypeScholarship, GrantTypeHackathon, GrantTypeVC:
		return true
	}
	return false
}

// Grant is a funding opportunity listing.
type Grant struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Type        GrantType `json:"type" bson:"type"`
	Amount      string    `json:"amount,omitempty" bson:"amount,omitempty"`
	Deadline    time.Time `json:"deadline" bson:"deadline"`
	Eligibility []string  `json:"eligibility" bson:"eligibility"`
	Link        string    `json:"link" bson:"link"`
	Tags        []string  `json:"tags" bson:"tags"`
	Featured    bool      `json:"featured" bson:"featured"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
