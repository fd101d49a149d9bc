package models

import "time"

// DefaultProfileRole is assigned to profiles created without a role.
const DefaultProfileRole = "Student Innovator"

// ProfileSocial holds profile social handles.
type ProfileSocial struct {
	YouTube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
	GitHub    string `json:"github,omitempty" bson:"github,omitempty"`
}

// Profile is the public portfolio of a user. One per user.
type Profile struct {
	ID        string        `json:"id" bson:"_id"`
	UserID    string        `json:"userId" bson:"userId"`
	Bio       string        `json:"bio,omitempty" bson:"bio,omitempty"`
	Role      string        `json:"role" bson:"role"`
	Status    string        `json:"status,omitempty" bson:"status,omitempty"`
	Skills    []string      `json:"skills" bson:"skills"`
	Company   string        `json:"company,omitempty" bson:"company,omitempty"`
	Website   string        `json:"website,omitempty" bson:"website,omitempty"`
	Location  string        `json:"location,omitempty" bson:"location,omitempty"`
	Social    ProfileSocial `json:"social" bson:"social"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}
