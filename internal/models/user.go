package models

import (
	"time"
)

// Role represents what a member does on the platform.
type Role string

const (
	RoleStudent   Role = "Student"
	RoleMentor    Role = "Mentor"
	RoleRecruiter Role = "Recruiter"
	RoleAdmin     Role = "Admin"
)

// SocialLinks holds a user's external profile links.
type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty" bson:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty" bson:"portfolio,omitempty"`
}

// User is a platform account. PasswordHash is persisted with the document,
// so handlers must render users through Public or Summary.
type User struct {
	ID           string      `json:"id" bson:"_id"`
	Username     string      `json:"username" bson:"username"`
	Email        string      `json:"email" bson:"email"`
	PasswordHash string      `json:"passwordHash" bson:"passwordHash"`
	Role         Role        `json:"role" bson:"role"`
	Bio          string      `json:"bio,omitempty" bson:"bio,omitempty"`
	Skills       []string    `json:"skills" bson:"skills"`
	Avatar       string      `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CoverImage   string      `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	LookingFor   []string    `json:"lookingFor" bson:"lookingFor"`
	SocialLinks  SocialLinks `json:"socialLinks" bson:"socialLinks"`
	CreatedAt    time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt" bson:"updatedAt"`
}

// NewUser creates a new User with initialized timestamps.
func NewUser(username, email string, role Role) *User {
	now := time.Now()
	return &User{
		Username:   username,
		Email:      email,
		Role:       role,
		Skills:     []string{},
		LookingFor: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsAdmin returns true if user has admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser is a user without credentials.
type PublicUser struct {
	ID          string      `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	Bio         string      `json:"bio,omitempty"`
	Skills      []string    `json:"skills"`
	Avatar      string      `json:"avatar,omitempty"`
	CoverImage  string      `json:"coverImage,omitempty"`
	LookingFor  []string    `json:"lookingFor"`
	SocialLinks SocialLinks `json:"socialLinks"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Public strips the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		Bio:         u.Bio,
		Skills:      nonNil(u.Skills),
		Avatar:      u.Avatar,
		CoverImage:  u.CoverImage,
		LookingFor:  nonNil(u.LookingFor),
		SocialLinks: u.SocialLinks,
		CreatedAt:   u.CreatedAt,
	}
}

// UserSummary is the short form embedded next to projects and comments.
type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// Summary returns the short form of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}

// ParseRole converts a string to Role. Unknown values map to RoleStudent.
func ParseRole(s string) Role {
	switch s {
	case "Mentor", "mentor":
		return RoleMentor
	case "Recruiter", "recruiter":
		return RoleRecruiter
	case "Admin", "admin":
		return RoleAdmin
	default:
		return RoleStudent
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
