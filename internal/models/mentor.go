package models

import "time"

// RequestStatus is the state of a mentorship request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// Valid reports whether s is a known request status.
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected:
		return true
	}
	return false
}

// MentorSocials holds a mentor's contact links.
type MentorSocials struct {
	LinkedIn string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
}

// MentorRequest is a queued request to connect with a mentor.
type MentorRequest struct {
	ID          string        `json:"id" bson:"id"`
	UserID      string        `json:"userId" bson:"userId"`
	Message     string        `json:"message" bson:"message"`
	Status      RequestStatus `json:"status" bson:"status"`
	CreatedAt   time.Time     `json:"createdAt" bson:"createdAt"`
	RespondedAt *time.Time    `json:"respondedAt,omitempty" bson:"respondedAt,omitempty"`
}

// Mentor is an experienced member students can request guidance from.
type Mentor struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name" bson:"name"`
	Role      string          `json:"role" bson:"role"`
	Company   string          `json:"company,omitempty" bson:"company,omitempty"`
	Bio       string          `json:"bio" bson:"bio"`
	Skills    []string        `json:"skills" bson:"skills"`
	Avatar    string          `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Socials   MentorSocials   `json:"socials" bson:"socials"`
	Requests  []MentorRequest `json:"requests" bson:"requests"`
	CreatedBy string          `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt time.Time       `json:"createdAt" bson:"createdAt"`
}

// PendingRequestFrom returns the pending request from userID, if any.
func (m *Mentor) PendingRequestFrom(userID string) *MentorRequest {
	for i := range m.Requests {
		if m.Requests[i].UserID == userID && m.Requests[i].Status == RequestPending {
			return &m.Requests[i]
		}
	}
	return nil
}
