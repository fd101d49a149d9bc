// Package mentorship manages connection requests to mentors.
//
// A user holds at most one pending request per mentor. Once the mentor's
// creator accepts or rejects it, the user may ask again.
package mentorship

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/good-yellow-bee/innohub/internal/models"
)

// DefaultRequestMessage is used when a request carries no message.
const DefaultRequestMessage = "Hi, I would like to connect with you!"

var (
	ErrMentorNotFound  = errors.New("mentor not found")
	ErrPendingRequest  = errors.New("You already have a pending request with this mentor")
	ErrRequestNotFound = errors.New("request not found")
	ErrNotMentorOwner  = errors.New("not authorized")
	ErrInvalidStatus   = errors.New("status must be accepted or rejected")
	ErrAlreadyResolved = errors.New("request has already been answered")
)

// MentorStore is the subset of the mentor repository the service needs.
type MentorStore interface {
	GetByID(ctx context.Context, id string) (*models.Mentor, error)
	Update(ctx context.Context, mentor *models.Mentor) error
}

// Service queues and resolves mentor requests.
type Service struct {
	mentors MentorStore
	now     func() time.Time
}

// NewService creates a service over mentors.
func NewService(mentors MentorStore) *Service {
	return &Service{mentors: mentors, now: time.Now}
}

// Request queues a pending request from userID.
func (s *Service) Request(ctx context.Context, mentorID, userID, message string) (*models.MentorRequest, error) {
	mentor, err := s.load(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if mentor.PendingRequestFrom(userID) != nil {
		return nil, ErrPendingRequest
	}

	if strings.TrimSpace(message) == "" {
		message = DefaultRequestMessage
	}
	req := models.MentorRequest{
		ID:        uuid.New().String(),
		UserID:    userID,
		Message:   message,
		Status:    models.RequestPending,
		CreatedAt: s.now(),
	}
	mentor.Requests = append(mentor.Requests, req)

	if err := s.mentors.Update(ctx, mentor); err != nil {
		return nil, fmt.Errorf("save mentor request: %w", err)
	}
	return &req, nil
}

// Respond accepts or rejects a pending request. Only the user who listed
// the mentor may respond.
func (s *Service) Respond(ctx context.Context, mentorID, requestID, actorID string, status models.RequestStatus) (*models.MentorRequest, error) {
	if status != models.RequestAccepted && status != models.RequestRejected {
		return nil, ErrInvalidStatus
	}

	mentor, err := s.load(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if mentor.CreatedBy == "" || mentor.CreatedBy != actorID {
		return nil, ErrNotMentorOwner
	}

	var req *models.MentorRequest
	for i := range mentor.Requests {
		if mentor.Requests[i].ID == requestID {
			req = &mentor.Requests[i]
			break
		}
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	if req.Status != models.RequestPending {
		return nil, ErrAlreadyResolved
	}

	now := s.now()
	req.Status = status
	req.RespondedAt = &now

	if err := s.mentors.Update(ctx, mentor); err != nil {
		return nil, fmt.Errorf("save mentor request: %w", err)
	}
	out := *req
	return &out, nil
}

func (s *Service) load(ctx context.Context, mentorID string) (*models.Mentor, error) {
	mentor, err := s.mentors.GetByID(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("get mentor: %w", err)
	}
	if mentor == nil {
		return nil, ErrMentorNotFound
	}
	return mentor, nil
}

// AvatarURL returns the generated avatar image for seed.
func AvatarURL(seed string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(seed)
}
