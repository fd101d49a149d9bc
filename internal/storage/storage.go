// Package storage provides the document store interfaces and the SQLite and
// MongoDB implementations behind them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/good-yellow-bee/innohub/internal/models"
)

// ErrDuplicate is returned when a write violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate key")

// Storage is the main interface for database operations.
type Storage interface {
	// Open initializes the database connection.
	Open(ctx context.Context) error
	// Close closes the database connection.
	Close() error
	// Migrate creates collections and unique indexes.
	Migrate(ctx context.Context) error
	// Ping checks connectivity for readiness checks.
	Ping(ctx context.Context) error
	// Backend names the implementation ("sqlite" or "mongodb").
	Backend() string

	// Repository accessors
	Users() UserRepository
	Profiles() ProfileRepository
	Projects() ProjectRepository
	Mentors() MentorRepository
	Grants() GrantRepository
	Launches() LaunchRepository
	Subscribers() SubscriberRepository
}

// Query selects documents from a collection. Field names are the JSON/BSON
// document names; "id" addresses the primary key. Results are ordered by
// creation time, newest first.
type Query struct {
	// Equals matches top-level fields against exact string values.
	Equals map[string]string
	// ExcludeID drops the document with this id.
	ExcludeID string
	// HasElement matches "array.field" paths: at least one element of the
	// array must carry field == value.
	HasElement map[string]string
	// Search is a case-insensitive substring matched against SearchFields.
	// A field may hold a string or an array of strings.
	Search       string
	SearchFields []string
	// Limit caps the result count when positive.
	Limit int
}

// Collection is a backend-neutral document collection.
// Get and FindOne return nil, nil when nothing matches.
type Collection[T any] interface {
	Insert(ctx context.Context, id string, createdAt time.Time, doc *T) error
	Replace(ctx context.Context, id string, doc *T) error
	Get(ctx context.Context, id string) (*T, error)
	FindOne(ctx context.Context, q Query) (*T, error)
	Find(ctx context.Context, q Query) ([]*T, error)
	Delete(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context, q Query) (int64, error)
}

// UserRepository defines operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]*models.User, error)
	// Candidates lists users other than excludeID, optionally filtered by role.
	Candidates(ctx context.Context, excludeID string, role models.Role, limit int) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// ProfileRepository defines operations for user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

// ProjectRepository defines operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id string) (*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id string) error
	// List returns projects whose title or tags contain search; all when empty.
	List(ctx context.Context, search string) ([]*models.Project, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error)
	// ListByContributor returns projects with at least one ledger entry by actorID.
	ListByContributor(ctx context.Context, actorID string) ([]*models.Project, error)
}

// MentorRepository defines operations for mentors.
type MentorRepository interface {
	Create(ctx context.Context, mentor *models.Mentor) error
	GetByID(ctx context.Context, id string) (*models.Mentor, error)
	Update(ctx context.Context, mentor *models.Mentor) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Mentor, error)
}

// GrantFilter narrows a grant listing.
type GrantFilter struct {
	Type   models.GrantType
	Search string
}

// GrantRepository defines operations for grant listings.
type GrantRepository interface {
	Create(ctx context.Context, grant *models.Grant) error
	GetByID(ctx context.Context, id string) (*models.Grant, error)
	Delete(ctx context.Context, id string) error
	// List orders by deadline ascending, featured first on ties.
	List(ctx context.Context, filter GrantFilter) ([]*models.Grant, error)
}

// LaunchRepository defines operations for project launches.
type LaunchRepository interface {
	Create(ctx context.Context, launch *models.Launch) error
	GetByID(ctx context.Context, id string) (*models.Launch, error)
	GetByProjectID(ctx context.Context, projectID string) (*models.Launch, error)
	Update(ctx context.Context, launch *models.Launch) error
	List(ctx context.Context) ([]*models.Launch, error)
}

// SubscriberRepository defines operations for newsletter subscribers.
type SubscriberRepository interface {
	Create(ctx context.Context, subscriber *models.Subscriber) error
	GetByEmail(ctx context.Context, email string) (*models.Subscriber, error)
}

// Options selects and configures a storage backend.
type Options struct {
	// DSN is a SQLite file path or a mongodb:// / mongodb+srv:// URI.
	DSN string
	// Database is the MongoDB database name.
	Database string
}

// New returns an unopened Storage for the backend named by the DSN.
func New(opts Options) (Storage, error) {
	dsn := strings.TrimSpace(opts.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("database url is required")
	}
	if IsMongoURI(dsn) {
		return NewMongoStorage(dsn, opts.Database), nil
	}
	return NewSQLiteStorage(strings.TrimPrefix(dsn, "sqlite://")), nil
}

// IsMongoURI reports whether dsn addresses a MongoDB deployment.
func IsMongoURI(dsn string) bool {
	return strings.HasPrefix(dsn, "mongodb://") || strings.HasPrefix(dsn, "mongodb+srv://")
}
