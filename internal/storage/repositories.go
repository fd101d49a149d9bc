package storage

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/good-yellow-bee/innohub/internal/models"
)

// repos implements the repository accessors of Storage on top of generic
// collections. Both backends embed it.
type repos struct {
	users       *userRepo
	profiles    *profileRepo
	projects    *projectRepo
	mentors     *mentorRepo
	grants      *grantRepo
	launches    *launchRepo
	subscribers *subscriberRepo
}

func newRepos(
	users Collection[models.User],
	profiles Collection[models.Profile],
	projects Collection[models.Project],
	mentors Collection[models.Mentor],
	grants Collection[models.Grant],
	launches Collection[models.Launch],
	subscribers Collection[models.Subscriber],
) repos {
	return repos{
		users:       &userRepo{c: users},
		profiles:    &profileRepo{c: profiles},
		projects:    &projectRepo{c: projects},
		mentors:     &mentorRepo{c: mentors},
		grants:      &grantRepo{c: grants},
		launches:    &launchRepo{c: launches},
		subscribers: &subscriberRepo{c: subscribers},
	}
}

func (r repos) Users() UserRepository             { return r.users }
func (r repos) Profiles() ProfileRepository       { return r.profiles }
func (r repos) Projects() ProjectRepository       { return r.projects }
func (r repos) Mentors() MentorRepository         { return r.mentors }
func (r repos) Grants() GrantRepository           { return r.grants }
func (r repos) Launches() LaunchRepository        { return r.launches }
func (r repos) Subscribers() SubscriberRepository { return r.subscribers }

// assignID fills in a missing id and creation time.
func assignID(id *string, createdAt *time.Time) {
	if *id == "" {
		*id = uuid.New().String()
	}
	if createdAt.IsZero() {
		*createdAt = time.Now()
	}
}

type userRepo struct {
	c Collection[models.User]
}

func (r *userRepo) Create(ctx context.Context, user *models.User) error {
	assignID(&user.ID, &user.CreatedAt)
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = user.CreatedAt
	}
	if err := r.c.Insert(ctx, user.ID, user.CreatedAt, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.c.Get(ctx, id)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.c.FindOne(ctx, Query{Equals: map[string]string{"username": username}})
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.c.FindOne(ctx, Query{Equals: map[string]string{"email": email}})
}

func (r *userRepo) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	if err := r.c.Replace(ctx, user.ID, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *userRepo) List(ctx context.Context) ([]*models.User, error) {
	return r.c.Find(ctx, Query{})
}

func (r *userRepo) Candidates(ctx context.Context, excludeID string, role models.Role, limit int) ([]*models.User, error) {
	q := Query{ExcludeID: excludeID, Limit: limit}
	if role != "" {
		q.Equals = map[string]string{"role": string(role)}
	}
	return r.c.Find(ctx, q)
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	return r.c.Count(ctx, Query{})
}

type profileRepo struct {
	c Collection[models.Profile]
}

func (r *profileRepo) Create(ctx context.Context, profile *models.Profile) error {
	assignID(&profile.ID, &profile.CreatedAt)
	if profile.UpdatedAt.IsZero() {
		profile.UpdatedAt = profile.CreatedAt
	}
	if err := r.c.Insert(ctx, profile.ID, profile.CreatedAt, profile); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

func (r *profileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return r.c.FindOne(ctx, Query{Equals: map[string]string{"userId": userID}})
}

func (r *profileRepo) Update(ctx context.Context, profile *models.Profile) error {
	profile.UpdatedAt = time.Now()
	if err := r.c.Replace(ctx, profile.ID, profile); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}

type projectRepo struct {
	c Collection[models.Project]
}

func (r *projectRepo) Create(ctx context.Context, project *models.Project) error {
	assignID(&project.ID, &project.CreatedAt)
	if project.UpdatedAt.IsZero() {
		project.UpdatedAt = project.CreatedAt
	}
	project.Normalize()
	if err := r.c.Insert(ctx, project.ID, project.CreatedAt, project); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	return nil
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*models.Project, error) {
	p, err := r.c.Get(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	p.Normalize()
	return p, nil
}

func (r *projectRepo) Update(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now()
	if err := r.c.Replace(ctx, project.ID, project); err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func (r *projectRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.c.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (r *projectRepo) List(ctx context.Context, search string) ([]*models.Project, error) {
	return r.find(ctx, Query{Search: search, SearchFields: []string{"title", "tags"}})
}

func (r *projectRepo) ListByOwner(ctx context.Context, ownerID string) ([]*models.Project, error) {
	return r.find(ctx, Query{Equals: map[string]string{"ownerId": ownerID}})
}

func (r *projectRepo) ListByContributor(ctx context.Context, actorID string) ([]*models.Project, error) {
	return r.find(ctx, Query{HasElement: map[string]string{"contributions.actorId": actorID}})
}

func (r *projectRepo) find(ctx context.Context, q Query) ([]*models.Project, error) {
	projects, err := r.c.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		p.Normalize()
	}
	return projects, nil
}

type mentorRepo struct {
	c Collection[models.Mentor]
}

func (r *mentorRepo) Create(ctx context.Context, mentor *models.Mentor) error {
	assignID(&mentor.ID, &mentor.CreatedAt)
	if mentor.Requests == nil {
		mentor.Requests = []models.MentorRequest{}
	}
	if err := r.c.Insert(ctx, mentor.ID, mentor.CreatedAt, mentor); err != nil {
		return fmt.Errorf("create mentor: %w", err)
	}
	return nil
}

func (r *mentorRepo) GetByID(ctx context.Context, id string) (*models.Mentor, error) {
	return r.c.Get(ctx, id)
}

func (r *mentorRepo) Update(ctx context.Context, mentor *models.Mentor) error {
	if err := r.c.Replace(ctx, mentor.ID, mentor); err != nil {
		return fmt.Errorf("update mentor: %w", err)
	}
	return nil
}

func (r *mentorRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.c.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete mentor: %w", err)
	}
	return nil
}

func (r *mentorRepo) List(ctx context.Context) ([]*models.Mentor, error) {
	return r.c.Find(ctx, Query{})
}

type grantRepo struct {
	c Collection[models.Grant]
}

func (r *grantRepo) Create(ctx context.Context, grant *models.Grant) error {
	assignID(&grant.ID, &grant.CreatedAt)
	if err := r.c.Insert(ctx, grant.ID, grant.CreatedAt, grant); err != nil {
		return fmt.Errorf("create grant: %w", err)
	}
	return nil
}

func (r *grantRepo) GetByID(ctx context.Context, id string) (*models.Grant, error) {
	return r.c.Get(ctx, id)
}

func (r *grantRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.c.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete grant: %w", err)
	}
	return nil
}

func (r *grantRepo) List(ctx context.Context, filter GrantFilter) ([]*models.Grant, error) {
	q := Query{Search: filter.Search, SearchFields: []string{"title", "description", "tags"}}
	if filter.Type != "" {
		q.Equals = map[string]string{"type": string(filter.Type)}
	}
	grants, err := r.c.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(grants, func(i, j int) bool {
		a, b := grants[i], grants[j]
		if !a.Deadline.Equal(b.Deadline) {
			return a.Deadline.Before(b.Deadline)
		}
		return a.Featured && !b.Featured
	})
	return grants, nil
}

type launchRepo struct {
	c Collection[models.Launch]
}

func (r *launchRepo) Create(ctx context.Context, launch *models.Launch) error {
	assignID(&launch.ID, &launch.CreatedAt)
	if err := r.c.Insert(ctx, launch.ID, launch.CreatedAt, launch); err != nil {
		return fmt.Errorf("create launch: %w", err)
	}
	return nil
}

func (r *launchRepo) GetByID(ctx context.Context, id string) (*models.Launch, error) {
	return r.c.Get(ctx, id)
}

func (r *launchRepo) GetByProjectID(ctx context.Context, projectID string) (*models.Launch, error) {
	return r.c.FindOne(ctx, Query{Equals: map[string]string{"projectId": projectID}})
}

func (r *launchRepo) Update(ctx context.Context, launch *models.Launch) error {
	if err := r.c.Replace(ctx, launch.ID, launch); err != nil {
		return fmt.Errorf("update launch: %w", err)
	}
	return nil
}

func (r *launchRepo) List(ctx context.Context) ([]*models.Launch, error) {
	return r.c.Find(ctx, Query{})
}

type subscriberRepo struct {
	c Collection[models.Subscriber]
}

func (r *subscriberRepo) Create(ctx context.Context, subscriber *models.Subscriber) error {
	assignID(&subscriber.ID, &subscriber.CreatedAt)
	if err := r.c.Insert(ctx, subscriber.ID, subscriber.CreatedAt, subscriber); err != nil {
		return fmt.Errorf("create subscriber: %w", err)
	}
	return nil
}

func (r *subscriberRepo) GetByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	return r.c.FindOne(ctx, Query{Equals: map[string]string{"email": email}})
}
