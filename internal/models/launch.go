package models

import "time"

// MaxTaglineLength bounds a launch tagline.
const MaxTaglineLength = 140

// Launch is the public announcement of a project. At most one per project.
type Launch struct {
	ID          string    `json:"id" bson:"_id"`
	ProjectID   string    `json:"projectId" bson:"projectId"`
	LauncherID  string    `json:"launcherId" bson:"launcherId"`
	Title       string    `json:"title" bson:"title"`
	Tagline     string    `json:"tagline" bson:"tagline"`
	Description string    `json:"description" bson:"description"`
	Images      []string  `json:"images" bson:"images"`
	Tags        []string  `json:"tags" bson:"tags"`
	Upvotes     []string  `json:"upvotes" bson:"upvotes"`
	Comments    []Comment `json:"comments" bson:"comments"`
	WebsiteURL  string    `json:"websiteUrl,omitempty" bson:"websiteUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

// ToggleUpvote adds or removes userID and reports whether the vote is now present.
func (l *Launch) ToggleUpvote(userID string) bool {
	for i, id := range l.Upvotes {
		if id == userID {
			l.Upvotes = append(l.Upvotes[:i], l.Upvotes[i+1:]...)
			return false
		}
	}
	l.Upvotes = append(l.Upvotes, userID)
	return true
}
