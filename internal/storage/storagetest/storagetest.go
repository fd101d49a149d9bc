// Package storagetest opens throwaway stores for handler tests.
package storagetest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
)

// NewSQLite opens a migrated SQLite store in a temp dir. It is closed and
// removed when the test ends.
func NewSQLite(t testing.TB) storage.Storage {
	t.Helper()

	dir, err := os.MkdirTemp("", "innohub-test-*")
	if err != nil {
		t.Fatalf("create temp dir: %v", err)
	}

	ctx := context.Background()
	store := storage.NewSQLiteStorage(filepath.Join(dir, "test.db"))
	if err := store.Open(ctx); err != nil {
		os.RemoveAll(dir)
		t.Fatalf("open storage: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		os.RemoveAll(dir)
		t.Fatalf("migrate storage: %v", err)
	}

	t.Cleanup(func() {
		store.Close()
		os.RemoveAll(dir)
	})
	return store
}

// CreateUser stores a user named username with the given role and skills.
func CreateUser(t testing.TB, store storage.Storage, username string, role models.Role, skills ...string) *models.User {
	t.Helper()

	user := models.NewUser(username, username+"@example.com", role)
	if len(skills) > 0 {
		user.Skills = skills
	}
	if err := store.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

// CreateProject stores a project owned by ownerID.
func CreateProject(t testing.TB, store storage.Storage, title, ownerID string) *models.Project {
	t.Helper()

	p := models.NewProject(title, title+" description", ownerID)
	if err := store.Projects().Create(context.Background(), p); err != nil {
		t.Fatalf("create project %s: %v", title, err)
	}
	return p
}
