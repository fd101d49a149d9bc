//go:build integration

package storage

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/good-yellow-bee/innohub/internal/models"
)

// Integration tests require a running MongoDB.
// Run with: INNOHUB_TEST_MONGO_URI=mongodb://localhost:27017 go test -tags=integration ./internal/storage/...

func setupMongoTest(t *testing.T) (*MongoStorage, func()) {
	t.Helper()

	uri := os.Getenv("INNOHUB_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("INNOHUB_TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	store := NewMongoStorage(uri, "innohub_test_"+uuid.New().String()[:8])
	if err := store.Open(ctx); err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		t.Fatalf("migrate: %v", err)
	}

	cleanup := func() {
		store.db.Drop(context.Background())
		store.Close()
	}

	return store, cleanup
}

func TestMongoStorage_Users_Integration(t *testing.T) {
	store, cleanup := setupMongoTest(t)
	defer cleanup()
	ctx := context.Background()

	user := models.NewUser("sarah", "sarah@example.com", models.RoleStudent)
	if err := store.Users().Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	got, err := store.Users().GetByEmail(ctx, "sarah@example.com")
	if err != nil || got == nil {
		t.Fatalf("get by email: %v, %v", got, err)
	}
	if got.ID != user.ID {
		t.Errorf("id = %q, want %q", got.ID, user.ID)
	}

	err = store.Users().Create(ctx, models.NewUser("sarah", "x@example.com", models.RoleStudent))
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate error = %v, want ErrDuplicate", err)
	}
}

func TestMongoStorage_ProjectQueries_Integration(t *testing.T) {
	store, cleanup := setupMongoTest(t)
	defer cleanup()
	ctx := context.Background()

	p := models.NewProject("EcoDelivery", "green logistics", "owner-1")
	p.Tags = []string{"Sustainability"}
	p.Contributions = append(p.Contributions, models.Contribution{ActorID: "user-2", Action: models.ActionCommented})
	if err := store.Projects().Create(ctx, p); err != nil {
		t.Fatalf("create project: %v", err)
	}

	found, err := store.Projects().List(ctx, "sustain")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(found) != 1 {
		t.Errorf("search len = %d, want 1", len(found))
	}

	byContributor, err := store.Projects().ListByContributor(ctx, "user-2")
	if err != nil {
		t.Fatalf("list by contributor: %v", err)
	}
	if len(byContributor) != 1 {
		t.Errorf("contributor len = %d, want 1", len(byContributor))
	}

	if err := store.Projects().Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := store.Projects().GetByID(ctx, p.ID)
	if got != nil {
		t.Error("project should be deleted")
	}
}
