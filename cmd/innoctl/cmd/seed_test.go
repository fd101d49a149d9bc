package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/good-yellow-bee/innohub/internal/api/auth"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
	"github.com/good-yellow-bee/innohub/internal/storage/storagetest"
)

func TestSeedDatabase(t *testing.T) {
	store := storagetest.NewSQLite(t)
	ctx := context.Background()

	var out bytes.Buffer
	seeded, err := seedDatabase(ctx, store, &out)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !seeded {
		t.Fatal("expected seed to write data")
	}

	n, err := store.Users().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != int64(len(demoUsers)) {
		t.Errorf("users = %d, want %d", n, len(demoUsers))
	}

	emily, err := store.Users().GetByEmail(ctx, "emily@example.com")
	if err != nil || emily == nil {
		t.Fatalf("get emily: %v, %v", emily, err)
	}
	if emily.Role != models.RoleMentor {
		t.Errorf("role = %q, want Mentor", emily.Role)
	}
	if !auth.CheckPassword(emily.PasswordHash, demoPassword) {
		t.Error("demo password does not match stored hash")
	}
	if !strings.Contains(emily.Avatar, "seed=") {
		t.Errorf("avatar = %q", emily.Avatar)
	}

	mentors, _ := store.Mentors().List(ctx)
	if len(mentors) != len(demoMentors()) {
		t.Errorf("mentors = %d, want %d", len(mentors), len(demoMentors()))
	}
	grants, _ := store.Grants().List(ctx, storage.GrantFilter{})
	if len(grants) != 3 {
		t.Errorf("grants = %d, want 3", len(grants))
	}
}

func TestSeedDatabase_SkipsPopulated(t *testing.T) {
	store := storagetest.NewSQLite(t)
	ctx := context.Background()
	for _, name := range []string{"one", "two", "three"} {
		storagetest.CreateUser(t, store, name, models.RoleStudent)
	}

	var out bytes.Buffer
	seeded, err := seedDatabase(ctx, store, &out)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if seeded {
		t.Error("seed should skip a populated database")
	}
	if !strings.Contains(out.String(), "Skipping") {
		t.Errorf("output = %q", out.String())
	}
	mentors, _ := store.Mentors().List(ctx)
	if len(mentors) != 0 {
		t.Errorf("mentors = %d, want 0", len(mentors))
	}
}

func TestCreateUser_RejectsTaken(t *testing.T) {
	store := storagetest.NewSQLite(t)
	ctx := context.Background()
	storagetest.CreateUser(t, store, "sarah", models.RoleStudent)

	tests := []struct {
		name    string
		account newAccount
		want    string
	}{
		{"username", newAccount{Username: "sarah", Email: "other@example.com", Password: "secret1"}, "username"},
		{"email", newAccount{Username: "other", Email: "SARAH@example.com", Password: "secret1"}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := createUser(ctx, store.Users(), tt.account)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %s", err, tt.want)
			}
		})
	}

	user, err := createUser(ctx, store.Users(), newAccount{
		Username: " Nora ", Email: "Nora@Example.com", Password: "secret1", Role: models.RoleRecruiter,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Username != "Nora" || user.Email != "nora@example.com" {
		t.Errorf("got %q %q", user.Username, user.Email)
	}
	if len(user.Skills) != 0 || user.Skills == nil {
		t.Errorf("skills = %v, want empty non-nil", user.Skills)
	}
}
