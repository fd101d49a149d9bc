package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/good-yellow-bee/innohub/internal/api/auth"
	"github.com/good-yellow-bee/innohub/internal/api/users"
	"github.com/good-yellow-bee/innohub/internal/models"
)

var (
	userUsername string
	userEmail    string
	userRole     string
	userSkills   []string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
	Long: `Create and list platform accounts.

Examples:
  innoctl user list
  innoctl user create --username "Mike Code" --email mike@example.com --skills React,Go`,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		list, err := store.Users().List(ctx)
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}

		if output == "json" {
			public := make([]models.PublicUser, 0, len(list))
			for _, u := range list {
				public = append(public, u.Public())
			}
			data, err := json.MarshalIndent(public, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(data))
			return nil
		}

		if len(list) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		fmt.Printf("\n%-36s  %-20s  %-30s  %-10s  %s\n", "ID", "USERNAME", "EMAIL", "ROLE", "CREATED")
		fmt.Println(strings.Repeat("-", 120))
		for _, u := range list {
			fmt.Printf("%-36s  %-20s  %-30s  %-10s  %s\n",
				u.ID, u.Username, u.Email, u.Role, u.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Printf("\nTotal: %d user(s)\n", len(list))
		return nil
	},
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user",
	Long: `Create a new account.

The password is prompted interactively so it stays out of shell history.
It must be at least 6 characters.

Roles: student, mentor, recruiter, admin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := users.ValidateUsername(userUsername); err != nil {
			return fmt.Errorf("invalid username: %w", err)
		}
		if err := users.ValidateEmail(userEmail); err != nil {
			return fmt.Errorf("invalid email: %w", err)
		}
		role, err := users.ValidateRole(userRole)
		if err != nil {
			return fmt.Errorf("invalid role: %w", err)
		}

		password, err := promptPassword("Enter password: ")
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if err := auth.ValidatePassword(password); err != nil {
			return fmt.Errorf("invalid password: %w", err)
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("read password confirmation: %w", err)
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}

		ctx := cmd.Context()
		store, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		user, err := createUser(ctx, store.Users(), newAccount{
			Username: userUsername,
			Email:    userEmail,
			Password: password,
			Role:     role,
			Skills:   userSkills,
		})
		if err != nil {
			return err
		}

		fmt.Printf("\nUser created successfully:\n")
		fmt.Printf("  ID:       %s\n", user.ID)
		fmt.Printf("  Username: %s\n", user.Username)
		fmt.Printf("  Email:    %s\n", user.Email)
		fmt.Printf("  Role:     %s\n", user.Role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userListCmd)
	userCmd.AddCommand(userCreateCmd)

	userCreateCmd.Flags().StringVar(&userUsername, "username", "", "username for the new user (required)")
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "email for the new user (required)")
	userCreateCmd.Flags().StringVar(&userRole, "role", "student", "role: student, mentor, recruiter or admin")
	userCreateCmd.Flags().StringSliceVar(&userSkills, "skills", nil, "comma separated skills")
	userCreateCmd.MarkFlagRequired("username")
	userCreateCmd.MarkFlagRequired("email")
}

// accountStore is the slice of UserRepository account creation needs.
type accountStore interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type newAccount struct {
	Username   string
	Email      string
	Password   string
	Role       models.Role
	Skills     []string
	Bio        string
	Avatar     string
	LookingFor []string
}

// createUser hashes the password and inserts the account, refusing a taken
// username or email.
func createUser(ctx context.Context, repo accountStore, a newAccount) (*models.User, error) {
	username := strings.TrimSpace(a.Username)
	email := strings.ToLower(strings.TrimSpace(a.Email))

	existing, err := repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("username '%s' already exists", username)
	}
	existing, err = repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("email '%s' already exists", email)
	}

	hash, err := auth.HashPassword(a.Password)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(username, email, a.Role)
	user.PasswordHash = hash
	user.Bio = a.Bio
	user.Avatar = a.Avatar
	if a.Skills != nil {
		user.Skills = a.Skills
	}
	if a.LookingFor != nil {
		user.LookingFor = a.LookingFor
	}

	if err := repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// promptPassword reads a password without echo, falling back to a plain
// line read when stdin is not a terminal.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)

	fd := int(syscall.Stdin)
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
