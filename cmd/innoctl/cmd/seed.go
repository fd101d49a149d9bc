package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/innohub/internal/mentorship"
	"github.com/good-yellow-bee/innohub/internal/models"
	"github.com/good-yellow-bee/innohub/internal/storage"
)

// demoPassword is shared by every seeded account.
const demoPassword = "password123"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo users, mentors and grants",
	Long: `Load a small demo data set.

Nothing is written when the database already holds more than two users.
Every demo account uses the password "password123".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		_, err = seedDatabase(ctx, store, os.Stdout)
		return err
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

var demoUsers = []newAccount{
	{
		Username:   "Sarah Design",
		Email:      "sarah@example.com",
		Role:       models.RoleStudent,
		Skills:     []string{"UI/UX", "Figma", "Adobe XD", "Branding"},
		Bio:        "Creative designer looking for a developer to build a mobile app.",
		LookingFor: []string{"Developer"},
	},
	{
		Username:   "Mike Code",
		Email:      "mike@example.com",
		Role:       models.RoleStudent,
		Skills:     []string{"React", "Node.js", "MongoDB", "Python"},
		Bio:        "Full stack developer interested in AI and fintech projects.",
		LookingFor: []string{"Designer", "Product Manager"},
	},
	{
		Username:   "Alex Product",
		Email:      "alex@example.com",
		Role:       models.RoleStudent,
		Skills:     []string{"Product Management", "Agile", "SEO", "Marketing"},
		Bio:        "Aspiring PM looking to lead a diverse team.",
		LookingFor: []string{"Developer"},
	},
	{
		Username:   "Dr. Emily Omni",
		Email:      "emily@example.com",
		Role:       models.RoleMentor,
		Skills:     []string{"Business Strategy", "Fundraising", "Leadership"},
		Bio:        "Experienced entrepreneur helping students launch startups.",
		LookingFor: []string{},
	},
}

func demoMentors() []*models.Mentor {
	return []*models.Mentor{
		{
			Name:    "Priya Raman",
			Role:    "Staff Engineer",
			Company: "Northwind Labs",
			Bio:     "Helps student teams scope MVPs and pick a stack they can ship.",
			Skills:  []string{"System Design", "Go", "Cloud"},
			Avatar:  mentorship.AvatarURL("Priya Raman"),
		},
		{
			Name:    "Tomás Ibarra",
			Role:    "Venture Partner",
			Company: "Seedling Fund",
			Bio:     "Former founder. Reviews pitch decks and fundraising plans.",
			Skills:  []string{"Fundraising", "Pitching", "Go-to-Market"},
			Avatar:  mentorship.AvatarURL("Tomás Ibarra"),
		},
	}
}

func demoGrants(now time.Time) []*models.Grant {
	return []*models.Grant{
		{
			Title:       "Campus Climate Challenge",
			Description: "Funding for student projects that cut campus emissions.",
			Type:        models.GrantTypeCompetition,
			Amount:      "$10,000",
			Deadline:    now.AddDate(0, 2, 0),
			Eligibility: []string{"Undergraduate", "Postgraduate"},
			Link:        "https://example.com/climate-challenge",
			Tags:        []string{"Sustainability", "Climate"},
			Featured:    true,
		},
		{
			Title:       "Student Founder Micro-Grant",
			Description: "Small grants to validate an early-stage idea.",
			Type:        models.GrantTypeGrant,
			Amount:      "$2,500",
			Deadline:    now.AddDate(0, 1, 0),
			Eligibility: []string{"Enrolled students"},
			Link:        "https://example.com/micro-grant",
			Tags:        []string{"Startup", "Validation"},
		},
		{
			Title:       "48h HealthTech Hackathon",
			Description: "Build a prototype for patient-facing health tools in a weekend.",
			Type:        models.GrantTypeHackathon,
			Amount:      "Prizes",
			Deadline:    now.AddDate(0, 0, 21),
			Eligibility: []string{"Teams of 2-5"},
			Link:        "https://example.com/healthtech-hackathon",
			Tags:        []string{"Health", "AI"},
		},
	}
}

// seedDatabase writes the demo data set and reports whether anything was
// written. Mentors and grants are only added to empty collections.
func seedDatabase(ctx context.Context, store storage.Storage, out io.Writer) (bool, error) {
	count, err := store.Users().Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 2 {
		fmt.Fprintln(out, "Database already has users. Skipping seed.")
		return false, nil
	}

	for _, account := range demoUsers {
		account.Password = demoPassword
		account.Avatar = mentorship.AvatarURL(account.Username)
		user, err := createUser(ctx, store.Users(), account)
		if err != nil {
			return false, err
		}
		PrintVerbose("Created user %s (%s)", user.Username, user.ID)
	}

	mentors, err := store.Mentors().List(ctx)
	if err != nil {
		return false, fmt.Errorf("list mentors: %w", err)
	}
	if len(mentors) == 0 {
		for _, m := range demoMentors() {
			if err := store.Mentors().Create(ctx, m); err != nil {
				return false, err
			}
		}
	}

	grants, err := store.Grants().List(ctx, storage.GrantFilter{})
	if err != nil {
		return false, fmt.Errorf("list grants: %w", err)
	}
	if len(grants) == 0 {
		for _, g := range demoGrants(time.Now()) {
			if err := store.Grants().Create(ctx, g); err != nil {
				return false, err
			}
		}
	}

	fmt.Fprintf(out, "Seeded %d users. Password for all: %s\n", len(demoUsers), demoPassword)
	return true, nil
}
