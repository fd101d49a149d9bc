// Package teammatch ranks potential teammates by skill overlap.
package teammatch

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/good-yellow-bee/innohub/internal/models"
)

const (
	// MaxResults caps a ranked result list.
	MaxResults = 10
	// PoolSize is how many candidates are scored per request.
	PoolSize = 20

	maxCommonInterests = 3
	syntheticCount     = 4
)

// Candidate is one ranked teammate suggestion.
type Candidate struct {
	ID              string   `json:"id"`
	Username        string   `json:"username"`
	Role            string   `json:"role"`
	Avatar          string   `json:"avatar,omitempty"`
	Bio             string   `json:"bio,omitempty"`
	Skills          []string `json:"skills"`
	MatchScore      int      `json:"matchScore"`
	CommonInterests []string `json:"commonInterests"`
}

// Score returns round(50 + |common|/|union| * 50) over case-insensitive
// skill sets, clamped to [50, 100]. Either set empty scores 50.
func Score(mine, theirs []string) int {
	a, b := skillSet(mine), skillSet(theirs)
	if len(a) == 0 || len(b) == 0 {
		return 50
	}

	union := make(map[string]struct{}, len(a)+len(b))
	common := 0
	for s := range a {
		union[s] = struct{}{}
		if _, ok := b[s]; ok {
			common++
		}
	}
	for s := range b {
		union[s] = struct{}{}
	}

	score := int(math.Round(50 + float64(common)/float64(len(union))*50))
	return min(100, max(50, score))
}

// CommonInterests returns up to three of mine that also appear in theirs,
// ignoring case, in the order of mine.
func CommonInterests(mine, theirs []string) []string {
	set := skillSet(theirs)
	return sharedSkills(mine, func(s string) bool {
		_, ok := set[strings.ToLower(s)]
		return ok
	})
}

// exactInterests is CommonInterests with case-sensitive matching. Synthetic
// candidates are compared this way.
func exactInterests(mine, theirs []string) []string {
	return sharedSkills(mine, func(s string) bool {
		return slices.Contains(theirs, s)
	})
}

func sharedSkills(mine []string, shared func(string) bool) []string {
	out := []string{}
	for _, s := range mine {
		if shared(s) {
			out = append(out, s)
			if len(out) == maxCommonInterests {
				break
			}
		}
	}
	return out
}

// Rank scores users against the requester's skills and returns the best
// MaxResults, highest score first.
func Rank(requesterSkills []string, users []*models.User) []Candidate {
	out := make([]Candidate, 0, len(users))
	for _, u := range users {
		skills := u.Skills
		if skills == nil {
			skills = []string{}
		}
		out = append(out, Candidate{
			ID:              u.ID,
			Username:        u.Username,
			Role:            string(u.Role),
			Avatar:          u.Avatar,
			Bio:             u.Bio,
			Skills:          skills,
			MatchScore:      Score(requesterSkills, skills),
			CommonInterests: CommonInterests(requesterSkills, skills),
		})
	}

	sortByScore(out)
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}

var (
	syntheticRoles      = []string{"Developer", "Designer", "Product Manager", "Marketer"}
	syntheticSkillsPool = []string{"React", "Node.js", "Python", "UI/UX", "Figma", "Marketing", "SEO", "Data Science"}
)

// Synthetic returns four placeholder candidates for an empty pool. The
// selection is seeded from the first byte of userID so a user always sees
// the same suggestions. A non-empty role restricts all of them to that role.
func Synthetic(userID, role string, requesterSkills []string) []Candidate {
	roles := syntheticRoles
	if role != "" {
		roles = []string{role}
	}
	seed := 0
	if userID != "" {
		seed = int(userID[0])
	}

	out := make([]Candidate, 0, syntheticCount)
	pool := len(syntheticSkillsPool)
	for i := 0; i < syntheticCount; i++ {
		r := roles[(seed+i)%len(roles)]
		skills := []string{
			syntheticSkillsPool[(seed+i)%pool],
			syntheticSkillsPool[(seed+i+2)%pool],
			syntheticSkillsPool[(seed+i+4)%pool],
		}

		score := Score(requesterSkills, skills)
		if len(requesterSkills) == 0 {
			score = 85 + i
		}

		out = append(out, Candidate{
			ID:              fmt.Sprintf("mock-%d", i),
			Username:        fmt.Sprintf("Innovator %d", i+1),
			Role:            r,
			Bio:             fmt.Sprintf("Passionate %s looking for a team to build something great.", r),
			Skills:          skills,
			MatchScore:      score,
			CommonInterests: exactInterests(requesterSkills, skills),
		})
	}

	sortByScore(out)
	return out
}

func sortByScore(c []Candidate) {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].MatchScore > c[j].MatchScore
	})
}

func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}
