package service

import (
	"sort"
	"strings"

	"prooffolio/internal/models"
)

// SearchResult pairs a username with its profile for the home listing.
type SearchResult struct {
	Username string
	Profile  models.Profile
}

// SearchProfiles filters profiles by case-insensitive substring match
// against username, display name, or bio, and sorts by creation time
// descending. Profiles without a creation time sort as oldest. An empty
// query matches everything.
func SearchProfiles(all map[string]models.Profile, query string) []SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))

	results := make([]SearchResult, 0, len(all))
	for username, p := range all {
		if q != "" &&
			!strings.Contains(strings.ToLower(username), q) &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Bio), q) {
			continue
		}
		results = append(results, SearchResult{Username: username, Profile: p})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Profile.CreatedAt != b.Profile.CreatedAt {
			return a.Profile.CreatedAt > b.Profile.CreatedAt
		}
		// Map iteration order is random; break ties for a stable listing.
		return a.Username < b.Username
	})

	return results
}
