package service

import (
	"testing"

	"prooffolio/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSearchProfiles(t *testing.T) {
	t.Parallel()

	all := map[string]models.Profile{
		"jane-doe": {Name: "Jane Doe", Bio: "designer", CreatedAt: 300},
		"bob":      {Name: "Bob", Bio: "Go developer", CreatedAt: 200},
		"old-timer": {Name: "Nameless"}, // no createdAt: sorts oldest
		"carol":     {Name: "Carol", Bio: "photographer", CreatedAt: 100},
	}

	t.Run("empty query returns all, newest first", func(t *testing.T) {
		t.Parallel()
		got := SearchProfiles(all, "")
		usernames := make([]string, len(got))
		for i, r := range got {
			usernames[i] = r.Username
		}
		assert.Equal(t, []string{"jane-doe", "bob", "carol", "old-timer"}, usernames)
	})

	t.Run("matches username, name, and bio, case-insensitively", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, SearchProfiles(all, "JANE"), 1)   // username + name
		assert.Len(t, SearchProfiles(all, "develop"), 1) // bio
		assert.Len(t, SearchProfiles(all, "o"), 4)
	})

	t.Run("no match yields empty, distinct from empty store", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, SearchProfiles(all, "zzz"))
		assert.Empty(t, SearchProfiles(map[string]models.Profile{}, ""))
	})
}
