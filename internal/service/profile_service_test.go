package service

import (
	"context"
	"testing"
	"time"

	"prooffolio/internal/models"
	"prooffolio/internal/repository"
	"prooffolio/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService wires a service over a fresh in-memory store with a fixed
// clock and deterministic ids.
func newTestService(t *testing.T) (*ProfileService, repository.ProfileRepository, repository.SessionRepository) {
	t.Helper()

	kv := storage.NewMemoryKV()
	profiles := repository.NewProfileRepository(kv)
	sessions := repository.NewSessionRepository(kv)

	svc := NewProfileService(profiles, sessions)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	n := 0
	svc.newID = func() string {
		n++
		return []string{"id-1", "id-2", "id-3", "id-4"}[n-1]
	}
	return svc, profiles, sessions
}

func TestCreateProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("creates record and establishes session", func(t *testing.T) {
		t.Parallel()
		svc, profiles, sessions := newTestService(t)

		_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "jane-doe", Name: "Jane Doe"})
		require.NoError(t, err)

		got, err := profiles.Get(ctx, "jane-doe")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", got.Name)
		assert.Equal(t, []models.Entry{}, got.Entries)
		assert.Equal(t, int64(1700000000000), got.CreatedAt)

		active, err := sessions.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "jane-doe", active)
	})

	t.Run("slugifies the submitted username", func(t *testing.T) {
		t.Parallel()
		svc, profiles, _ := newTestService(t)

		_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "Jane Doe!", Name: "Jane"})
		require.NoError(t, err)

		_, err = profiles.Get(ctx, "jane-doe")
		assert.NoError(t, err)
	})

	t.Run("rejects empty username or name", func(t *testing.T) {
		t.Parallel()
		svc, _, sessions := newTestService(t)

		_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "", Name: "Jane"})
		assert.True(t, models.IsValidation(err))

		_, err = svc.CreateProfile(ctx, CreateProfileInput{Username: "jane", Name: "   "})
		assert.True(t, models.IsValidation(err))

		active, err := sessions.Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, active)
	})

	t.Run("taken username leaves record untouched and sets no session", func(t *testing.T) {
		t.Parallel()
		svc, profiles, sessions := newTestService(t)

		_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "jane", Name: "Jane"})
		require.NoError(t, err)
		require.NoError(t, sessions.Clear(ctx))

		_, err = svc.CreateProfile(ctx, CreateProfileInput{Username: "jane", Name: "Impostor"})
		assert.True(t, models.IsConflict(err))

		got, err := profiles.Get(ctx, "jane")
		require.NoError(t, err)
		assert.Equal(t, "Jane", got.Name, "existing record must be unmodified")

		active, err := sessions.Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, active, "failed create must not establish a session")
	})
}

func TestUpdateProfileInfo(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, profiles, _ := newTestService(t)

	_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "jane", Name: "Jane"})
	require.NoError(t, err)
	_, err = svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "A", Link: "https://a.example"})
	require.NoError(t, err)

	_, err = svc.UpdateProfileInfo(ctx, UpdateProfileInfoInput{
		Username: "jane", Name: "Jane D.", Bio: "maker", Image: "https://img.example/j.png",
	})
	require.NoError(t, err)

	got, err := profiles.Get(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, "Jane D.", got.Name)
	assert.Equal(t, "maker", got.Bio)
	assert.Equal(t, "https://img.example/j.png", got.Image)
	assert.Len(t, got.Entries, 1, "entries must be untouched by info updates")

	_, err = svc.UpdateProfileInfo(ctx, UpdateProfileInfoInput{Username: "jane", Name: ""})
	assert.True(t, models.IsValidation(err))
}

func TestSaveEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("adds entries in insertion order", func(t *testing.T) {
		t.Parallel()
		svc, profiles, _ := newTestService(t)
		_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "jane", Name: "Jane"})
		require.NoError(t, err)

		_, err = svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "A", Link: "https://a.example"})
		require.NoError(t, err)
		_, err = svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "B", Link: "https://b.example"})
		require.NoError(t, err)

		got, err := profiles.Get(ctx, "jane")
		require.NoError(t, err)
		require.Len(t, got.Entries, 2)
		assert.Equal(t, "A", got.Entries[0].Title)
		assert.Equal(t, "B", got.Entries[1].Title)
	})

	t.Run("requires title and link after trimming", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)
		_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "jane", Name: "Jane"})
		require.NoError(t, err)

		_, err = svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "  ", Link: "https://a.example"})
		assert.True(t, models.IsValidation(err))
		_, err = svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "A", Link: ""})
		assert.True(t, models.IsValidation(err))
	})

	t.Run("editing keeps the id and replaces in place", func(t *testing.T) {
		t.Parallel()
		svc, profiles, _ := newTestService(t)
		_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "jane", Name: "Jane"})
		require.NoError(t, err)

		first, err := svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "A", Link: "https://a.example"})
		require.NoError(t, err)
		_, err = svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "B", Link: "https://b.example"})
		require.NoError(t, err)

		_, err = svc.SaveEntry(ctx, SaveEntryInput{
			Username: "jane", EntryID: first.ID, Title: "A2", Link: "https://a2.example",
		})
		require.NoError(t, err)

		got, err := profiles.Get(ctx, "jane")
		require.NoError(t, err)
		require.Len(t, got.Entries, 2)
		assert.Equal(t, first.ID, got.Entries[0].ID)
		assert.Equal(t, "A2", got.Entries[0].Title)
		assert.Equal(t, "B", got.Entries[1].Title)
	})

	t.Run("editing an unknown id fails", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newTestService(t)
		_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "jane", Name: "Jane"})
		require.NoError(t, err)

		_, err = svc.SaveEntry(ctx, SaveEntryInput{
			Username: "jane", EntryID: "ghost", Title: "A", Link: "https://a.example",
		})
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("featured flag moves to the entry just saved", func(t *testing.T) {
		t.Parallel()
		svc, profiles, _ := newTestService(t)
		_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "jane", Name: "Jane"})
		require.NoError(t, err)

		a, err := svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "A", Link: "https://a.example"})
		require.NoError(t, err)
		b, err := svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "B", Link: "https://b.example", Featured: true})
		require.NoError(t, err)

		// Flip featured from B to A via an edit of A.
		_, err = svc.SaveEntry(ctx, SaveEntryInput{
			Username: "jane", EntryID: a.ID, Title: "A", Link: "https://a.example", Featured: true,
		})
		require.NoError(t, err)

		got, err := profiles.Get(ctx, "jane")
		require.NoError(t, err)
		assert.True(t, got.EntryByID(a.ID).Featured)
		assert.False(t, got.EntryByID(b.ID).Featured)

		featured := 0
		for _, en := range got.Entries {
			if en.Featured {
				featured++
			}
		}
		assert.Equal(t, 1, featured, "at most one featured entry per profile")
	})

	t.Run("new featured entry clears all siblings", func(t *testing.T) {
		t.Parallel()
		svc, profiles, _ := newTestService(t)
		_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "jane", Name: "Jane"})
		require.NoError(t, err)

		_, err = svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "A", Link: "https://a.example", Featured: true})
		require.NoError(t, err)
		c, err := svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "C", Link: "https://c.example", Featured: true})
		require.NoError(t, err)

		got, err := profiles.Get(ctx, "jane")
		require.NoError(t, err)
		featuredIDs := []string{}
		for _, en := range got.Entries {
			if en.Featured {
				featuredIDs = append(featuredIDs, en.ID)
			}
		}
		assert.Equal(t, []string{c.ID}, featuredIDs)
	})
}

func TestDeleteEntry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, profiles, _ := newTestService(t)

	_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "jane", Name: "Jane"})
	require.NoError(t, err)
	a, err := svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "A", Link: "https://a.example"})
	require.NoError(t, err)
	b, err := svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "B", Link: "https://b.example"})
	require.NoError(t, err)
	c, err := svc.SaveEntry(ctx, SaveEntryInput{Username: "jane", Title: "C", Link: "https://c.example"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEntry(ctx, "jane", b.ID))

	got, err := profiles.Get(ctx, "jane")
	require.NoError(t, err)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, a.ID, got.Entries[0].ID, "order of remaining entries is preserved")
	assert.Equal(t, c.ID, got.Entries[1].ID)

	// Unknown id is a no-op.
	require.NoError(t, svc.DeleteEntry(ctx, "jane", "ghost"))
	got, err = profiles.Get(ctx, "jane")
	require.NoError(t, err)
	assert.Len(t, got.Entries, 2)
}

func TestDeleteProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("removes record and clears matching session", func(t *testing.T) {
		t.Parallel()
		svc, profiles, sessions := newTestService(t)
		_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "jane", Name: "Jane"})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteProfile(ctx, "jane"))

		_, err = profiles.Get(ctx, "jane")
		assert.True(t, models.IsNotFound(err))

		active, err := sessions.Get(ctx)
		require.NoError(t, err)
		assert.Empty(t, active)
	})

	t.Run("leaves an unrelated session alone", func(t *testing.T) {
		t.Parallel()
		svc, _, sessions := newTestService(t)
		_, err := svc.CreateProfile(ctx, CreateProfileInput{Username: "jane", Name: "Jane"})
		require.NoError(t, err)
		require.NoError(t, sessions.Set(ctx, "bob"))

		require.NoError(t, svc.DeleteProfile(ctx, "jane"))

		active, err := sessions.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "bob", active)
	})
}
