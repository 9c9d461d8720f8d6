// Package repository implements the data access layer over the key-value store.
package repository

import (
	"context"
	"encoding/json"
	"log/slog"

	"prooffolio/internal/models"
	"prooffolio/internal/storage"
)

// profilesKey is the single storage key holding the serialized
// username -> profile map.
const profilesKey = "profiles"

// ProfileRepository defines persistence operations for portfolio profiles.
// The whole map is parsed on every read and rewritten on every write; there
// is no incremental diffing.
type ProfileRepository interface {
	Get(ctx context.Context, username string) (*models.Profile, error)
	Set(ctx context.Context, username string, profile *models.Profile) error
	Delete(ctx context.Context, username string) error
	List(ctx context.Context) (map[string]models.Profile, error)
}

type profileRepository struct {
	kv storage.KV
}

// NewProfileRepository returns a ProfileRepository backed by kv.
func NewProfileRepository(kv storage.KV) ProfileRepository {
	return &profileRepository{kv: kv}
}

// loadAll reads the full profile map. An absent, unreadable, or unparsable
// blob reads as an empty map; that never surfaces as an error.
func (r *profileRepository) loadAll(ctx context.Context) map[string]models.Profile {
	raw, ok, err := r.kv.Get(ctx, profilesKey)
	if err != nil {
		slog.Warn("profile store read failed, treating as empty", "error", err)
		return map[string]models.Profile{}
	}
	if !ok {
		return map[string]models.Profile{}
	}

	var all map[string]models.Profile
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		slog.Warn("profile store blob is not valid JSON, treating as empty", "error", err)
		return map[string]models.Profile{}
	}
	if all == nil {
		return map[string]models.Profile{}
	}
	return all
}

func (r *profileRepository) saveAll(ctx context.Context, all map[string]models.Profile) error {
	data, err := json.Marshal(all)
	if err != nil {
		return models.NewInternalError(err)
	}
	if err := r.kv.Set(ctx, profilesKey, string(data)); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *profileRepository) Get(ctx context.Context, username string) (*models.Profile, error) {
	p, ok := r.loadAll(ctx)[username]
	if !ok {
		return nil, models.NewNotFoundError("Profile", username)
	}
	return &p, nil
}

func (r *profileRepository) Set(ctx context.Context, username string, profile *models.Profile) error {
	all := r.loadAll(ctx)
	all[username] = *profile
	return r.saveAll(ctx, all)
}

func (r *profileRepository) Delete(ctx context.Context, username string) error {
	all := r.loadAll(ctx)
	if _, ok := all[username]; !ok {
		return nil
	}
	delete(all, username)
	return r.saveAll(ctx, all)
}

func (r *profileRepository) List(ctx context.Context) (map[string]models.Profile, error) {
	return r.loadAll(ctx), nil
}
