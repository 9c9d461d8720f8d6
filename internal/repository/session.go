package repository

import (
	"context"

	"prooffolio/internal/models"
	"prooffolio/internal/storage"
)

// sessionKey is the storage key holding the active username. It is
// independent of the profile map key.
const sessionKey = "session"

// SessionRepository is the single-slot marker of which username is currently
// signed in. An empty string means signed out. It gates edit and delete
// flows in the UI sense only; there is no access control below it.
type SessionRepository interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, username string) error
	Clear(ctx context.Context) error
}

type sessionRepository struct {
	kv storage.KV
}

// NewSessionRepository returns a SessionRepository backed by kv.
func NewSessionRepository(kv storage.KV) SessionRepository {
	return &sessionRepository{kv: kv}
}

func (r *sessionRepository) Get(ctx context.Context) (string, error) {
	v, _, err := r.kv.Get(ctx, sessionKey)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return v, nil
}

func (r *sessionRepository) Set(ctx context.Context, username string) error {
	if err := r.kv.Set(ctx, sessionKey, username); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, sessionKey); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
