// Package service implements the application's use cases over the repositories.
package service

import (
	"context"
	"strings"
	"time"

	"prooffolio/internal/models"
	"prooffolio/internal/repository"
	"prooffolio/internal/validation"
)

// ProfileService carries out profile and entry mutations. Every mutation is
// a single read-modify-write of the whole profile record, so the featured
// invariant always lands in one persisted write.
type ProfileService struct {
	profiles repository.ProfileRepository
	sessions repository.SessionRepository

	// Injectable in tests.
	now   func() time.Time
	newID func() string
}

// NewProfileService returns a ProfileService over the given repositories.
func NewProfileService(profiles repository.ProfileRepository, sessions repository.SessionRepository) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		sessions: sessions,
		now:      time.Now,
		newID:    models.NewEntryID,
	}
}

// CreateProfileInput carries the create form fields.
type CreateProfileInput struct {
	Username string
	Name     string
	Bio      string
	Image    string
}

// CreateProfile creates a new profile and establishes the session for it.
// A taken username leaves the existing record unmodified and establishes no
// session.
func (s *ProfileService) CreateProfile(ctx context.Context, in CreateProfileInput) (*models.Profile, error) {
	username := validation.Slugify(in.Username)
	name := strings.TrimSpace(in.Name)

	if username == "" || name == "" {
		return nil, models.NewValidationError("Username and display name are required")
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if _, err := s.profiles.Get(ctx, username); err == nil {
		return nil, models.NewConflictError("Username already taken. Choose another.")
	} else if !models.IsNotFound(err) {
		return nil, err
	}

	profile := &models.Profile{
		Name:      name,
		Bio:       strings.TrimSpace(in.Bio),
		Image:     strings.TrimSpace(in.Image),
		Entries:   []models.Entry{},
		CreatedAt: s.now().UnixMilli(),
	}

	if err := s.profiles.Set(ctx, username, profile); err != nil {
		return nil, err
	}
	if err := s.sessions.Set(ctx, username); err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfileInfoInput carries the profile info sub-form fields.
type UpdateProfileInfoInput struct {
	Username string
	Name     string
	Bio      string
	Image    string
}

// UpdateProfileInfo overwrites name, bio, and image on the stored profile.
// Entries are untouched.
func (s *ProfileService) UpdateProfileInfo(ctx context.Context, in UpdateProfileInfoInput) (*models.Profile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Display name is required")
	}

	profile, err := s.profiles.Get(ctx, in.Username)
	if err != nil {
		return nil, err
	}

	profile.Name = name
	profile.Bio = strings.TrimSpace(in.Bio)
	profile.Image = strings.TrimSpace(in.Image)

	if err := s.profiles.Set(ctx, in.Username, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SaveEntryInput carries the entry editor fields. An empty EntryID means a
// new entry; otherwise the entry with that id is replaced.
type SaveEntryInput struct {
	Username    string
	EntryID     string
	Title       string
	Description string
	Link        string
	Thumbnail   string
	Tag         string
	Featured    bool
}

// SaveEntry adds or updates one entry on the profile. When the entry is
// marked featured, the flag is cleared on every sibling in the same
// persisted write, keeping at most one featured entry per profile.
func (s *ProfileService) SaveEntry(ctx context.Context, in SaveEntryInput) (*models.Entry, error) {
	title := strings.TrimSpace(in.Title)
	link := strings.TrimSpace(in.Link)
	if title == "" || link == "" {
		return nil, models.NewValidationError("Title and link are required")
	}

	profile, err := s.profiles.Get(ctx, in.Username)
	if err != nil {
		return nil, err
	}

	entry := models.Entry{
		ID:          in.EntryID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Link:        link,
		Thumbnail:   strings.TrimSpace(in.Thumbnail),
		Tag:         strings.TrimSpace(in.Tag),
		Featured:    in.Featured,
	}
	isNew := entry.ID == ""
	if isNew {
		entry.ID = s.newID()
	}

	// The entry just saved wins the featured slot.
	if entry.Featured {
		for i := range profile.Entries {
			if profile.Entries[i].ID != entry.ID {
				profile.Entries[i].Featured = false
			}
		}
	}

	if isNew {
		profile.Entries = append(profile.Entries, entry)
	} else {
		idx := -1
		for i := range profile.Entries {
			if profile.Entries[i].ID == entry.ID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return nil, models.NewNotFoundError("Entry", entry.ID)
		}
		profile.Entries[idx] = entry
	}

	if err := s.profiles.Set(ctx, in.Username, profile); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteEntry removes the entry with the given id, preserving the order of
// the remaining entries. An unknown id is a no-op.
func (s *ProfileService) DeleteEntry(ctx context.Context, username, entryID string) error {
	profile, err := s.profiles.Get(ctx, username)
	if err != nil {
		return err
	}

	kept := profile.Entries[:0]
	for _, en := range profile.Entries {
		if en.ID != entryID {
			kept = append(kept, en)
		}
	}
	profile.Entries = kept

	return s.profiles.Set(ctx, username, profile)
}

// DeleteProfile removes the profile and all its entries, and clears the
// session if the deleted profile was the active one.
func (s *ProfileService) DeleteProfile(ctx context.Context, username string) error {
	if err := s.profiles.Delete(ctx, username); err != nil {
		return err
	}

	active, err := s.sessions.Get(ctx)
	if err != nil {
		return err
	}
	if active == username {
		return s.sessions.Clear(ctx)
	}
	return nil
}

// SignOut clears the session marker.
func (s *ProfileService) SignOut(ctx context.Context) error {
	return s.sessions.Clear(ctx)
}
