// Package models defines the domain records and error types for the application.
package models

import (
	"math/rand"
	"strconv"
	"time"
)

// Profile is a user's portfolio record, keyed by username in the store.
// JSON field names match the persisted blob; there is no schema versioning,
// so readers tolerate absent fields (a nil Entries slice renders as empty,
// a zero CreatedAt sorts as oldest).
type Profile struct {
	Name      string  `json:"name"`
	Bio       string  `json:"bio"`
	Image     string  `json:"image"`
	Entries   []Entry `json:"entries"`
	CreatedAt int64   `json:"createdAt"` // unix milliseconds
}

// Entry is one showcased work item within a profile. The id is unique within
// the owning profile and immutable after creation.
type Entry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Thumbnail   string `json:"thumbnail"`
	Tag         string `json:"tag"`
	Featured    bool   `json:"featured"`
}

// FeaturedEntry returns the profile's featured entry, or nil when none is set.
func (p *Profile) FeaturedEntry() *Entry {
	for i := range p.Entries {
		if p.Entries[i].Featured {
			return &p.Entries[i]
		}
	}
	return nil
}

// EntryByID returns the entry with the given id, or nil when absent.
func (p *Profile) EntryByID(id string) *Entry {
	for i := range p.Entries {
		if p.Entries[i].ID == id {
			return &p.Entries[i]
		}
	}
	return nil
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewEntryID generates a new entry id from a base-36 unix-millisecond
// component plus random base-36 characters. Uniqueness is best-effort, not
// cryptographic.
func NewEntryID() string {
	id := make([]byte, 0, 16)
	id = strconv.AppendInt(id, time.Now().UnixMilli(), 36)
	for i := 0; i < 6; i++ {
		id = append(id, idAlphabet[rand.Intn(len(idAlphabet))])
	}
	return string(id)
}
