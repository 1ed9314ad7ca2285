package store

import "github.com/amishk599/coldreach/internal/model"

// NopStore discards drafts. Used when history is disabled.
type NopStore struct{}

// NewNopStore returns a NopStore.
func NewNopStore() *NopStore {
	return &NopStore{}
}

// SaveDraft discards the draft.
func (s *NopStore) SaveDraft(url, jobTitle, email string) error {
	return nil
}

// ListDrafts always returns an empty history.
func (s *NopStore) ListDrafts(limit int) ([]model.Draft, error) {
	return nil, nil
}
