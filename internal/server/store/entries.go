package store

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/dbx"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/entries"
)

// AddJournalEntry encrypts the content fields of e and stores it. CreatedAt
// must be set; a zero UpdatedAt takes the value of CreatedAt. e itself is not
// modified.
func (s *Store) AddJournalEntry(ctx context.Context, e *models.JournalEntry) (string, error) {
	sealed, err := s.sealEntry(e)
	if err != nil {
		return "", err
	}
	if err := s.rm.Entries(s.db).Create(ctx, sealed); err != nil {
		return "", err
	}
	s.logger.Info(ctx, "journal entry added", "entry_id", e.EntryID, "user_id", e.UserID)
	return e.EntryID, nil
}

// AddTrackAndEntry stores t (if new) and e in one transaction. When the entry
// is rejected the track insert is rolled back too.
func (s *Store) AddTrackAndEntry(ctx context.Context, t *models.Track, e *models.JournalEntry) (string, error) {
	sealed, err := s.sealEntry(e)
	if err != nil {
		return "", err
	}

	err = s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.rm.Tracks(tx).Create(ctx, t); err != nil {
			return err
		}
		return s.rm.Entries(tx).Create(ctx, sealed)
	})
	if err != nil {
		return "", err
	}
	s.logger.Info(ctx, "journal entry added", "entry_id", e.EntryID, "user_id", e.UserID, "track_id", t.SpotifyTrackID)
	return e.EntryID, nil
}

// GetJournalEntriesByTrack returns the entries userID wrote about trackID,
// decrypted. No match yields an empty slice.
func (s *Store) GetJournalEntriesByTrack(ctx context.Context, trackID, userID string) ([]models.JournalEntry, error) {
	rows, err := s.rm.Entries(s.db).ListByTrack(ctx, trackID, userID)
	if err != nil {
		return nil, err
	}
	return s.openEntries(ctx, rows)
}

// GetAllJournalEntries returns every entry of userID, decrypted, in the given order.
func (s *Store) GetAllJournalEntries(ctx context.Context, userID string, order entries.Order) ([]models.JournalEntry, error) {
	rows, err := s.rm.Entries(s.db).ListByUser(ctx, userID, order)
	if err != nil {
		return nil, err
	}
	return s.openEntries(ctx, rows)
}

// UpdateJournalEntry writes the present fields of patch, encrypted, plus
// patch.UpdatedAt to the entry entryID owned by userID. It returns
// common.ErrEmptyPatch when the patch has no content field and
// common.ErrEntryNotFound when the entry does not exist for that user.
func (s *Store) UpdateJournalEntry(ctx context.Context, entryID, userID string, patch models.EntryPatch) (string, error) {
	if patch.Empty() {
		return "", common.ErrEmptyPatch
	}
	if patch.UpdatedAt.IsZero() {
		return "", fmt.Errorf("%w: updated_at is required", common.ErrorValidation)
	}

	fields := []struct {
		column entries.Column
		value  *string
	}{
		{entries.ColumnJournalCover, patch.JournalCover},
		{entries.ColumnEntryTitle, patch.EntryTitle},
		{entries.ColumnEntryText, patch.EntryText},
		{entries.ColumnImageURL, patch.ImageURL},
	}

	changes := make([]entries.Change, 0, len(fields))
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		blob, err := s.env.Seal(*f.value)
		if err != nil {
			return "", err
		}
		changes = append(changes, entries.Change{Column: f.column, Value: blob})
	}

	if err := s.rm.Entries(s.db).Update(ctx, entryID, userID, changes, patch.UpdatedAt); err != nil {
		return "", err
	}
	s.logger.Info(ctx, "journal entry updated", "entry_id", entryID, "user_id", userID, "fields", len(changes))
	return entryID, nil
}

// DeleteJournalEntry returns common.ErrEntryNotFound when userID owns no
// entry with that id.
func (s *Store) DeleteJournalEntry(ctx context.Context, entryID, userID string) error {
	if err := s.rm.Entries(s.db).Delete(ctx, entryID, userID); err != nil {
		return err
	}
	s.logger.Info(ctx, "journal entry deleted", "entry_id", entryID, "user_id", userID)
	return nil
}

func (s *Store) sealEntry(e *models.JournalEntry) (*models.JournalEntry, error) {
	if e.EntryID == "" {
		return nil, fmt.Errorf("%w: entry id is required", common.ErrorValidation)
	}
	if e.CreatedAt.IsZero() {
		return nil, fmt.Errorf("%w: created_at is required", common.ErrorValidation)
	}

	out := *e
	if out.UpdatedAt.IsZero() {
		out.UpdatedAt = out.CreatedAt
	}

	var err error
	if out.JournalCover, err = s.env.SealOptional(e.JournalCover); err != nil {
		return nil, err
	}
	if out.EntryTitle, err = s.env.Seal(e.EntryTitle); err != nil {
		return nil, err
	}
	if out.EntryText, err = s.env.Seal(e.EntryText); err != nil {
		return nil, err
	}
	if out.ImageURL, err = s.env.SealOptional(e.ImageURL); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Store) openEntries(ctx context.Context, rows []models.JournalEntry) ([]models.JournalEntry, error) {
	out := make([]models.JournalEntry, 0, len(rows))
	for _, e := range rows {
		if err := s.openEntry(&e); err != nil {
			s.logger.Warn(ctx, "journal entry unreadable", "entry_id", e.EntryID)
			return nil, fmt.Errorf("entry %s: %w", e.EntryID, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Store) openEntry(e *models.JournalEntry) error {
	var err error
	if e.JournalCover, err = s.env.OpenOptional(e.JournalCover); err != nil {
		return err
	}
	if e.EntryTitle, err = s.env.Open(e.EntryTitle); err != nil {
		return err
	}
	if e.EntryText, err = s.env.Open(e.EntryText); err != nil {
		return err
	}
	if e.ImageURL, err = s.env.OpenOptional(e.ImageURL); err != nil {
		return err
	}
	return nil
}
