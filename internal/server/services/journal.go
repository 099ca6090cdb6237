package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/logging"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/entries"
	"github.com/google/uuid"
)

// JournalStore is the part of the record store used by JournalService.
type JournalStore interface {
	AddTrack(ctx context.Context, t *models.Track) (string, error)
	GetTrack(ctx context.Context, id string) (*models.Track, error)
	AddJournalEntry(ctx context.Context, e *models.JournalEntry) (string, error)
	AddTrackAndEntry(ctx context.Context, t *models.Track, e *models.JournalEntry) (string, error)
	GetJournalEntriesByTrack(ctx context.Context, trackID, userID string) ([]models.JournalEntry, error)
	GetAllJournalEntries(ctx context.Context, userID string, order entries.Order) ([]models.JournalEntry, error)
	UpdateJournalEntry(ctx context.Context, entryID, userID string, patch models.EntryPatch) (string, error)
	DeleteJournalEntry(ctx context.Context, entryID, userID string) error
}

// NewEntry is the content of an entry about to be written. Track, when set,
// is stored together with the entry if it is not known yet.
type NewEntry struct {
	TrackID      string        `json:"trackID"`
	Track        *models.Track `json:"track,omitempty"`
	JournalCover *string       `json:"journalCover,omitempty"`
	EntryTitle   string        `json:"entryTitle"`
	EntryText    string        `json:"entryText"`
	ImageURL     *string       `json:"imageURL,omitempty"`
}

// JournalService assigns ids and timestamps to journal writes.
type JournalService struct {
	store  JournalStore
	logger logging.Logger
	now    func() time.Time
	newID  func() string
}

func NewJournalService(store JournalStore, logger logging.Logger) *JournalService {
	return &JournalService{
		store:  store,
		logger: logger.With("module", "journal"),
		now:    func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
		newID:  uuid.NewString,
	}
}

func (s *JournalService) CreateEntry(ctx context.Context, userID string, in NewEntry) (*models.JournalEntry, error) {
	if in.TrackID == "" && in.Track != nil {
		in.TrackID = in.Track.SpotifyTrackID
	}
	if in.TrackID == "" {
		return nil, fmt.Errorf("%w: track id is required", common.ErrorValidation)
	}
	if in.Track != nil && in.Track.SpotifyTrackID != in.TrackID {
		return nil, fmt.Errorf("%w: track metadata is for another track", common.ErrorValidation)
	}

	now := s.now()
	e := &models.JournalEntry{
		EntryID:      s.newID(),
		UserID:       userID,
		TrackID:      in.TrackID,
		JournalCover: in.JournalCover,
		EntryTitle:   in.EntryTitle,
		EntryText:    in.EntryText,
		ImageURL:     in.ImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var err error
	if in.Track != nil {
		_, err = s.store.AddTrackAndEntry(ctx, in.Track, e)
	} else {
		_, err = s.store.AddJournalEntry(ctx, e)
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateEntry stamps patch with the current time and applies it.
func (s *JournalService) UpdateEntry(ctx context.Context, userID, entryID string, patch models.EntryPatch) error {
	patch.UpdatedAt = s.now()
	_, err := s.store.UpdateJournalEntry(ctx, entryID, userID, patch)
	return err
}

func (s *JournalService) DeleteEntry(ctx context.Context, userID, entryID string) error {
	return s.store.DeleteJournalEntry(ctx, entryID, userID)
}

func (s *JournalService) ListEntries(ctx context.Context, userID string, order entries.Order) ([]models.JournalEntry, error) {
	return s.store.GetAllJournalEntries(ctx, userID, order)
}

func (s *JournalService) ListByTrack(ctx context.Context, userID, trackID string) ([]models.JournalEntry, error) {
	return s.store.GetJournalEntriesByTrack(ctx, trackID, userID)
}

func (s *JournalService) AddTrack(ctx context.Context, t *models.Track) (string, error) {
	if t.SpotifyTrackID == "" {
		return "", fmt.Errorf("%w: track id is required", common.ErrorValidation)
	}
	return s.store.AddTrack(ctx, t)
}

func (s *JournalService) GetTrack(ctx context.Context, id string) (*models.Track, error) {
	return s.store.GetTrack(ctx, id)
}
