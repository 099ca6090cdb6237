package models

import "time"

// JournalEntry is one user's note about one track. JournalCover, EntryTitle,
// EntryText and ImageURL are encrypted at rest; the values here are always
// plaintext. A nil optional field means the value is absent.
type JournalEntry struct {
	EntryID      string    `json:"entryID"`
	UserID       string    `json:"userID"`
	TrackID      string    `json:"trackID"`
	JournalCover *string   `json:"journalCover"`
	EntryTitle   string    `json:"entryTitle"`
	EntryText    string    `json:"entryText"`
	ImageURL     *string   `json:"imageURL"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// EntryPatch lists the content fields to change in an update. Nil fields are
// left untouched. UpdatedAt is required and is always written.
type EntryPatch struct {
	JournalCover *string   `json:"journalCover,omitempty"`
	EntryTitle   *string   `json:"entryTitle,omitempty"`
	EntryText    *string   `json:"entryText,omitempty"`
	ImageURL     *string   `json:"imageURL,omitempty"`
	UpdatedAt    time.Time `json:"-"`
}

// Empty reports whether the patch carries no content field.
func (p EntryPatch) Empty() bool {
	return p.JournalCover == nil && p.EntryTitle == nil && p.EntryText == nil && p.ImageURL == nil
}
