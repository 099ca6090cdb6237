// Package entries stores journal entries. The repository works on values as
// they are persisted: content columns hold envelope ciphertext and are never
// interpreted here. Every read and mutation is scoped by user id.
package entries

import (
	"context"
	"time"

	"github.com/dmitrijs2005/musicjournal/internal/server/models"
)

// Order selects the sort order of ListByUser.
type Order int

const (
	// OrderInserted lists entries in the order they were stored.
	OrderInserted Order = iota
	OrderCreatedDesc
	OrderUpdatedDesc
)

func (o Order) String() string {
	switch o {
	case OrderCreatedDesc:
		return "created"
	case OrderUpdatedDesc:
		return "updated"
	default:
		return "inserted"
	}
}

// ParseOrder maps "created" and "updated" to their orders; anything else,
// including "", means OrderInserted.
func ParseOrder(s string) Order {
	switch s {
	case "created":
		return OrderCreatedDesc
	case "updated":
		return OrderUpdatedDesc
	default:
		return OrderInserted
	}
}

type Repository interface {
	// Create inserts e. A reused entry id matches common.ErrDuplicate, an
	// unknown user or track matches common.ErrForeignKey.
	Create(ctx context.Context, e *models.JournalEntry) error
	ListByTrack(ctx context.Context, trackID, userID string) ([]models.JournalEntry, error)
	ListByUser(ctx context.Context, userID string, order Order) ([]models.JournalEntry, error)
	// Update writes changes plus updated_at to the entry owned by userID.
	// It returns common.ErrEntryNotFound when no such entry exists.
	Update(ctx context.Context, entryID, userID string, changes []Change, updatedAt time.Time) error
	// Delete returns common.ErrEntryNotFound when no entry matched.
	Delete(ctx context.Context, entryID, userID string) error
}
