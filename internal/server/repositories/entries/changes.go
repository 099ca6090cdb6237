package entries

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/musicjournal/internal/common"
)

// Column is a content column an update may write.
type Column string

const (
	ColumnJournalCover Column = "journal_cover"
	ColumnEntryTitle   Column = "entry_title"
	ColumnEntryText    Column = "entry_text"
	ColumnImageURL     Column = "image_url"
)

func (c Column) valid() bool {
	switch c {
	case ColumnJournalCover, ColumnEntryTitle, ColumnEntryText, ColumnImageURL:
		return true
	}
	return false
}

// Change assigns an already encrypted value to one column.
type Change struct {
	Column Column
	Value  string
}

// buildSet renders "col = <p1>, ..., updated_at = <pN>" in the order of
// changes. placeholder maps a 1-based argument position to engine syntax.
// The returned args hold the change values followed by updatedAt.
func buildSet(changes []Change, updatedAt any, placeholder func(int) string) (string, []any, error) {
	if len(changes) == 0 {
		return "", nil, common.ErrEmptyPatch
	}

	parts := make([]string, 0, len(changes)+1)
	args := make([]any, 0, len(changes)+1)
	seen := make(map[Column]struct{}, len(changes))

	for _, c := range changes {
		if !c.Column.valid() {
			return "", nil, fmt.Errorf("%w: unknown column %q", common.ErrorValidation, c.Column)
		}
		if _, dup := seen[c.Column]; dup {
			return "", nil, fmt.Errorf("%w: column %q set twice", common.ErrorValidation, c.Column)
		}
		seen[c.Column] = struct{}{}

		args = append(args, c.Value)
		parts = append(parts, string(c.Column)+" = "+placeholder(len(args)))
	}

	args = append(args, updatedAt)
	parts = append(parts, "updated_at = "+placeholder(len(args)))

	return strings.Join(parts, ", "), args, nil
}
