package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryPatch_Empty(t *testing.T) {
	s := "x"
	assert.True(t, EntryPatch{}.Empty())
	assert.False(t, EntryPatch{EntryText: &s}.Empty())
	assert.False(t, EntryPatch{ImageURL: &s}.Empty())
}
