package aggregate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lalazar/internal/aggregate"
	"lalazar/shared/dto"
)

func fixtureViews() []aggregate.BookingView {
	return []aggregate.BookingView{
		{ID: "B1", GuestName: "Ali Khan", GuestEmail: "ali@lalazar.pk", RoomNos: "101", Categories: "Deluxe", Status: "Confirmed"},
		{ID: "B2", GuestName: "Sara Malik", GuestEmail: "sara@example.com", RoomNos: "202, 203", Categories: "Standard, Deluxe", Status: "Pending"},
		{ID: "B3", GuestName: "Unknown User", GuestEmail: "N/A", RoomNos: "N/A", Categories: "Unknown Category", Status: "New"},
	}
}

func TestFilterRows_EmptyFiltersReturnAllInOrder(t *testing.T) {
	rows := fixtureViews()

	filtered := aggregate.FilterRows(rows, dto.ViewQuery{})

	assert.Equal(t, rows, filtered)
}

func TestFilterRows_SubstringAcrossFields(t *testing.T) {
	rows := fixtureViews()

	// Matches B2 via email only, not name.
	filtered := aggregate.FilterRows(rows, dto.ViewQuery{Query: "example.com"})
	assert.Len(t, filtered, 1)
	assert.Equal(t, "B2", filtered[0].ID)

	// Case-insensitive.
	filtered = aggregate.FilterRows(rows, dto.ViewQuery{Query: "ALI"})
	assert.Len(t, filtered, 2, "matches Ali Khan and Sara Malik")

	// Room number column participates.
	filtered = aggregate.FilterRows(rows, dto.ViewQuery{Query: "203"})
	assert.Len(t, filtered, 1)
	assert.Equal(t, "B2", filtered[0].ID)
}

func TestFilterRows_EqualityFiltersAndCombined(t *testing.T) {
	rows := fixtureViews()

	filtered := aggregate.FilterRows(rows, dto.ViewQuery{Status: "pending"})
	assert.Len(t, filtered, 1)
	assert.Equal(t, "B2", filtered[0].ID)

	// Category filter matches any entry in a comma-joined column.
	filtered = aggregate.FilterRows(rows, dto.ViewQuery{Category: "Deluxe"})
	assert.Len(t, filtered, 2)

	// AND-combined: search narrows the category match.
	filtered = aggregate.FilterRows(rows, dto.ViewQuery{Query: "sara", Category: "Deluxe"})
	assert.Len(t, filtered, 1)
	assert.Equal(t, "B2", filtered[0].ID)

	// Conflicting predicates match nothing.
	filtered = aggregate.FilterRows(rows, dto.ViewQuery{Query: "sara", Status: "Confirmed"})
	assert.Empty(t, filtered)
}
