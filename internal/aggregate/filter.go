package aggregate

import (
	"strings"

	"lalazar/shared/dto"
)

// Searchable is a dashboard row that can be matched against the free-text
// search box and the status/category dropdowns.
type Searchable interface {
	SearchFields() []string
	StatusField() string
	CategoryField() string
}

func (v BookingView) SearchFields() []string {
	return []string{v.GuestName, v.GuestEmail, v.RoomNos, v.Categories, v.ID}
}

func (v BookingView) StatusField() string { return v.Status }

func (v BookingView) CategoryField() string { return v.Categories }

func (v AdvancePaymentView) SearchFields() []string {
	return []string{v.GuestName, v.RoomNos, v.BookingID, v.ID}
}

func (v AdvancePaymentView) StatusField() string { return v.Status }

func (v AdvancePaymentView) CategoryField() string { return "" }

// FilterRows keeps rows where the query matches any text field as a
// case-insensitive substring, AND the status/category filters match exactly
// (case-insensitive). Empty filters match everything.
func FilterRows[T Searchable](rows []T, query dto.ViewQuery) []T {
	term := strings.ToLower(strings.TrimSpace(query.Query))

	filtered := make([]T, 0, len(rows))

	for _, row := range rows {
		if term != "" && !matchesTerm(row.SearchFields(), term) {
			continue
		}

		if query.Status != "" && !strings.EqualFold(query.Status, row.StatusField()) {
			continue
		}

		if query.Category != "" && !containsFold(row.CategoryField(), query.Category) {
			continue
		}

		filtered = append(filtered, row)
	}

	return filtered
}

func matchesTerm(fields []string, term string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}

	return false
}

// containsFold matches a category filter against a comma-joined category
// column: any listed category equal to the filter counts.
func containsFold(joined, want string) bool {
	for _, part := range strings.Split(joined, ",") {
		if strings.EqualFold(strings.TrimSpace(part), want) {
			return true
		}
	}

	return false
}
