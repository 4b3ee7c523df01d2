package dto

import (
	"strings"

	"lalazar/internal/aggregate"
	"lalazar/internal/domains/booking/model"
)

type UpdateBookingStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required"`
}

// Allowed matches the requested status against the booking enum regardless
// of casing and returns the canonical spelling, so "checked out" lands as
// "Checked Out".
func (r *UpdateBookingStatusRequest) Allowed() (string, bool) {
	for _, allowed := range model.Statuses {
		if strings.EqualFold(r.Status, allowed) {
			return allowed, true
		}
	}

	return aggregate.Capitalize(r.Status), false
}

type GetBookingViewsResponse struct {
	Bookings  []aggregate.BookingView `json:"bookings"`
	TotalData int                     `json:"total_data"`
}

func (r *GetBookingViewsResponse) FromViews(views []aggregate.BookingView) {
	r.Bookings = views
	r.TotalData = len(views)
}

type BookingDetailResponse struct {
	aggregate.BookingDetail
}

func (r *BookingDetailResponse) FromDetail(detail aggregate.BookingDetail) {
	r.BookingDetail = detail
}
