package model

import (
	"lalazar/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldGuestID        = "guest_id"
	FieldRoomRefs       = "room_refs"
	FieldCheckIn        = "check_in"
	FieldCheckOut       = "check_out"
	FieldPersons        = "persons"
	FieldStatus         = "status"
	FieldPaymentMethod  = "payment_method"
	FieldSecondaryEmail = "secondary_email"
	FieldAdminID        = "admin_id"
)

const (
	StatusNew        = "New"
	StatusPending    = "Pending"
	StatusConfirmed  = "Confirmed"
	StatusCheckedOut = "Checked Out"
	StatusCancelled  = "Cancelled"
	StatusRejected   = "Rejected"
)

// Statuses lists every status a booking may be moved to.
var Statuses = []string{StatusNew, StatusPending, StatusConfirmed, StatusCheckedOut, StatusCancelled, StatusRejected}

type Booking struct {
	ID             string         `db:"id"`
	GuestID        string         `db:"guest_id"`
	RoomRefs       model.RoomRefs `db:"room_refs"`
	CheckIn        model.FlexTime `db:"check_in"`
	CheckOut       model.FlexTime `db:"check_out"`
	Persons        int            `db:"persons"`
	Status         string         `db:"status"`
	PaymentMethod  string         `db:"payment_method"`
	SecondaryEmail string         `db:"secondary_email"`
	AdminID        string         `db:"admin_id"`
	model.Metadata
}
