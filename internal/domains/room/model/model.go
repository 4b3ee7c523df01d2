package model

import "lalazar/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID           = "id"
	FieldRoomNo       = "room_no"
	FieldCategoryID   = "category_id"
	FieldHotelID      = "hotel_id"
	FieldPrice        = "price"
	FieldPropertyType = "property_type"
	FieldStatus       = "status"
)

const (
	StatusAvailable   = "Available"
	StatusBooked      = "Booked"
	StatusMaintenance = "Maintenance"
	StatusCleaning    = "Cleaning"
)

// Statuses lists every status a room may carry.
var Statuses = []string{StatusAvailable, StatusBooked, StatusMaintenance, StatusCleaning}

type Room struct {
	ID           string `db:"id"            json:"id"`
	RoomNo       string `db:"room_no"       json:"room_no"`
	CategoryID   string `db:"category_id"   json:"category_id"`
	HotelID      string `db:"hotel_id"      json:"hotel_id"`
	Price        int64  `db:"price"         json:"price"`
	PropertyType string `db:"property_type" json:"property_type"`
	Status       string `db:"status"        json:"status"`
	model.Metadata
}
