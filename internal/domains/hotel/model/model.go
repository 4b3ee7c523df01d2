package model

import (
	"lalazar/shared/model"
)

const (
	TableName  = "hotels"
	EntityName = "hotel"

	FieldID        = "id"
	FieldHotelName = "hotel_name"
)

type Hotel struct {
	ID        string `db:"id"`
	HotelName string `db:"hotel_name"`
	model.Metadata
}
