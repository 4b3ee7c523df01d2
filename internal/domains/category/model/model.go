package model

import (
	"lalazar/shared/model"
)

const (
	TableName  = "room_categories"
	EntityName = "room_category"

	FieldID           = "id"
	FieldCategoryName = "category_name"
)

type Category struct {
	ID           string `db:"id"`
	CategoryName string `db:"category_name"`
	model.Metadata
}
