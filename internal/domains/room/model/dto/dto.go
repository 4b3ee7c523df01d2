package dto

import (
	"github.com/google/uuid"

	"lalazar/internal/domains/room/model"
	"lalazar/shared"
	gDto "lalazar/shared/dto"
	gModel "lalazar/shared/model"
	"lalazar/shared/timezone"
)

type CreateRoomRequest struct {
	RoomNo       string `json:"room_no"       validate:"required,max=20"`
	CategoryID   string `json:"category_id"   validate:"required"`
	HotelID      string `json:"hotel_id"      validate:"required"`
	Price        int64  `json:"price"         validate:"omitempty,gte=0"`
	PropertyType string `json:"property_type" validate:"omitempty,max=50"`
	Status       string `json:"status"        validate:"omitempty,oneof=Available Booked Maintenance Cleaning"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := c.Status
	if status == "" {
		status = model.StatusAvailable
	}

	return model.Room{
		ID:           uuid.NewString(),
		RoomNo:       c.RoomNo,
		CategoryID:   c.CategoryID,
		HotelID:      c.HotelID,
		Price:        c.Price,
		PropertyType: c.PropertyType,
		Status:       status,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	RoomNo       string `db:"room_no"       json:"room_no"       validate:"omitempty,max=20"`
	CategoryID   string `db:"category_id"   json:"category_id"   validate:"omitempty"`
	HotelID      string `db:"hotel_id"      json:"hotel_id"      validate:"omitempty"`
	Price        int64  `db:"price"         json:"price"         validate:"omitempty,gte=0"`
	PropertyType string `db:"property_type" json:"property_type" validate:"omitempty,max=50"`
	Status       string `db:"status"        json:"status"        validate:"omitempty,oneof=Available Booked Maintenance Cleaning"`
}

type RoomResponse struct {
	ID           string `json:"id"`
	RoomNo       string `json:"room_no"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	HotelID      string `json:"hotel_id"`
	HotelName    string `json:"hotel_name"`
	Price        int64  `json:"price"`
	PropertyType string `json:"property_type"`
	Status       string `json:"status"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(mod model.Room, categoryName, hotelName string) {
	r.ID = mod.ID
	r.RoomNo = mod.RoomNo
	r.CategoryID = mod.CategoryID
	r.CategoryName = categoryName
	r.HotelID = mod.HotelID
	r.HotelName = hotelName
	r.Price = mod.Price
	r.PropertyType = mod.PropertyType
	r.Status = mod.Status
	r.Metadata.FromModel(mod.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, categoryNames, hotelNames map[string]string, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod, categoryNames[mod.CategoryID], hotelNames[mod.HotelID])
	}
}
