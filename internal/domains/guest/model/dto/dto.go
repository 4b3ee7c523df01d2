package dto

import (
	"lalazar/internal/aggregate"
	"lalazar/internal/domains/guest/model"
	"lalazar/shared"
	gDto "lalazar/shared/dto"
)

type GuestResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Gender  string `json:"gender"`
	DOB     string `json:"dob"`
	Number  string `json:"number"`
	Address string `json:"address"`
	IDProof string `json:"id_proof"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(mod model.Guest) {
	info := aggregate.BuildGuestIndex([]model.Guest{mod})[mod.ID]

	r.ID = mod.ID
	r.Name = info.Name
	r.Email = info.Email
	r.Gender = mod.Gender
	r.DOB = mod.DOB
	r.Number = mod.Number
	r.Address = mod.Address
	r.IDProof = mod.IDProof
	r.Metadata.FromModel(mod.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}
