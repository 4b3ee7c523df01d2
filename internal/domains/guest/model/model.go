package model

import (
	"lalazar/shared/model"
)

const (
	TableName  = "guests"
	EntityName = "guest"

	FieldID        = "id"
	FieldUserName  = "user_name"
	FieldFullName  = "full_name"
	FieldUserEmail = "user_email"
	FieldEmail     = "email"
	FieldNumber    = "number"
)

// Guest rows imported from the legacy store carry two name and two email
// columns; either pair may be blank.
type Guest struct {
	ID        string `db:"id"`
	UserName  string `db:"user_name"`
	FullName  string `db:"full_name"`
	UserEmail string `db:"user_email"`
	Email     string `db:"email"`
	Gender    string `db:"gender"`
	DOB       string `db:"dob"`
	Number    string `db:"number"`
	Address   string `db:"address"`
	IDProof   string `db:"id_proof"`
	model.Metadata
}
