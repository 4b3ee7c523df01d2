package model

import (
	"lalazar/shared/model"
)

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID       = "id"
	FieldUserName = "user_name"
	FieldFullName = "full_name"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldRole     = "role"
)

type Admin struct {
	ID       string `db:"id"`
	UserName string `db:"user_name"`
	FullName string `db:"full_name"`
	Email    string `db:"email"`
	Password string `db:"password"`
	Role     string `db:"role"`
	model.Metadata
}

// DisplayName is what the dashboard header greets the signed-in admin with.
func (a Admin) DisplayName() string {
	if a.UserName != "" {
		return a.UserName
	}

	if a.FullName != "" {
		return a.FullName
	}

	return "Admin"
}
