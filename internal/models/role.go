package models

import "time"

// MaxRoles caps the number of life roles a user can hold at once.
const MaxRoles = 7

type Role struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required,max=60"`
	Statement string    `json:"statement" validate:"max=500"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateRoleRequest struct {
	Name      *string `json:"name"`
	Statement *string `json:"statement"`
}
