package models

import "time"

type User struct {
	ID             int64     `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	Email          string    `json:"email" db:"email"`
	FirstName      string    `json:"first_name" db:"first_name"`
	LastName       string    `json:"last_name" db:"last_name"`
	HashedPassword string    `json:"-" db:"hashed_password"` // Never serialize in JSON
	IsAdmin        bool      `json:"is_admin" db:"is_admin"`
	IsSupplier     bool      `json:"is_supplier" db:"is_supplier"`
	IsCustomer     bool      `json:"is_customer" db:"is_customer"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Roles reports the capability set encoded by the stored flags.
func (u *User) Roles() Role {
	return RolesFromFlags(u.IsAdmin, u.IsSupplier, u.IsCustomer)
}
