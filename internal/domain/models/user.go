package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID `db:"id" json:"id"`
	Name             string    `db:"name" json:"name"`
	Email            string    `db:"email" json:"email"`
	Password         []byte    `db:"password" json:"-"`
	IsAdmin          bool      `db:"is_admin" json:"isAdmin"`
	RegistrationDate time.Time `db:"registration_date,omitempty" json:"registrationDate,omitempty"`
	LastLogin        time.Time `db:"last_login,omitempty" json:"lastLogin,omitempty"`
}
