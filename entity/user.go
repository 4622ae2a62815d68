package entity

import (
	"time"

	crm "github.com/smdydx/bidua-crm"
)

// User is an account that can sign in and own CRM records.
type User struct {
	ID           int64      `db:"id" json:"id"`
	Username     string     `db:"username" json:"username"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Phone        *string    `db:"phone" json:"phone"`
	Role         UserRole   `db:"role" json:"role"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	LastLogin    *time.Time `db:"last_login" json:"last_login"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at"`
}

func (u User) EntityID() int64 { return u.ID }

// UserSchema describes the users table.
var UserSchema = crm.MustSchema("users", crm.Fields{
	"id":            crm.FieldBigInt,
	"username":      crm.FieldText,
	"email":         crm.FieldText,
	"password_hash": crm.FieldText,
	"first_name":    crm.FieldText,
	"last_name":     crm.FieldText,
	"phone":         crm.FieldText,
	"role":          crm.FieldText,
	"is_active":     crm.FieldBool,
	"last_login":    crm.FieldTimestamp,
	"created_at":    crm.FieldTimestamp,
	"updated_at":    crm.FieldTimestamp,
})
