package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents a staff role
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// IsValidRole reports whether the role is one this console knows about
func IsValidRole(role string) bool {
	return role == string(RoleAdmin) || role == string(RoleEmployee)
}

// User is a staff account: credentials plus the operator profile
// shown next to sales they ring up.
type User struct {
	ID           uuid.UUID      `db:"id"`
	Email        string         `db:"email"`
	PasswordHash string         `db:"password_hash"`
	FullName     string         `db:"full_name"`
	Role         Role           `db:"role"`
	StoreID      uuid.NullUUID  `db:"store_id"`
	Phone        sql.NullString `db:"phone"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// Response represents a staff account in API responses
type Response struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	StoreID   *string `json:"store_id,omitempty"`
	Phone     string  `json:"phone,omitempty"`
	IsActive  bool    `json:"is_active"`
	CreatedAt string  `json:"created_at"`
}

// ToResponse converts entity to response
func (u *User) ToResponse() *Response {
	resp := &Response{
		ID:        u.ID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.StoreID.Valid {
		s := u.StoreID.UUID.String()
		resp.StoreID = &s
	}
	if u.Phone.Valid {
		resp.Phone = u.Phone.String
	}
	return resp
}
