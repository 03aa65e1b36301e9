package model

import "time"

// RoleAdmin is the only role the dashboard needs; the gate middleware
// still checks it explicitly so new roles can be added without opening
// up the admin surface by accident.
const RoleAdmin = "ADMIN"

// User is an administrator account for the dashboard.  Public booking
// submission never touches this table.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
