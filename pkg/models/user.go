package models

import "time"

// User is a tracked entity carrying a numeric balance ("delta") and an
// assignment to an area. The area doubles as the notification topic for
// the user's events; an empty area means "unassigned".
type User struct {
	ID        string    `json:"id" db:"id"`
	Delta     int64     `json:"delta" db:"delta"`
	Area      string    `json:"area" db:"area"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CreateUserRequest is the request body for creating a user. Both fields
// are optional; a missing delta defaults to 0 and a missing area to "".
type CreateUserRequest struct {
	Delta *int64  `json:"delta,omitempty" example:"42"`
	Area  *string `json:"area,omitempty" example:"ABC"`
}

// UpdateUserRequest is the request body for updating a user. Omitted
// fields are left unchanged; delta is applied as a relative adjustment.
type UpdateUserRequest struct {
	Delta *int64  `json:"delta,omitempty" example:"5"`
	Area  *string `json:"area,omitempty" example:"ABC"`
}
