package models

import "time"

// WasteBin is a plain fill-level record. It has no relationship to User
// and no notification semantics.
type WasteBin struct {
	ID        string    `json:"id" db:"id"`
	FillLevel int       `json:"fill_level" db:"fill_level"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateWasteBinRequest is the request body for updating a waste bin.
type UpdateWasteBinRequest struct {
	FillLevel *int `json:"fill_level" binding:"required" example:"75"`
}
