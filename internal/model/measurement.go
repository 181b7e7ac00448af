package model

import (
	"time"

	"github.com/google/uuid"
)

// Measurement is a saved measurement profile for one (user, gender, dressType)
// combination. Data is semi-structured: measurement name to value, e.g.
// "chest" -> "96cm". Orders copy this data at checkout rather than reference it.
type Measurement struct {
	ID        uuid.UUID         `json:"id" db:"id"`
	UserID    string            `json:"userId" db:"user_id"`
	Gender    string            `json:"gender" db:"gender"`
	DressType string            `json:"dressType" db:"dress_type"`
	Data      map[string]string `json:"data" db:"data"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`
}

// MeasurementRequest is the payload for saving a measurement profile.
type MeasurementRequest struct {
	Gender    string            `json:"gender"`
	DressType string            `json:"dressType"`
	Data      map[string]string `json:"data"`
}
