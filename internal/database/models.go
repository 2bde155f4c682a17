package database

import (
	"time"
)

// User represents a user record. The password hash never leaves the server,
// so there are no json tags on this struct; handlers build their own
// response shapes.
type User struct {
	ID           int
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Roll represents a film roll record
type Roll struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	Name       string    `json:"name"`
	FilmStock  string    `json:"film_stock"`
	ISO        int       `json:"iso"`
	Camera     string    `json:"camera"`
	Notes      string    `json:"notes"`
	PhotoCount int       `json:"photo_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Photo represents a single exposure on a roll
type Photo struct {
	ID           int       `json:"id"`
	RollID       int       `json:"roll_id"`
	Subject      string    `json:"subject"`
	FStop        string    `json:"f_stop"`
	ShutterSpeed string    `json:"shutter_speed"`
	LensID       *int      `json:"lens_id"`
	LensName     *string   `json:"lens_name,omitempty"`
	PhotoURL     *string   `json:"photo_url,omitempty"`
	Notes        string    `json:"notes"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
}

// Tag represents a user-scoped tag with its denormalized usage count
type Tag struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	UsageCount int    `json:"usage_count"`
}

// Lens represents a lens in the user's kit
type Lens struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	FocalLength string `json:"focal_length"`
	MaxAperture string `json:"max_aperture"`
}
