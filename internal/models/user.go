package models

import "time"

// DefaultImageFile is the sentinel picture assigned to new accounts.
const DefaultImageFile = "default.jpg"

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	ImageFile    string    `json:"image_file"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type UpdateAccountRequest struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	ImageFile *string `json:"-"`
}
