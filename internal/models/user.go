package models

import "time"

type User struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	Email             string    `gorm:"uniqueIndex;not null" json:"email"`
	Username          string    `gorm:"uniqueIndex;not null" json:"username"`
	Password          string    `gorm:"not null" json:"-"`
	Role              string    `gorm:"not null;default:USER" json:"role"`
	ProfilePictureKey string    `json:"-"`
	CoverImageKey     string    `json:"-"`
	CountryID         *uint     `json:"countryId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

// UserPublicPayload is what any authenticated user may see about another.
type UserPublicPayload struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserPrivatePayload is only returned to the account owner.
type UserPrivatePayload struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
