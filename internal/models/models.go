package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"          json:"id"`
	Username       string `gorm:"not null"                          json:"username"`
	Email          string `gorm:"uniqueIndex;not null"              json:"email"`
	PasswordDigest string `gorm:"column:password;not null"          json:"-"`
	Address        string `json:"address"`
	Contact        string `json:"contact"`
	Role           string `gorm:"not null;default:user"             json:"role"`
}

func (User) TableName() string {
	return "users"
}

type Fish struct {
	ID      uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name    string  `gorm:"not null"                  json:"name"`
	Weight  float64 `json:"weight"`
	Length  float64 `json:"length"`
	Type    string  `gorm:"not null"                  json:"type"`
	Price   float64 `gorm:"not null"                  json:"price"`
	DietUse string  `gorm:"column:diet_use"           json:"diet_use"`
	Image   string  `json:"image"`
}

func (Fish) TableName() string {
	return "fishes"
}

// Session is the server-side half of a browser session. Data carries the
// serialized session state (identity, cart lines, flash queue).
type Session struct {
	Token     string    `gorm:"primaryKey;size:64"`
	UserID    *uint     `gorm:"index"`
	Data      []byte
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

func (Session) TableName() string {
	return "sessions"
}
