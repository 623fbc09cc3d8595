package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is the authenticated principal. Every other module refers to it
// by ID only.
type Account struct {
	ID             string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username       string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Email          string    `gorm:"size:254" json:"email"`
	FirstName      string    `gorm:"size:150" json:"first_name"`
	LastName       string    `gorm:"size:150" json:"last_name"`
	HashedPassword string    `gorm:"not null" json:"-"`
	Role           string    `gorm:"size:20;not null;default:'user'" json:"role"`
	CreatedAt      time.Time `json:"date_joined"`
	UpdatedAt      time.Time `json:"-"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Role == "" {
		a.Role = RoleUser
	}
	return nil
}

// Session backs a refresh token. Deleting the row logs the session out.
type Session struct {
	SessionID string    `gorm:"primaryKey;type:uuid" json:"-"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.SessionID == "" {
		s.SessionID = uuid.NewString()
	}
	return nil
}

func (Session) TableName() string { return "app_auth.sessions" }
func (Account) TableName() string { return "app_auth.users" }
