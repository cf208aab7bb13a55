package mockapi

import (
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// BaseModel provides common fields and auto-generated ULID for all models
type BaseModel struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(26)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// BeforeCreate generates a ULID for the ID field if it's empty
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = ulid.Make().String()
	}
	return nil
}

// User represents a club member account
type User struct {
	BaseModel
	Email        string    `json:"email" gorm:"unique;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name"`
	PhotoURL     string    `json:"photo_url"`
	Bio          string    `json:"bio"`
	IsAdmin      bool      `json:"is_admin" gorm:"not null;default:false"`
	IsSuperAdmin bool      `json:"is_super_admin" gorm:"not null;default:false"`
	IsVerified   bool      `json:"is_verified" gorm:"not null;default:false"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Venue represents a bookable sports venue
type Venue struct {
	BaseModel
	Name       string  `json:"name" gorm:"not null"`
	Sport      string  `json:"sport" gorm:"not null"`
	Address    string  `json:"address"`
	HourlyRate float64 `json:"hourly_rate"`
	Capacity   int     `json:"capacity"`
}

// Booking represents a reserved time slot at a venue
type Booking struct {
	BaseModel
	VenueID  string    `json:"venue_id" gorm:"not null;index"`
	UserID   string    `json:"user_id" gorm:"not null;index"`
	StartsAt time.Time `json:"starts_at" gorm:"not null"`
	EndsAt   time.Time `json:"ends_at" gorm:"not null"`
	Status   string    `json:"status" gorm:"not null;default:confirmed"` // confirmed, completed, cancelled
}

// Club represents a community sports club
type Club struct {
	BaseModel
	Name        string `json:"name" gorm:"unique;not null"`
	Sport       string `json:"sport"`
	Description string `json:"description"`
}

// ClubMember links a user to a club
type ClubMember struct {
	BaseModel
	ClubID string `json:"club_id" gorm:"not null;index:idx_club_member,unique"`
	UserID string `json:"user_id" gorm:"not null;index:idx_club_member,unique"`
}

// PlaySession represents a scheduled play session hosted by a club
type PlaySession struct {
	BaseModel
	ClubID   string    `json:"club_id" gorm:"index"`
	VenueID  string    `json:"venue_id" gorm:"index"`
	Title    string    `json:"title" gorm:"not null"`
	StartsAt time.Time `json:"starts_at" gorm:"not null"`
	Capacity int       `json:"capacity"`
}

// SessionAttendee links a user to a play session
type SessionAttendee struct {
	BaseModel
	SessionID string `json:"session_id" gorm:"not null;index:idx_session_attendee,unique"`
	UserID    string `json:"user_id" gorm:"not null;index:idx_session_attendee,unique"`
}

// AutoMigrate runs database migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Venue{},
		&Booking{},
		&Club{},
		&ClubMember{},
		&PlaySession{},
		&SessionAttendee{},
	)
}
