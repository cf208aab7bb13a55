package api

import "time"

// User represents a club member as returned by the backend. The client holds
// a read-through cache of this; the backend owns it.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PhotoURL     string    `json:"photo_url"`
	Bio          string    `json:"bio"`
	IsAdmin      bool      `json:"is_admin"`
	IsSuperAdmin bool      `json:"is_super_admin"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

// Venue represents a bookable sports venue
type Venue struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Sport      string  `json:"sport"`
	Address    string  `json:"address"`
	HourlyRate float64 `json:"hourly_rate"`
	Capacity   int     `json:"capacity"`
}

// Booking represents a confirmed venue booking
type Booking struct {
	ID       string    `json:"id"`
	VenueID  string    `json:"venue_id"`
	UserID   string    `json:"user_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	Status   string    `json:"status"`
}

// Club represents a community sports club
type Club struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Sport       string `json:"sport"`
	Description string `json:"description"`
	MemberCount int    `json:"member_count"`
}

// PlaySession represents a scheduled play session hosted by a club
type PlaySession struct {
	ID            string    `json:"id"`
	ClubID        string    `json:"club_id"`
	VenueID       string    `json:"venue_id"`
	Title         string    `json:"title"`
	StartsAt      time.Time `json:"starts_at"`
	Capacity      int       `json:"capacity"`
	AttendeeCount int       `json:"attendee_count"`
}

// SessionResponse is the result of the session probe
type SessionResponse struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateProfileRequest carries the editable profile fields
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
	Bio      string `json:"bio"`
}

// UserPage is one page of the admin user listing
type UserPage struct {
	Users   []User `json:"users"`
	Total   int64  `json:"total"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

// BookVenueRequest represents a venue booking request
type BookVenueRequest struct {
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}
