package mockapi

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Users []struct {
		Email        string `yaml:"email"`
		Password     string `yaml:"password"`
		Name         string `yaml:"name"`
		IsAdmin      bool   `yaml:"is_admin"`
		IsSuperAdmin bool   `yaml:"is_super_admin"`
		IsVerified   bool   `yaml:"is_verified"`
	} `yaml:"users"`
	Venues []struct {
		Name       string  `yaml:"name"`
		Sport      string  `yaml:"sport"`
		Address    string  `yaml:"address"`
		HourlyRate float64 `yaml:"hourly_rate"`
		Capacity   int     `yaml:"capacity"`
	} `yaml:"venues"`
	Clubs []struct {
		Name        string `yaml:"name"`
		Sport       string `yaml:"sport"`
		Description string `yaml:"description"`
	} `yaml:"clubs"`
	Sessions []struct {
		Title        string `yaml:"title"`
		Club         string `yaml:"club"`
		Venue        string `yaml:"venue"`
		StartsInDays int    `yaml:"starts_in_days"`
		Capacity     int    `yaml:"capacity"`
	} `yaml:"sessions"`
}

// seed populates the database from the configured fixture file. It
// only runs against an empty users table so restarts keep local data.
func (s *Server) seed() error {
	var count int64
	if err := s.db.Model(&User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	if s.config.SeedFile == "" {
		return s.seedDefaults()
	}

	data, err := os.ReadFile(s.config.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to read seed file %s: %w", s.config.SeedFile, err)
	}

	var fixtures seedFile
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("failed to parse seed file %s: %w", s.config.SeedFile, err)
	}

	for _, u := range fixtures.Users {
		hash, err := hashPassword(u.Password)
		if err != nil {
			return fmt.Errorf("failed to hash seed password for %s: %w", u.Email, err)
		}
		user := &User{
			Email:        u.Email,
			PasswordHash: hash,
			Name:         u.Name,
			IsAdmin:      u.IsAdmin,
			IsSuperAdmin: u.IsSuperAdmin,
			IsVerified:   u.IsVerified,
		}
		if err := s.db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}

	venueIDs := make(map[string]string, len(fixtures.Venues))
	for _, v := range fixtures.Venues {
		venue := &Venue{
			Name:       v.Name,
			Sport:      v.Sport,
			Address:    v.Address,
			HourlyRate: v.HourlyRate,
			Capacity:   v.Capacity,
		}
		if err := s.db.Create(venue).Error; err != nil {
			return fmt.Errorf("failed to seed venue %s: %w", v.Name, err)
		}
		venueIDs[v.Name] = venue.ID
	}

	clubIDs := make(map[string]string, len(fixtures.Clubs))
	for _, c := range fixtures.Clubs {
		club := &Club{Name: c.Name, Sport: c.Sport, Description: c.Description}
		if err := s.db.Create(club).Error; err != nil {
			return fmt.Errorf("failed to seed club %s: %w", c.Name, err)
		}
		clubIDs[c.Name] = club.ID
	}

	for _, sess := range fixtures.Sessions {
		session := &PlaySession{
			ClubID:   clubIDs[sess.Club],
			VenueID:  venueIDs[sess.Venue],
			Title:    sess.Title,
			StartsAt: time.Now().AddDate(0, 0, sess.StartsInDays),
			Capacity: sess.Capacity,
		}
		if err := s.db.Create(session).Error; err != nil {
			return fmt.Errorf("failed to seed session %s: %w", sess.Title, err)
		}
	}

	s.logger.Info().
		Int("users", len(fixtures.Users)).
		Int("venues", len(fixtures.Venues)).
		Int("clubs", len(fixtures.Clubs)).
		Int("sessions", len(fixtures.Sessions)).
		Msg("Seeded database from fixture file")
	return nil
}

// seedDefaults creates a minimal dataset so a fresh server is usable
// without a fixture file.
func (s *Server) seedDefaults() error {
	hash, err := hashPassword("admin")
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}
	admin := &User{
		Email:        "admin@courtside.local",
		PasswordHash: hash,
		Name:         "Default Admin",
		IsAdmin:      true,
		IsSuperAdmin: true,
		IsVerified:   true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to seed default admin: %w", err)
	}

	venue := &Venue{
		Name:       "Riverside Courts",
		Sport:      "badminton",
		Address:    "12 Riverside Dr",
		HourlyRate: 15,
		Capacity:   8,
	}
	if err := s.db.Create(venue).Error; err != nil {
		return fmt.Errorf("failed to seed default venue: %w", err)
	}

	club := &Club{
		Name:        "Riverside Smashers",
		Sport:       "badminton",
		Description: "Casual weeknight badminton for all levels",
	}
	if err := s.db.Create(club).Error; err != nil {
		return fmt.Errorf("failed to seed default club: %w", err)
	}

	session := &PlaySession{
		ClubID:   club.ID,
		VenueID:  venue.ID,
		Title:    "Wednesday Open Play",
		StartsAt: time.Now().AddDate(0, 0, 2),
		Capacity: 8,
	}
	if err := s.db.Create(session).Error; err != nil {
		return fmt.Errorf("failed to seed default session: %w", err)
	}

	s.logger.Info().Str("email", admin.Email).Msg("Seeded default dataset (login: admin@courtside.local / admin)")
	return nil
}
