package mockapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// BookVenueRequest represents a venue booking request
type BookVenueRequest struct {
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
}

func (s *Server) listVenues(c *gin.Context) {
	var venues []Venue
	if err := s.db.Order("name").Find(&venues).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list venues")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, venues)
}

func (s *Server) getVenue(c *gin.Context) {
	var venue Venue
	if err := s.db.First(&venue, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}
	c.JSON(http.StatusOK, venue)
}

func (s *Server) bookVenue(c *gin.Context) {
	user, _ := currentUser(c)

	var venue Venue
	if err := s.db.First(&venue, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Venue not found"})
		return
	}

	var req BookVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.EndsAt.After(req.StartsAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Booking must end after it starts"})
		return
	}
	if req.StartsAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Booking must be in the future"})
		return
	}

	// Reject overlap with an existing confirmed booking
	var overlapping int64
	if err := s.db.Model(&Booking{}).
		Where("venue_id = ? AND status = ? AND starts_at < ? AND ends_at > ?",
			venue.ID, "confirmed", req.EndsAt, req.StartsAt).
		Count(&overlapping).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to check booking overlap")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if overlapping > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Venue is already booked for that slot"})
		return
	}

	booking := &Booking{
		VenueID:  venue.ID,
		UserID:   user.ID,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		Status:   "confirmed",
	}
	if err := s.db.Create(booking).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create booking")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("venue_id", venue.ID).
		Str("booking_id", booking.ID).
		Msg("Venue booked")

	// Tell connected clients about the new booking
	s.hub.broadcast("booking_created", gin.H{
		"booking_id": booking.ID,
		"venue_id":   venue.ID,
		"starts_at":  booking.StartsAt,
	})

	c.JSON(http.StatusCreated, booking)
}
