package mockapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type clubDetail struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Sport       string    `json:"sport"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type sessionDetail struct {
	ID            string    `json:"id"`
	ClubID        string    `json:"club_id"`
	VenueID       string    `json:"venue_id"`
	Title         string    `json:"title"`
	StartsAt      time.Time `json:"starts_at"`
	Capacity      int       `json:"capacity"`
	AttendeeCount int64     `json:"attendee_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *Server) toClubDetail(club *Club) (clubDetail, error) {
	var members int64
	if err := s.db.Model(&ClubMember{}).Where("club_id = ?", club.ID).Count(&members).Error; err != nil {
		return clubDetail{}, err
	}
	return clubDetail{
		ID:          club.ID,
		Name:        club.Name,
		Description: club.Description,
		Sport:       club.Sport,
		MemberCount: members,
		CreatedAt:   club.CreatedAt,
	}, nil
}

func (s *Server) toSessionDetail(session *PlaySession) (sessionDetail, error) {
	var attendees int64
	if err := s.db.Model(&SessionAttendee{}).Where("session_id = ?", session.ID).Count(&attendees).Error; err != nil {
		return sessionDetail{}, err
	}
	return sessionDetail{
		ID:            session.ID,
		ClubID:        session.ClubID,
		VenueID:       session.VenueID,
		Title:         session.Title,
		StartsAt:      session.StartsAt,
		Capacity:      session.Capacity,
		AttendeeCount: attendees,
		CreatedAt:     session.CreatedAt,
	}, nil
}

func (s *Server) listClubs(c *gin.Context) {
	var clubs []Club
	if err := s.db.Order("name").Find(&clubs).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list clubs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	details := make([]clubDetail, 0, len(clubs))
	for i := range clubs {
		detail, err := s.toClubDetail(&clubs[i])
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to count club members")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		details = append(details, detail)
	}
	c.JSON(http.StatusOK, details)
}

func (s *Server) joinClub(c *gin.Context) {
	user, _ := currentUser(c)

	var club Club
	if err := s.db.First(&club, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Club not found"})
		return
	}

	var existing ClubMember
	err := s.db.First(&existing, "club_id = ? AND user_id = ?", club.ID, user.ID).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already a member of this club"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error().Err(err).Msg("Failed to check club membership")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	member := &ClubMember{ClubID: club.ID, UserID: user.ID}
	if err := s.db.Create(member).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create club membership")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join club"})
		return
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("club_id", club.ID).
		Msg("User joined club")

	detail, err := s.toClubDetail(&club)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count club members")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (s *Server) listSessions(c *gin.Context) {
	var sessions []PlaySession
	if err := s.db.Where("starts_at > ?", time.Now()).Order("starts_at").Find(&sessions).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list sessions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	details := make([]sessionDetail, 0, len(sessions))
	for i := range sessions {
		detail, err := s.toSessionDetail(&sessions[i])
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to count session attendees")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		details = append(details, detail)
	}
	c.JSON(http.StatusOK, details)
}

func (s *Server) joinSession(c *gin.Context) {
	user, _ := currentUser(c)

	var session PlaySession
	if err := s.db.First(&session, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	if session.StartsAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session has already started"})
		return
	}

	var existing SessionAttendee
	err := s.db.First(&existing, "session_id = ? AND user_id = ?", session.ID, user.ID).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already attending this session"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error().Err(err).Msg("Failed to check session attendance")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var attendees int64
	if err := s.db.Model(&SessionAttendee{}).Where("session_id = ?", session.ID).Count(&attendees).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to count session attendees")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if session.Capacity > 0 && attendees >= int64(session.Capacity) {
		c.JSON(http.StatusConflict, gin.H{"error": "Session is full"})
		return
	}

	attendee := &SessionAttendee{SessionID: session.ID, UserID: user.ID}
	if err := s.db.Create(attendee).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create session attendance")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join session"})
		return
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("session_id", session.ID).
		Msg("User joined session")

	s.hub.broadcast("session_joined", gin.H{
		"session_id": session.ID,
		"user_id":    user.ID,
	})

	detail, err := s.toSessionDetail(&session)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to count session attendees")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusCreated, detail)
}
