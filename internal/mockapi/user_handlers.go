package mockapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/courtside-app/courtside/internal/sanitize"
)

// UpdateProfileRequest carries the editable profile fields
type UpdateProfileRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url,max=500"`
	Bio      string `json:"bio" validate:"max=1000"`
}

func (s *Server) getProfile(c *gin.Context) {
	user, _ := currentUser(c)
	c.JSON(http.StatusOK, toUserDetail(user))
}

func (s *Server) updateProfile(c *gin.Context) {
	user, _ := currentUser(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The backend rejects what the client should already have filtered
	if sanitize.ContainsProfanity(req.Name) || sanitize.ContainsProfanity(req.Bio) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile contains inappropriate language"})
		return
	}
	if sanitize.ContainsDangerousPattern(req.Name) || sanitize.ContainsDangerousPattern(req.Bio) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile contains disallowed markup"})
		return
	}

	user.Name = req.Name
	user.PhotoURL = req.PhotoURL
	user.Bio = sanitize.Clean(req.Bio)

	if err := s.db.Save(user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, toUserDetail(user))
}

func (s *Server) listUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "25"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}

	var total int64
	if err := s.db.Model(&User{}).Count(&total).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to count users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var users []User
	if err := s.db.Order("created_at").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	details := make([]userDetail, len(users))
	for i := range users {
		details[i] = toUserDetail(&users[i])
	}

	c.JSON(http.StatusOK, gin.H{
		"users":    details,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (s *Server) searchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query parameter q"})
		return
	}

	pattern := "%" + query + "%"
	var users []User
	if err := s.db.Where("name LIKE ? OR email LIKE ?", pattern, pattern).
		Limit(50).
		Find(&users).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to search users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	details := make([]userDetail, len(users))
	for i := range users {
		details[i] = toUserDetail(&users[i])
	}

	c.JSON(http.StatusOK, details)
}

func (s *Server) grantRole(c *gin.Context) {
	s.changeRole(c, true)
}

func (s *Server) revokeRole(c *gin.Context) {
	s.changeRole(c, false)
}

func (s *Server) changeRole(c *gin.Context, grant bool) {
	role := c.Param("role")
	if role != "admin" && role != "super_admin" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	var user User
	if err := s.db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	switch role {
	case "admin":
		user.IsAdmin = grant
	case "super_admin":
		user.IsSuperAdmin = grant
	}

	if err := s.db.Save(&user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to change role")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change role"})
		return
	}

	actor, _ := currentUser(c)
	s.logger.Info().
		Str("actor", actor.ID).
		Str("user_id", user.ID).
		Str("role", role).
		Bool("granted", grant).
		Msg("Role changed")

	c.JSON(http.StatusOK, gin.H{"status": "ok", "user": toUserDetail(&user)})
}

func (s *Server) deleteUser(c *gin.Context) {
	actor, _ := currentUser(c)
	userID := c.Param("id")

	if actor.ID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
		return
	}

	var user User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Super-admins can only be deleted by another super-admin
	if user.IsSuperAdmin && !actor.IsSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Super-admin access required"})
		return
	}

	if err := s.db.Delete(&user).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	s.logger.Info().Str("actor", actor.ID).Str("user_id", userID).Msg("User deleted")
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
