package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clientdesk-dev/clientdesk/internal/models"
)

// ClientRequest represents the payload for creating or updating a client record
type ClientRequest struct {
	FirstName       string    `json:"firstName" binding:"required" validate:"required,min=1,max=100"`
	LastName        string    `json:"lastName" binding:"required" validate:"required,min=1,max=100"`
	Identification  string    `json:"identification" binding:"required" validate:"required,min=1,max=30"`
	Cellphone       string    `json:"cellphone" validate:"omitempty,phone,max=20"`
	OtherPhone      string    `json:"otherPhone" validate:"omitempty,phone,max=20"`
	Address         string    `json:"address" validate:"max=200"`
	BirthDate       time.Time `json:"birthDate"`
	AffiliationDate time.Time `json:"affiliationDate"`
	Gender          string    `json:"gender" binding:"required" validate:"required,oneof=F M"`
	PersonalNote    string    `json:"personalNote" validate:"max=2000"`
	Photo           string    `json:"photo"`
	InterestID      string    `json:"interestId"`
}

// ClientListItem is the abbreviated shape returned by the list endpoint
type ClientListItem struct {
	ID             string `json:"id"`
	Identification string `json:"identification"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
}

// @Summary List clients
// @Description List the caller's clients, optionally filtered by a search term
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param search query string false "Term matched against name and identification"
// @Success 200 {array} ClientListItem
// @Failure 401 {object} map[string]interface{}
// @Router /api/clients [get]
func (s *Server) listClients(c *gin.Context) {
	sessionData, exists := GetSessionData(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	query := s.db.Model(&models.Client{}).Where("user_id = ?", sessionData.UserID)

	if term := c.Query("search"); term != "" {
		like := "%" + term + "%"
		query = query.Where(
			"identification LIKE ? OR first_name LIKE ? OR last_name LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := query.Order("last_name, first_name").Find(&clients).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list clients")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	items := make([]ClientListItem, len(clients))
	for i, client := range clients {
		items[i] = ClientListItem{
			ID:             client.ID,
			Identification: client.Identification,
			FirstName:      client.FirstName,
			LastName:       client.LastName,
		}
	}

	c.JSON(http.StatusOK, items)
}

// @Summary Get client
// @Description Get a single client record by ID
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]interface{}
// @Router /api/clients/{id} [get]
func (s *Server) getClient(c *gin.Context) {
	sessionData, exists := GetSessionData(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, ok := s.findOwnedClient(c, sessionData.UserID, c.Param("id"))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, client)
}

// @Summary Create client
// @Description Create a new client record owned by the caller
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ClientRequest true "Client record"
// @Success 201 {object} models.Client
// @Failure 400 {object} map[string]interface{}
// @Router /api/clients [post]
func (s *Server) createClient(c *gin.Context) {
	sessionData, exists := GetSessionData(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	req, ok := s.bindClientRequest(c)
	if !ok {
		return
	}

	client := models.Client{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Identification:  req.Identification,
		Cellphone:       req.Cellphone,
		OtherPhone:      req.OtherPhone,
		Address:         req.Address,
		BirthDate:       req.BirthDate,
		AffiliationDate: req.AffiliationDate,
		Gender:          req.Gender,
		PersonalNote:    req.PersonalNote,
		Photo:           req.Photo,
		InterestID:      req.InterestID,
		UserID:          sessionData.UserID,
	}

	if err := s.db.Create(&client).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to create client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create client"})
		return
	}

	s.logger.Info().
		Str("client_id", client.ID).
		Str("user_id", sessionData.UserID).
		Msg("Client created")

	c.JSON(http.StatusCreated, client)
}

// @Summary Update client
// @Description Replace a client record owned by the caller
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Param body body ClientRequest true "Client record"
// @Success 200 {object} models.Client
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/clients/{id} [put]
func (s *Server) updateClient(c *gin.Context) {
	sessionData, exists := GetSessionData(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, ok := s.findOwnedClient(c, sessionData.UserID, c.Param("id"))
	if !ok {
		return
	}

	req, ok := s.bindClientRequest(c)
	if !ok {
		return
	}

	client.FirstName = req.FirstName
	client.LastName = req.LastName
	client.Identification = req.Identification
	client.Cellphone = req.Cellphone
	client.OtherPhone = req.OtherPhone
	client.Address = req.Address
	client.BirthDate = req.BirthDate
	client.AffiliationDate = req.AffiliationDate
	client.Gender = req.Gender
	client.PersonalNote = req.PersonalNote
	client.Photo = req.Photo
	client.InterestID = req.InterestID

	if err := s.db.Save(&client).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to update client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update client"})
		return
	}

	s.logger.Info().
		Str("client_id", client.ID).
		Str("user_id", sessionData.UserID).
		Msg("Client updated")

	c.JSON(http.StatusOK, client)
}

// @Summary Delete client
// @Description Delete a client record owned by the caller
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "Client ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/clients/{id} [delete]
func (s *Server) deleteClient(c *gin.Context) {
	sessionData, exists := GetSessionData(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, ok := s.findOwnedClient(c, sessionData.UserID, c.Param("id"))
	if !ok {
		return
	}

	if err := s.db.Delete(&client).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to delete client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete client"})
		return
	}

	s.logger.Info().
		Str("client_id", client.ID).
		Str("user_id", sessionData.UserID).
		Msg("Client deleted")

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}

// @Summary List interests
// @Description List the global interest catalog
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Interest
// @Router /api/interests [get]
func (s *Server) listInterests(c *gin.Context) {
	var interests []models.Interest
	if err := s.db.Order("name").Find(&interests).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to list interests")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, interests)
}

// bindClientRequest parses and validates a client payload, defaulting the
// interest when none is given and verifying the referenced interest exists
func (s *Server) bindClientRequest(c *gin.Context) (*ClientRequest, bool) {
	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Warn().Err(err).Msg("Invalid request body")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return nil, false
	}

	if err := s.validator.Struct(&req); err != nil {
		s.logger.Warn().Err(err).Msg("Request validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return nil, false
	}

	if req.InterestID == "" {
		req.InterestID = models.DefaultInterestID
	}

	var count int64
	if err := s.db.Model(&models.Interest{}).Where("id = ?", req.InterestID).Count(&count).Error; err != nil {
		s.logger.Error().Err(err).Msg("Failed to check interest")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return nil, false
	}
	if count == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown interest"})
		return nil, false
	}

	return &req, true
}

// findOwnedClient loads a client and enforces ownership. Missing and
// foreign records are indistinguishable to the caller.
func (s *Server) findOwnedClient(c *gin.Context, userID, clientID string) (*models.Client, bool) {
	var client models.Client
	if err := s.db.Where("id = ? AND user_id = ?", clientID, userID).First(&client).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return nil, false
		}
		s.logger.Error().Err(err).Msg("Failed to find client")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return nil, false
	}
	return &client, true
}
