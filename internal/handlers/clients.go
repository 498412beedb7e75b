package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"practice-scheduler-server/internal/middleware"
	"practice-scheduler-server/internal/models"
	"practice-scheduler-server/internal/utils"
)

// ClientHandler handles client-record requests. Client records are plain CRUD
// owned by the practitioner; the booking flow only reads them for the price
// auto-fill.
type ClientHandler struct {
	DB *gorm.DB
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{DB: db}
}

// ClientRequest represents the request body for creating or updating a client.
type ClientRequest struct {
	FirstName           string     `json:"firstName" binding:"required"`
	LastName            string     `json:"lastName"`
	Email               string     `json:"email" binding:"omitempty,email"`
	PhoneNumber         string     `json:"phoneNumber"`
	DateOfBirth         *time.Time `json:"dateOfBirth"`
	DefaultSessionPrice string     `json:"defaultSessionPrice"`
	Notes               string     `json:"notes"`
}

func (r *ClientRequest) parsePrice() (decimal.NullDecimal, error) {
	if r.DefaultSessionPrice == "" {
		return decimal.NullDecimal{}, nil
	}
	parsed, err := decimal.NewFromString(r.DefaultSessionPrice)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(parsed), nil
}

// CreateClient handles adding a new client for the authenticated practitioner.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	practitionerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req ClientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	price, err := req.parsePrice()
	if err != nil {
		utils.BadRequest(c, "Invalid default session price: "+req.DefaultSessionPrice)
		return
	}

	client := models.Client{
		PractitionerID:      practitionerID,
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		PhoneNumber:         req.PhoneNumber,
		DateOfBirth:         req.DateOfBirth,
		DefaultSessionPrice: price,
		Notes:               req.Notes,
	}

	if err := h.DB.Create(&client).Error; err != nil {
		utils.InternalServerError(c, "Failed to create client: "+err.Error())
		return
	}

	utils.Created(c, "Client created successfully", client)
}

// GetClients handles listing the practitioner's clients. Archived clients are
// excluded unless ?includeArchived=true.
func (h *ClientHandler) GetClients(c *gin.Context) {
	practitionerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	query := h.DB.Where("practitioner_id = ?", practitionerID).Order("first_name asc, last_name asc")
	if c.Query("includeArchived") != "true" {
		query = query.Where("archived = ?", false)
	}

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch clients: "+err.Error())
		return
	}

	utils.Success(c, "Clients fetched successfully", clients)
}

// GetClientByID handles fetching a single client owned by the practitioner.
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	practitionerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var client models.Client
	if err := h.DB.First(&client, "id = ? AND practitioner_id = ?", c.Param("id"), practitionerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Client not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	utils.Success(c, "Client fetched successfully", client)
}

// UpdateClient handles updating a client's details.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	practitionerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var client models.Client
	if err := h.DB.First(&client, "id = ? AND practitioner_id = ?", c.Param("id"), practitionerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Client not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var req ClientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	price, err := req.parsePrice()
	if err != nil {
		utils.BadRequest(c, "Invalid default session price: "+req.DefaultSessionPrice)
		return
	}

	client.FirstName = req.FirstName
	client.LastName = req.LastName
	client.Email = req.Email
	client.PhoneNumber = req.PhoneNumber
	client.DateOfBirth = req.DateOfBirth
	client.DefaultSessionPrice = price
	client.Notes = req.Notes

	if err := h.DB.Save(&client).Error; err != nil {
		utils.InternalServerError(c, "Failed to update client: "+err.Error())
		return
	}

	utils.Success(c, "Client updated successfully", client)
}

// DeleteClient archives a client. Records are kept for history; archived
// clients simply stop appearing in the booking form.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	practitionerID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var client models.Client
	if err := h.DB.First(&client, "id = ? AND practitioner_id = ?", c.Param("id"), practitionerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Client not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	client.Archived = true
	if err := h.DB.Save(&client).Error; err != nil {
		utils.InternalServerError(c, "Failed to archive client: "+err.Error())
		return
	}

	utils.Success(c, "Client archived successfully", nil)
}
