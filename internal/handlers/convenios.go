package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"referral-app-server/internal/middleware"
	"referral-app-server/internal/models"
	"referral-app-server/internal/utils"
)

// ConvenioHandler handles insurance plan (convenio) related requests.
type ConvenioHandler struct {
	DB *gorm.DB
}

// NewConvenioHandler creates a new ConvenioHandler.
func NewConvenioHandler(db *gorm.DB) *ConvenioHandler {
	return &ConvenioHandler{DB: db}
}

// GetConvenios handles listing insurance plans visible to the caller's scope.
func (h *ConvenioHandler) GetConvenios(c *gin.Context) {
	scope, exists := middleware.GetScopeFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var convenios []models.Convenio
	if err := scope.Company(h.DB.Order("created_at desc")).Find(&convenios).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch insurance plans: "+err.Error())
		return
	}

	utils.Success(c, "Insurance plans fetched successfully", convenios)
}

// CreateConvenioRequest represents the request body for registering a plan.
type CreateConvenioRequest struct {
	Nome string `json:"nome" binding:"required"`
}

// CreateConvenio handles registering an insurance plan under the caller's
// company (parceiro role only).
func (h *ConvenioHandler) CreateConvenio(c *gin.Context) {
	scope, exists := middleware.GetScopeFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	if scope.Global() {
		utils.Forbidden(c, "Insurance plans are registered by partner companies")
		return
	}

	var req CreateConvenioRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	convenio := models.Convenio{
		Nome:      req.Nome,
		EmpresaID: scope.EmpresaID,
	}

	if err := h.DB.Create(&convenio).Error; err != nil {
		utils.InternalServerError(c, "Failed to create insurance plan: "+err.Error())
		return
	}

	utils.Created(c, "Insurance plan created successfully", convenio)
}
