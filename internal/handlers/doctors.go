package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"referral-app-server/internal/middleware"
	"referral-app-server/internal/models"
	"referral-app-server/internal/utils"
)

// DoctorHandler handles doctor (medico) related requests.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// GetDoctors handles listing doctors visible to the caller's scope. A
// parceiro sees only its own company's doctors; admin and recepcao see all.
// An optional empresaId query narrows a global scope to one company.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	scope, exists := middleware.GetScopeFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	query := scope.Company(h.DB.Order("created_at desc"))
	if empresaID := c.Query("empresaId"); empresaID != "" && scope.Global() {
		query = query.Where("empresa_id = ?", empresaID)
	}

	var medicos []models.Medico
	if err := query.Find(&medicos).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", medicos)
}

// CreateDoctorRequest represents the request body for registering a doctor.
type CreateDoctorRequest struct {
	Nome          string `json:"nome" binding:"required"`
	CRM           string `json:"crm" binding:"required"`
	Especialidade string `json:"especialidade" binding:"required"`
}

// CreateDoctor handles registering a doctor under the caller's company
// (parceiro role only; the company comes from the scope, never the payload).
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	scope, exists := middleware.GetScopeFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	if scope.Global() {
		utils.Forbidden(c, "Doctors are registered by partner companies")
		return
	}

	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	medico := models.Medico{
		Nome:          req.Nome,
		CRM:           req.CRM,
		Especialidade: req.Especialidade,
		EmpresaID:     scope.EmpresaID,
	}

	if err := h.DB.Create(&medico).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	utils.Created(c, "Doctor created successfully", medico)
}
