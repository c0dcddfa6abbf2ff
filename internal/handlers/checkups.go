package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"referral-app-server/internal/middleware"
	"referral-app-server/internal/models"
	"referral-app-server/internal/utils"
)

// CheckupHandler handles checkup battery related requests.
type CheckupHandler struct {
	DB *gorm.DB
}

// NewCheckupHandler creates a new CheckupHandler.
func NewCheckupHandler(db *gorm.DB) *CheckupHandler {
	return &CheckupHandler{DB: db}
}

// GetCheckups handles listing the caller company's checkup batteries with
// their exam items.
func (h *CheckupHandler) GetCheckups(c *gin.Context) {
	scope, exists := middleware.GetScopeFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var checkups []models.Checkup
	if err := scope.Company(h.DB.Order("created_at desc")).
		Preload("Itens").Preload("Itens.Exame").
		Find(&checkups).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch checkups: "+err.Error())
		return
	}

	utils.Success(c, "Checkups fetched successfully", checkups)
}

// CreateCheckupRequest represents the request body for composing a checkup
// battery. The exam selection may be empty.
type CreateCheckupRequest struct {
	Nome      string   `json:"nome" binding:"required"`
	Descricao string   `json:"descricao"`
	ExameIDs  []string `json:"exameIds" binding:"dive,uuid"`
}

// CreateCheckup handles creating a checkup battery together with its exam
// items in one transaction.
func (h *CheckupHandler) CreateCheckup(c *gin.Context) {
	scope, exists := middleware.GetScopeFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	if scope.Global() {
		utils.Forbidden(c, "Checkups are composed by checkup companies")
		return
	}

	var req CreateCheckupRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	checkup := models.Checkup{
		Nome:      req.Nome,
		Descricao: req.Descricao,
		EmpresaID: scope.EmpresaID,
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&checkup).Error; err != nil {
			return err
		}
		for _, exameID := range req.ExameIDs {
			item := models.CheckupItem{CheckupID: checkup.ID, ExameID: exameID}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			checkup.Itens = append(checkup.Itens, item)
		}
		return nil
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create checkup: "+err.Error())
		return
	}

	utils.Created(c, "Checkup created successfully", checkup)
}

// GetPatients handles listing the caller company's patients.
func (h *CheckupHandler) GetPatients(c *gin.Context) {
	scope, exists := middleware.GetScopeFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var pacientes []models.Paciente
	if err := scope.Company(h.DB.Order("created_at desc")).Find(&pacientes).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	utils.Success(c, "Patients fetched successfully", pacientes)
}

// EnrollPatientRequest represents the request body for enrolling a patient
// into a checkup battery.
type EnrollPatientRequest struct {
	Nome       string `json:"nome" binding:"required"`
	CPF        string `json:"cpf" binding:"required"`
	Nascimento string `json:"nascimento" binding:"required"`
}

// EnrollPatient handles enrolling a patient into a checkup battery:
// resolve-or-create the patient by (CPF, company), then link them with
// initial status pendente, in one transaction.
func (h *CheckupHandler) EnrollPatient(c *gin.Context) {
	scope, exists := middleware.GetScopeFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req EnrollPatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	nascimento, err := time.Parse("2006-01-02", req.Nascimento)
	if err != nil {
		utils.BadRequest(c, "Invalid birth date, expected YYYY-MM-DD")
		return
	}

	var checkup models.Checkup
	if err := h.DB.First(&checkup, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Checkup not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	if !scope.CoversCompany(checkup.EmpresaID) {
		utils.Forbidden(c, "Checkup belongs to another company")
		return
	}

	var vinculo models.CheckupPaciente
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var paciente models.Paciente
		err := tx.Where("cpf = ? AND empresa_id = ?", req.CPF, checkup.EmpresaID).First(&paciente).Error
		if err == gorm.ErrRecordNotFound {
			paciente = models.Paciente{
				Nome:       req.Nome,
				CPF:        req.CPF,
				Nascimento: datatypes.Date(nascimento),
				EmpresaID:  checkup.EmpresaID,
			}
			if err := tx.Create(&paciente).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		vinculo = models.CheckupPaciente{
			CheckupID:  checkup.ID,
			PacienteID: paciente.ID,
			Status:     models.CheckupPendente,
		}
		return tx.Create(&vinculo).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to enroll patient: "+err.Error())
		return
	}

	utils.Created(c, "Patient enrolled successfully", vinculo)
}

// GetEnrollments handles listing the caller company's checkup enrollments.
func (h *CheckupHandler) GetEnrollments(c *gin.Context) {
	scope, exists := middleware.GetScopeFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	query := h.DB.Model(&models.CheckupPaciente{}).
		Preload("Checkup").Preload("Paciente").
		Order("checkup_pacientes.created_at desc")
	if !scope.Global() {
		query = query.Joins("JOIN checkups ON checkups.id = checkup_pacientes.checkup_id").
			Where("checkups.empresa_id = ?", scope.EmpresaID)
	}

	var vinculos []models.CheckupPaciente
	if err := query.Find(&vinculos).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch enrollments: "+err.Error())
		return
	}

	utils.Success(c, "Enrollments fetched successfully", vinculos)
}
