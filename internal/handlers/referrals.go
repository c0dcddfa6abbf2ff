package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"referral-app-server/internal/access"
	"referral-app-server/internal/config"
	"referral-app-server/internal/middleware"
	"referral-app-server/internal/models"
	"referral-app-server/internal/utils"
)

// ErrDoctorOutsideCompany rejects referrals naming a doctor that does not
// belong to the acting company scope.
var ErrDoctorOutsideCompany = errors.New("doctor does not belong to the acting company")

// ReferralHandler handles referral (encaminhamento) related requests.
type ReferralHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewReferralHandler creates a new ReferralHandler.
func NewReferralHandler(db *gorm.DB, cfg *config.Config) *ReferralHandler {
	return &ReferralHandler{DB: db, Cfg: cfg}
}

// CreateReferralRequest represents the request body for creating a referral.
// Patient fields are resolved against the company scope: an existing patient
// with the same CPF is reused, otherwise one is created.
type CreateReferralRequest struct {
	EmpresaID          string `json:"empresaId" binding:"required,uuid"`
	PacienteNome       string `json:"pacienteNome" binding:"required"`
	PacienteCPF        string `json:"pacienteCpf" binding:"required"`
	PacienteNascimento string `json:"pacienteNascimento" binding:"required"`
	MedicoID           string `json:"medicoId" binding:"required,uuid"`
	ExameID            string `json:"exameId" binding:"required,uuid"`
	Tipo               string `json:"tipo" binding:"required,oneof=convenio particular"`
	Observacao         string `json:"observacao"`
}

// CreateReferral handles the referral creation workflow: resolve-or-create
// the patient by (CPF, company), then create the referral with initial
// status encaminhado. Both steps run in one transaction.
func (h *ReferralHandler) CreateReferral(c *gin.Context) {
	scope, exists := middleware.GetScopeFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req CreateReferralRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if !scope.CoversCompany(req.EmpresaID) {
		utils.Forbidden(c, "You cannot create referrals for another company")
		return
	}

	nascimento, err := time.Parse("2006-01-02", req.PacienteNascimento)
	if err != nil {
		utils.BadRequest(c, "Invalid birth date, expected YYYY-MM-DD")
		return
	}

	// The chosen doctor must belong to the acting company. Deliberate
	// policy: a mismatch is a hard validation error, not an unchecked write.
	var medico models.Medico
	if err := h.DB.Where("id = ? AND empresa_id = ?", req.MedicoID, req.EmpresaID).First(&medico).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.BadRequest(c, ErrDoctorOutsideCompany.Error())
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	var exame models.Exame
	if err := h.DB.First(&exame, "id = ?", req.ExameID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Exam not found")
		} else {
			utils.InternalServerError(c, "Database error verifying exam: "+err.Error())
		}
		return
	}

	var encaminhamento models.Encaminhamento
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var paciente models.Paciente
		err := tx.Where("cpf = ? AND empresa_id = ?", req.PacienteCPF, req.EmpresaID).First(&paciente).Error
		if err == gorm.ErrRecordNotFound {
			paciente = models.Paciente{
				Nome:       req.PacienteNome,
				CPF:        req.PacienteCPF,
				Nascimento: datatypes.Date(nascimento),
				EmpresaID:  req.EmpresaID,
			}
			if err := tx.Create(&paciente).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		encaminhamento = models.Encaminhamento{
			PacienteID: paciente.ID,
			MedicoID:   req.MedicoID,
			ExameID:    req.ExameID,
			Tipo:       models.ReferralKind(req.Tipo),
			Status:     models.StatusEncaminhado,
			Observacao: req.Observacao,
		}
		return tx.Create(&encaminhamento).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create referral: "+err.Error())
		return
	}

	utils.Created(c, "Referral created successfully", encaminhamento)
}

// GetReferrals handles listing referrals visible to the caller's scope, with
// the report filters: status, doctor, exam, kind, and creation period.
func (h *ReferralHandler) GetReferrals(c *gin.Context) {
	scope, exists := middleware.GetScopeFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	query := scope.Referrals(h.DB.Model(&models.Encaminhamento{})).
		Preload("Paciente").Preload("Medico").Preload("Medico.Empresa").Preload("Exame").
		Order("encaminhamentos.created_at desc")

	if status := c.Query("status"); status != "" {
		query = whereStatus(query, models.ReferralStatus(status))
	}
	if medicoID := c.Query("medicoId"); medicoID != "" {
		query = query.Where("encaminhamentos.medico_id = ?", medicoID)
	}
	if exameID := c.Query("exameId"); exameID != "" {
		query = query.Where("encaminhamentos.exame_id = ?", exameID)
	}
	if tipo := c.Query("tipo"); tipo != "" {
		query = query.Where("encaminhamentos.tipo = ?", tipo)
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("encaminhamentos.created_at >= ?", t)
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("encaminhamentos.created_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var encaminhamentos []models.Encaminhamento
	if err := query.Find(&encaminhamentos).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch referrals: "+err.Error())
		return
	}

	utils.Success(c, "Referrals fetched successfully", encaminhamentos)
}

// GetReferralStats handles the dashboard counters over the caller's scope.
func (h *ReferralHandler) GetReferralStats(c *gin.Context) {
	scope, exists := middleware.GetScopeFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var encaminhamentos []models.Encaminhamento
	if err := scope.Referrals(h.DB.Model(&models.Encaminhamento{})).Find(&encaminhamentos).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch referrals: "+err.Error())
		return
	}

	utils.Success(c, "Referral stats fetched successfully", models.TallyReferrals(encaminhamentos))
}

// UpdateReferralStatusRequest represents the request body for the reception
// status update.
type UpdateReferralStatusRequest struct {
	Status     string `json:"status" binding:"required"`
	Observacao string `json:"observacao"`
}

// UpdateReferralStatus handles the reception status update. With the
// RECEPTION_STATUS_OVERRIDE flag on, reception may set any lifecycle status
// directly, bypassing the stepwise machine; with it off, only stepwise
// transitions are accepted.
func (h *ReferralHandler) UpdateReferralStatus(c *gin.Context) {
	var req UpdateReferralStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	status := models.ReferralStatus(req.Status)
	if !models.ValidStatus(status) {
		utils.BadRequest(c, models.ErrInvalidStatus.Error())
		return
	}

	var encaminhamento models.Encaminhamento
	if err := h.DB.First(&encaminhamento, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Referral not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if h.Cfg.ReceptionStatusOverride {
		// Administrative escape hatch: direct set, stored verbatim.
		encaminhamento.Status = status
		if req.Observacao != "" {
			encaminhamento.Observacao = req.Observacao
		}
	} else {
		if err := encaminhamento.Transition(status, req.Observacao); err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
	}

	if err := h.DB.Save(&encaminhamento).Error; err != nil {
		utils.InternalServerError(c, "Failed to update referral status: "+err.Error())
		return
	}

	utils.Success(c, "Referral status updated successfully", encaminhamento)
}

// InterventionRequest represents the request body for marking a referral as
// intervention. The observation is mandatory and overwrites any prior value.
type InterventionRequest struct {
	Observacao string `json:"observacao" binding:"required"`
}

// MarkIntervention handles the parceiro transition executado → intervenção.
func (h *ReferralHandler) MarkIntervention(c *gin.Context) {
	var req InterventionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	h.partnerTransition(c, models.StatusIntervencao, req.Observacao)
}

// MarkFollowUp handles the parceiro transition executado → acompanhamento.
func (h *ReferralHandler) MarkFollowUp(c *gin.Context) {
	h.partnerTransition(c, models.StatusAcompanhamento, "")
}

// partnerTransition loads a referral, checks it belongs to the caller's
// company via its doctor, and applies a stepwise transition.
func (h *ReferralHandler) partnerTransition(c *gin.Context, to models.ReferralStatus, observacao string) {
	scope, exists := middleware.GetScopeFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	encaminhamento, ok := h.loadScopedReferral(c, scope)
	if !ok {
		return
	}

	if err := encaminhamento.Transition(to, observacao); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.DB.Save(encaminhamento).Error; err != nil {
		utils.InternalServerError(c, "Failed to update referral: "+err.Error())
		return
	}

	utils.Success(c, "Referral updated successfully", encaminhamento)
}

func (h *ReferralHandler) loadScopedReferral(c *gin.Context, scope access.Scope) (*models.Encaminhamento, bool) {
	var encaminhamento models.Encaminhamento
	if err := h.DB.Preload("Medico").First(&encaminhamento, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Referral not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return nil, false
	}

	if !scope.CoversCompany(encaminhamento.Medico.EmpresaID) {
		utils.Forbidden(c, "Referral belongs to another company")
		return nil, false
	}

	return &encaminhamento, true
}

// whereStatus filters on a status column treating both encodings of
// intervenção as the same logical state.
func whereStatus(db *gorm.DB, status models.ReferralStatus) *gorm.DB {
	if models.NormalizeStatus(status) == models.StatusIntervencao {
		return db.Where("encaminhamentos.status IN ?", []string{"intervenção", "intervencao"})
	}
	return db.Where("encaminhamentos.status = ?", string(status))
}
