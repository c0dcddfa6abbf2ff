package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"referral-app-server/internal/models"
	"referral-app-server/internal/utils"
)

// CompanyHandler handles company (empresa) related requests.
type CompanyHandler struct {
	DB *gorm.DB
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(db *gorm.DB) *CompanyHandler {
	return &CompanyHandler{DB: db}
}

// GetCompanies handles listing all companies, newest first.
func (h *CompanyHandler) GetCompanies(c *gin.Context) {
	var empresas []models.Empresa
	if err := h.DB.Order("created_at desc").Find(&empresas).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch companies: "+err.Error())
		return
	}

	utils.Success(c, "Companies fetched successfully", empresas)
}

// CreateCompanyRequest represents the request body for creating a company
// without a login user attached.
type CreateCompanyRequest struct {
	Nome string `json:"nome" binding:"required"`
	Tipo string `json:"tipo" binding:"required,oneof=parceiro checkup"`
}

// CreateCompany handles creating a bare company record.
func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req CreateCompanyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	empresa := models.Empresa{
		Nome: req.Nome,
		Tipo: models.CompanyKind(req.Tipo),
	}

	if err := h.DB.Create(&empresa).Error; err != nil {
		utils.InternalServerError(c, "Failed to create company: "+err.Error())
		return
	}

	utils.Created(c, "Company created successfully", empresa)
}

// RegisterCompanyRequest represents the request body for creating a company
// together with its bootstrap login user.
type RegisterCompanyRequest struct {
	Nome     string `json:"nome" binding:"required"`
	Tipo     string `json:"tipo" binding:"required,oneof=parceiro checkup"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// RegisterCompanyResponse carries the rows created by company registration.
type RegisterCompanyResponse struct {
	Empresa models.Empresa       `json:"empresa"`
	User    models.UserSanitized `json:"user"`
	Profile models.UserProfile   `json:"profile"`
}

// RegisterCompany creates a company, its login user, and the user's profile
// in one transaction. The profile role mirrors the company kind.
func (h *CompanyHandler) RegisterCompany(c *gin.Context) {
	var req RegisterCompanyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if err != gorm.ErrRecordNotFound {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{Email: req.Email}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	empresa := models.Empresa{
		Nome:  req.Nome,
		Tipo:  models.CompanyKind(req.Tipo),
		Email: &req.Email,
	}

	var profile models.UserProfile
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&empresa).Error; err != nil {
			return err
		}
		profile = models.UserProfile{
			UserID:    user.ID,
			Role:      empresa.ProfileRole(),
			Nome:      req.Nome, // company name doubles as the bootstrap user's name
			EmpresaID: &empresa.ID,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to register company: "+err.Error())
		return
	}

	utils.Created(c, "Company registered successfully", RegisterCompanyResponse{
		Empresa: empresa,
		User:    user.Sanitize(),
		Profile: profile,
	})
}
