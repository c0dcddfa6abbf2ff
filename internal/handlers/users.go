package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"referral-app-server/internal/models"
	"referral-app-server/internal/utils"
)

// UserHandler handles company-user administration (admin operations).
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// CreateCompanyUserRequest represents the request body for linking a new
// login user to an existing company.
type CreateCompanyUserRequest struct {
	Nome      string `json:"nome" binding:"required"`
	EmpresaID string `json:"empresaId" binding:"required,uuid"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// CreateCompanyUser creates a user and profile bound to an existing company.
// The e-mail must match the one registered on the company, and the profile
// role follows the company kind.
func (h *UserHandler) CreateCompanyUser(c *gin.Context) {
	var req CreateCompanyUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var empresa models.Empresa
	if err := h.DB.First(&empresa, "id = ?", req.EmpresaID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Company not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if empresa.Email == nil || *empresa.Email != req.Email {
		utils.BadRequest(c, "Email must match the company's registered email")
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

	var profile models.UserProfile
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile = models.UserProfile{
			UserID:    user.ID,
			Role:      empresa.ProfileRole(),
			Nome:      req.Nome,
			EmpresaID: &empresa.ID,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to create company user: "+err.Error())
		return
	}

	utils.Created(c, "User created successfully", ProfileResponse{
		User:    user.Sanitize(),
		Profile: profile,
	})
}

// GetCompanyUsers handles listing all profiles with their companies (admin).
func (h *UserHandler) GetCompanyUsers(c *gin.Context) {
	var profiles []models.UserProfile
	if err := h.DB.Preload("Empresa").Order("created_at desc").Find(&profiles).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch users: "+err.Error())
		return
	}

	utils.Success(c, "Users fetched successfully", profiles)
}
