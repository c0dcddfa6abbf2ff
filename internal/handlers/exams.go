package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"referral-app-server/internal/models"
	"referral-app-server/internal/utils"
)

// ExamHandler handles the global exam catalog.
type ExamHandler struct {
	DB *gorm.DB
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(db *gorm.DB) *ExamHandler {
	return &ExamHandler{DB: db}
}

// GetExams handles listing the exam catalog, ordered by name. The catalog is
// global: every authenticated role reads the same list.
func (h *ExamHandler) GetExams(c *gin.Context) {
	var exames []models.Exame
	if err := h.DB.Order("nome").Find(&exames).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch exams: "+err.Error())
		return
	}

	utils.Success(c, "Exams fetched successfully", exames)
}

// CreateExamRequest represents the request body for adding an exam type.
type CreateExamRequest struct {
	Nome      string `json:"nome" binding:"required"`
	Descricao string `json:"descricao"`
}

// CreateExam handles adding a new exam type to the catalog (admin).
func (h *ExamHandler) CreateExam(c *gin.Context) {
	var req CreateExamRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	exame := models.Exame{
		Nome:      req.Nome,
		Descricao: req.Descricao,
	}

	if err := h.DB.Create(&exame).Error; err != nil {
		utils.InternalServerError(c, "Failed to create exam: "+err.Error())
		return
	}

	utils.Created(c, "Exam created successfully", exame)
}
