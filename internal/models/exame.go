package models

// Exame represents an exam type in the global catalog. Exams are not
// company-scoped.
type Exame struct {
	BaseModel
	Nome      string `gorm:"size:255;not null" json:"nome"`
	Descricao string `gorm:"type:text" json:"descricao"`
}

func (Exame) TableName() string { return "exames" }
