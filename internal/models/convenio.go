package models

// Convenio represents an insurance plan belonging to a parceiro company
type Convenio struct {
	BaseModel
	Nome      string `gorm:"size:255;not null" json:"nome"`
	EmpresaID string `gorm:"size:36;index;not null" json:"empresaId"`

	// Relations
	Empresa Empresa `gorm:"foreignKey:EmpresaID" json:"-"`
}

func (Convenio) TableName() string { return "convenios" }
