package models

// Medico represents a doctor belonging to exactly one parceiro company.
// CRM is the doctor's license number, opaque to the system.
type Medico struct {
	BaseModel
	Nome          string `gorm:"size:255;not null" json:"nome"`
	CRM           string `gorm:"size:50;not null" json:"crm"`
	Especialidade string `gorm:"size:255" json:"especialidade"`
	EmpresaID     string `gorm:"size:36;index;not null" json:"empresaId"`

	// Relations
	Empresa Empresa `gorm:"foreignKey:EmpresaID" json:"empresa,omitempty"`
}

func (Medico) TableName() string { return "medicos" }
