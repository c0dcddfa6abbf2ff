package models

import (
	"gorm.io/datatypes"
)

// Paciente represents a patient scoped to the company that registered them.
// CPF is the patient's national id, stored verbatim; formatting is a
// presentation concern.
type Paciente struct {
	BaseModel
	Nome       string         `gorm:"size:255;not null" json:"nome"`
	CPF        string         `gorm:"size:14;index:idx_pacientes_cpf_empresa;not null" json:"cpf"`
	Nascimento datatypes.Date `json:"nascimento"`
	EmpresaID  string         `gorm:"size:36;index:idx_pacientes_cpf_empresa;not null" json:"empresaId"`

	// Relations
	Empresa Empresa `gorm:"foreignKey:EmpresaID" json:"-"`
}

func (Paciente) TableName() string { return "pacientes" }
