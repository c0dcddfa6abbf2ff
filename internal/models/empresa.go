package models

// CompanyKind determines which entities a company may own: parceiro
// companies register doctors and convenios, checkup companies run
// corporate checkup batteries.
type CompanyKind string

const (
	CompanyParceiro CompanyKind = "parceiro"
	CompanyCheckup  CompanyKind = "checkup"
)

// Empresa represents a partner or checkup company
type Empresa struct {
	BaseModel
	Nome  string      `gorm:"size:255;not null" json:"nome"`
	Tipo  CompanyKind `gorm:"size:20;not null" json:"tipo"`
	Email *string     `gorm:"size:255" json:"email,omitempty"`

	// Relations (not always preloaded)
	Medicos   []Medico   `gorm:"foreignKey:EmpresaID" json:"-"`
	Convenios []Convenio `gorm:"foreignKey:EmpresaID" json:"-"`
	Pacientes []Paciente `gorm:"foreignKey:EmpresaID" json:"-"`
	Checkups  []Checkup  `gorm:"foreignKey:EmpresaID" json:"-"`
}

func (Empresa) TableName() string { return "empresas" }

// ProfileRole maps a company kind to the role its users receive.
func (e *Empresa) ProfileRole() Role {
	if e.Tipo == CompanyParceiro {
		return RoleParceiro
	}
	return RoleCheckup
}
