package models

// CheckupPatientStatus tracks a patient's progress inside a checkup battery
type CheckupPatientStatus string

const (
	CheckupPendente  CheckupPatientStatus = "pendente"
	CheckupConcluido CheckupPatientStatus = "concluido"
)

// Checkup represents a named bundle of exam types offered by a checkup-kind
// company to its enrolled patients.
type Checkup struct {
	BaseModel
	Nome      string `gorm:"size:255;not null" json:"nome"`
	Descricao string `gorm:"type:text" json:"descricao"`
	EmpresaID string `gorm:"size:36;index;not null" json:"empresaId"`

	// Relations
	Empresa Empresa       `gorm:"foreignKey:EmpresaID" json:"-"`
	Itens   []CheckupItem `gorm:"foreignKey:CheckupID" json:"itens,omitempty"`
}

func (Checkup) TableName() string { return "checkups" }

// CheckupItem joins a checkup battery to one exam type
type CheckupItem struct {
	BaseModel
	CheckupID string `gorm:"size:36;index;not null" json:"checkupId"`
	ExameID   string `gorm:"size:36;index;not null" json:"exameId"`

	// Relations
	Exame Exame `gorm:"foreignKey:ExameID" json:"exame,omitempty"`
}

func (CheckupItem) TableName() string { return "checkup_itens" }

// CheckupPaciente tracks a patient's enrollment in a checkup battery
type CheckupPaciente struct {
	BaseModel
	CheckupID  string               `gorm:"size:36;index;not null" json:"checkupId"`
	PacienteID string               `gorm:"size:36;index;not null" json:"pacienteId"`
	Status     CheckupPatientStatus `gorm:"size:20;default:'pendente'" json:"status"`

	// Relations
	Checkup  Checkup  `gorm:"foreignKey:CheckupID" json:"checkup,omitempty"`
	Paciente Paciente `gorm:"foreignKey:PacienteID" json:"paciente,omitempty"`
}

func (CheckupPaciente) TableName() string { return "checkup_pacientes" }
