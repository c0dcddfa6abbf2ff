package models

// Role enum. The profile role is authoritative for access control.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleRecepcao Role = "recepcao"
	RoleParceiro Role = "parceiro"
	RoleCheckup  Role = "checkup"
)

// UserProfile links an authentication identity to a role and, for the
// parceiro and checkup roles, to the company that scopes its data access.
type UserProfile struct {
	BaseModel
	UserID    string  `gorm:"size:36;uniqueIndex;not null" json:"userId"`
	Role      Role    `gorm:"size:20;not null" json:"role"`
	Nome      string  `gorm:"size:255" json:"nome"`
	EmpresaID *string `gorm:"size:36;index" json:"empresaId,omitempty"`

	// Relations
	User    User     `gorm:"foreignKey:UserID" json:"-"`
	Empresa *Empresa `gorm:"foreignKey:EmpresaID" json:"empresa,omitempty"`
}
