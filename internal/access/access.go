// Package access resolves a user profile into an explicit data-access scope.
// The scope is a plain value carried through the request context, so the
// company/role gating can be unit-tested without a live database.
package access

import (
	"errors"

	"gorm.io/gorm"

	"referral-app-server/internal/models"
)

var (
	// ErrUnknownRole rejects profiles whose role is outside the four-role set.
	ErrUnknownRole = errors.New("profile role is not recognized")
	// ErrMissingCompany rejects parceiro/checkup profiles without a company.
	ErrMissingCompany = errors.New("profile role requires a company")
)

// Scope describes the visibility a profile has over company-owned data.
// A zero EmpresaID means global visibility (admin and recepcao).
type Scope struct {
	Role      models.Role
	EmpresaID string
}

// Resolve derives the data-access scope for a profile. admin and recepcao
// are company-agnostic; parceiro and checkup must carry a company id.
// Failures here are fatal authorization conditions, not recoverable ones.
func Resolve(profile *models.UserProfile) (Scope, error) {
	switch profile.Role {
	case models.RoleAdmin, models.RoleRecepcao:
		return Scope{Role: profile.Role}, nil
	case models.RoleParceiro, models.RoleCheckup:
		if profile.EmpresaID == nil || *profile.EmpresaID == "" {
			return Scope{}, ErrMissingCompany
		}
		return Scope{Role: profile.Role, EmpresaID: *profile.EmpresaID}, nil
	default:
		return Scope{}, ErrUnknownRole
	}
}

// Global reports whether the scope sees all companies' data.
func (s Scope) Global() bool {
	return s.EmpresaID == ""
}

// CoversCompany reports whether the scope may act on data owned by the
// given company.
func (s Scope) CoversCompany(empresaID string) bool {
	return s.Global() || s.EmpresaID == empresaID
}

// Company applies the scope's company filter to a query over a table with an
// empresa_id column (medicos, convenios, pacientes, checkups).
func (s Scope) Company(db *gorm.DB) *gorm.DB {
	if s.Global() {
		return db
	}
	return db.Where("empresa_id = ?", s.EmpresaID)
}

// Referrals applies the scope's company filter to referral queries.
// Referrals have no company column of their own; they are scoped through the
// owning doctor's company.
func (s Scope) Referrals(db *gorm.DB) *gorm.DB {
	if s.Global() {
		return db
	}
	return db.Joins("JOIN medicos ON medicos.id = encaminhamentos.medico_id").
		Where("medicos.empresa_id = ?", s.EmpresaID)
}
