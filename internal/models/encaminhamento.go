package models

import (
	"errors"
	"strings"
)

// ReferralStatus represents the lifecycle state of a referral
type ReferralStatus string

const (
	StatusEncaminhado    ReferralStatus = "encaminhado"
	StatusExecutado      ReferralStatus = "executado"
	StatusIntervencao    ReferralStatus = "intervenção"
	StatusAcompanhamento ReferralStatus = "acompanhamento"
)

// Plain-ASCII spelling stored by some historical write paths. Treated as the
// same logical state as StatusIntervencao; the persisted value stays verbatim.
const statusIntervencaoPlain ReferralStatus = "intervencao"

// ReferralKind distinguishes insurance from private referrals
type ReferralKind string

const (
	KindConvenio   ReferralKind = "convenio"
	KindParticular ReferralKind = "particular"
)

var (
	ErrInvalidStatus       = errors.New("unknown referral status")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrObservationRequired = errors.New("intervention requires an observation")
)

// NormalizeStatus folds the two encodings of "intervenção" into one logical
// bucket for filtering and counting purposes.
func NormalizeStatus(s ReferralStatus) ReferralStatus {
	if s == statusIntervencaoPlain {
		return StatusIntervencao
	}
	return s
}

// ValidStatus reports whether s is one of the four lifecycle states, in
// either encoding of "intervenção".
func ValidStatus(s ReferralStatus) bool {
	switch NormalizeStatus(s) {
	case StatusEncaminhado, StatusExecutado, StatusIntervencao, StatusAcompanhamento:
		return true
	}
	return false
}

// CanTransition reports whether the stepwise state machine permits moving
// from one status to another. Intervenção and acompanhamento are terminal.
func CanTransition(from, to ReferralStatus) bool {
	switch NormalizeStatus(from) {
	case StatusEncaminhado:
		return NormalizeStatus(to) == StatusExecutado
	case StatusExecutado:
		next := NormalizeStatus(to)
		return next == StatusIntervencao || next == StatusAcompanhamento
	}
	return false
}

// Encaminhamento represents a referral: one exam for one patient via one
// doctor, tracked through the status lifecycle.
type Encaminhamento struct {
	BaseModel
	PacienteID string         `gorm:"size:36;index;not null" json:"pacienteId"`
	MedicoID   string         `gorm:"size:36;index;not null" json:"medicoId"`
	ExameID    string         `gorm:"size:36;index;not null" json:"exameId"`
	Tipo       ReferralKind   `gorm:"size:20;not null" json:"tipo"`
	Status     ReferralStatus `gorm:"size:20;default:'encaminhado'" json:"status"`
	Observacao string         `gorm:"type:text" json:"observacao"`

	// Relations
	Paciente Paciente `gorm:"foreignKey:PacienteID" json:"paciente,omitempty"`
	Medico   Medico   `gorm:"foreignKey:MedicoID" json:"medico,omitempty"`
	Exame    Exame    `gorm:"foreignKey:ExameID" json:"exame,omitempty"`
}

func (Encaminhamento) TableName() string { return "encaminhamentos" }

// Transition applies a stepwise status change. Moving to intervenção requires
// a non-empty observation, which overwrites any prior value on the record.
func (e *Encaminhamento) Transition(to ReferralStatus, observacao string) error {
	if !ValidStatus(to) {
		return ErrInvalidStatus
	}
	if !CanTransition(e.Status, to) {
		return ErrInvalidTransition
	}
	if NormalizeStatus(to) == StatusIntervencao {
		if strings.TrimSpace(observacao) == "" {
			return ErrObservationRequired
		}
		e.Observacao = observacao
	}
	e.Status = to
	return nil
}

// ReferralStats mirrors the dashboard counters. Both spellings of
// intervenção count in the same bucket.
type ReferralStats struct {
	Total          int `json:"totalEncaminhamentos"`
	Executados     int `json:"executados"`
	Intervencao    int `json:"intervencao"`
	Acompanhamento int `json:"acompanhamento"`
}

// TallyReferrals aggregates referrals into the dashboard counters.
func TallyReferrals(refs []Encaminhamento) ReferralStats {
	stats := ReferralStats{Total: len(refs)}
	for _, r := range refs {
		switch NormalizeStatus(r.Status) {
		case StatusExecutado:
			stats.Executados++
		case StatusIntervencao:
			stats.Intervencao++
		case StatusAcompanhamento:
			stats.Acompanhamento++
		}
	}
	return stats
}
