package models

import (
	"errors"
	"testing"
)

func TestNormalizeStatus(t *testing.T) {
	if NormalizeStatus("intervencao") != StatusIntervencao {
		t.Fatal("plain spelling must normalize to the accented state")
	}
	if NormalizeStatus(StatusIntervencao) != StatusIntervencao {
		t.Fatal("accented spelling must be stable")
	}
	if NormalizeStatus(StatusExecutado) != StatusExecutado {
		t.Fatal("other states must pass through unchanged")
	}
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to ReferralStatus
		want     bool
	}{
		{StatusEncaminhado, StatusExecutado, true},
		{StatusEncaminhado, StatusIntervencao, false},
		{StatusEncaminhado, StatusAcompanhamento, false},
		{StatusExecutado, StatusIntervencao, true},
		{StatusExecutado, "intervencao", true},
		{StatusExecutado, StatusAcompanhamento, true},
		{StatusExecutado, StatusEncaminhado, false},
		{StatusIntervencao, StatusAcompanhamento, false},
		{"intervencao", StatusExecutado, false},
		{StatusAcompanhamento, StatusExecutado, false},
		{StatusAcompanhamento, StatusEncaminhado, false},
	}

	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestTransition(t *testing.T) {
	t.Run("intervention requires an observation", func(t *testing.T) {
		enc := Encaminhamento{Status: StatusExecutado}
		err := enc.Transition(StatusIntervencao, "   ")
		if !errors.Is(err, ErrObservationRequired) {
			t.Fatalf("expected ErrObservationRequired, got %v", err)
		}
		if enc.Status != StatusExecutado {
			t.Fatalf("status must not change on failure, got %q", enc.Status)
		}
	})

	t.Run("intervention overwrites the observation", func(t *testing.T) {
		enc := Encaminhamento{Status: StatusExecutado, Observacao: "valor antigo"}
		if err := enc.Transition(StatusIntervencao, "novo detalhamento"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if enc.Observacao != "novo detalhamento" {
			t.Fatalf("observation not overwritten: %q", enc.Observacao)
		}
		if enc.Status != StatusIntervencao {
			t.Fatalf("expected intervenção, got %q", enc.Status)
		}
	})

	t.Run("follow-up needs no observation", func(t *testing.T) {
		enc := Encaminhamento{Status: StatusExecutado, Observacao: "mantida"}
		if err := enc.Transition(StatusAcompanhamento, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if enc.Observacao != "mantida" {
			t.Fatalf("observation must be untouched, got %q", enc.Observacao)
		}
	})

	t.Run("terminal states accept nothing", func(t *testing.T) {
		enc := Encaminhamento{Status: StatusAcompanhamento}
		if err := enc.Transition(StatusExecutado, ""); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})

	t.Run("unknown target status", func(t *testing.T) {
		enc := Encaminhamento{Status: StatusEncaminhado}
		if err := enc.Transition("cancelado", ""); !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus, got %v", err)
		}
	})
}

func TestTallyReferrals(t *testing.T) {
	refs := []Encaminhamento{
		{Status: StatusEncaminhado},
		{Status: StatusExecutado},
		{Status: "intervencao"},
		{Status: StatusIntervencao},
		{Status: StatusAcompanhamento},
	}

	stats := TallyReferrals(refs)
	if stats.Total != 5 {
		t.Fatalf("total = %d, want 5", stats.Total)
	}
	if stats.Executados != 1 {
		t.Fatalf("executados = %d, want 1", stats.Executados)
	}
	if stats.Intervencao != 2 {
		t.Fatalf("both intervention spellings must share a bucket, got %d", stats.Intervencao)
	}
	if stats.Acompanhamento != 1 {
		t.Fatalf("acompanhamento = %d, want 1", stats.Acompanhamento)
	}
}
