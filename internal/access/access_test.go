package access

import (
	"errors"
	"testing"

	"referral-app-server/internal/models"
)

func TestResolve(t *testing.T) {
	companyID := "b6f4a5d2-0000-0000-0000-000000000001"

	t.Run("admin and recepcao are global", func(t *testing.T) {
		for _, role := range []models.Role{models.RoleAdmin, models.RoleRecepcao} {
			scope, err := Resolve(&models.UserProfile{Role: role})
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", role, err)
			}
			if !scope.Global() {
				t.Fatalf("%s: expected global scope", role)
			}
		}
	})

	t.Run("parceiro and checkup require a company", func(t *testing.T) {
		for _, role := range []models.Role{models.RoleParceiro, models.RoleCheckup} {
			_, err := Resolve(&models.UserProfile{Role: role})
			if !errors.Is(err, ErrMissingCompany) {
				t.Fatalf("%s with nil company: expected ErrMissingCompany, got %v", role, err)
			}

			empty := ""
			_, err = Resolve(&models.UserProfile{Role: role, EmpresaID: &empty})
			if !errors.Is(err, ErrMissingCompany) {
				t.Fatalf("%s with empty company: expected ErrMissingCompany, got %v", role, err)
			}

			scope, err := Resolve(&models.UserProfile{Role: role, EmpresaID: &companyID})
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", role, err)
			}
			if scope.Global() || scope.EmpresaID != companyID {
				t.Fatalf("%s: expected company scope, got %+v", role, scope)
			}
		}
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		_, err := Resolve(&models.UserProfile{Role: "gerente", EmpresaID: &companyID})
		if !errors.Is(err, ErrUnknownRole) {
			t.Fatalf("expected ErrUnknownRole, got %v", err)
		}
	})
}

func TestCoversCompany(t *testing.T) {
	global := Scope{Role: models.RoleRecepcao}
	if !global.CoversCompany("qualquer") {
		t.Fatal("global scope must cover every company")
	}

	scoped := Scope{Role: models.RoleParceiro, EmpresaID: "empresa-a"}
	if !scoped.CoversCompany("empresa-a") {
		t.Fatal("company scope must cover its own company")
	}
	if scoped.CoversCompany("empresa-b") {
		t.Fatal("company scope must not cover another company")
	}
}
