package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"referral-app-server/internal/models"
)

func TestCreateCheckup(t *testing.T) {
	t.Run("empty exam selection yields zero items", func(t *testing.T) {
		db := newTestDB(t)
		empresa := seedCompany(t, db, "Empresa X", models.CompanyCheckup)

		gin.SetMode(gin.TestMode)
		h := &CheckupHandler{DB: db}
		r := gin.New()
		r.Use(asScope(models.RoleCheckup, empresa.ID))
		r.POST("/checkups", h.CreateCheckup)

		w := doJSON(t, r, http.MethodPost, "/checkups", map[string]any{
			"nome":      "Checkup Basico",
			"descricao": "Bateria anual",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var checkup models.Checkup
		decodeData(t, w, &checkup)
		if checkup.EmpresaID != empresa.ID {
			t.Fatalf("checkup not scoped to company: %q", checkup.EmpresaID)
		}

		var items int64
		db.Model(&models.CheckupItem{}).Count(&items)
		if items != 0 {
			t.Fatalf("expected zero items, got %d", items)
		}
	})

	t.Run("one item per selected exam", func(t *testing.T) {
		db := newTestDB(t)
		empresa := seedCompany(t, db, "Empresa X", models.CompanyCheckup)
		exame1 := seedExam(t, db)
		exame2 := models.Exame{Nome: "Glicemia"}
		if err := db.Create(&exame2).Error; err != nil {
			t.Fatalf("seed exam: %v", err)
		}

		gin.SetMode(gin.TestMode)
		h := &CheckupHandler{DB: db}
		rr := gin.New()
		rr.Use(asScope(models.RoleCheckup, empresa.ID))
		rr.POST("/checkups", h.CreateCheckup)

		w := doJSON(t, rr, http.MethodPost, "/checkups", map[string]any{
			"nome":     "Checkup Completo",
			"exameIds": []string{exame1.ID, exame2.ID},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var items int64
		db.Model(&models.CheckupItem{}).Count(&items)
		if items != 2 {
			t.Fatalf("expected 2 items, got %d", items)
		}
	})
}

func TestEnrollPatient(t *testing.T) {
	t.Run("enrollment starts pendente", func(t *testing.T) {
		db := newTestDB(t)
		empresa := seedCompany(t, db, "Empresa X", models.CompanyCheckup)
		checkup := models.Checkup{Nome: "Checkup Basico", EmpresaID: empresa.ID}
		if err := db.Create(&checkup).Error; err != nil {
			t.Fatalf("seed checkup: %v", err)
		}

		gin.SetMode(gin.TestMode)
		h := &CheckupHandler{DB: db}
		r := gin.New()
		r.Use(asScope(models.RoleCheckup, empresa.ID))
		r.POST("/checkups/:id/pacientes", h.EnrollPatient)

		w := doJSON(t, r, http.MethodPost, "/checkups/"+checkup.ID+"/pacientes", map[string]any{
			"nome":       "Ana Souza",
			"cpf":        "99988877766",
			"nascimento": "1990-10-01",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var vinculo models.CheckupPaciente
		decodeData(t, w, &vinculo)
		if vinculo.Status != models.CheckupPendente {
			t.Fatalf("expected pendente, got %q", vinculo.Status)
		}

		// re-enrolling with the same CPF reuses the patient row
		w = doJSON(t, r, http.MethodPost, "/checkups/"+checkup.ID+"/pacientes", map[string]any{
			"nome":       "Ana Souza",
			"cpf":        "99988877766",
			"nascimento": "1990-10-01",
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var pacientes, vinculos int64
		db.Model(&models.Paciente{}).Count(&pacientes)
		db.Model(&models.CheckupPaciente{}).Count(&vinculos)
		if pacientes != 1 {
			t.Fatalf("expected 1 patient, got %d", pacientes)
		}
		if vinculos != 2 {
			t.Fatalf("expected 2 enrollments, got %d", vinculos)
		}
	})

	t.Run("checkup of another company is forbidden", func(t *testing.T) {
		db := newTestDB(t)
		empresaA := seedCompany(t, db, "Empresa A", models.CompanyCheckup)
		empresaB := seedCompany(t, db, "Empresa B", models.CompanyCheckup)
		checkupA := models.Checkup{Nome: "Checkup A", EmpresaID: empresaA.ID}
		if err := db.Create(&checkupA).Error; err != nil {
			t.Fatalf("seed checkup: %v", err)
		}

		gin.SetMode(gin.TestMode)
		h := &CheckupHandler{DB: db}
		r := gin.New()
		r.Use(asScope(models.RoleCheckup, empresaB.ID))
		r.POST("/checkups/:id/pacientes", h.EnrollPatient)

		w := doJSON(t, r, http.MethodPost, "/checkups/"+checkupA.ID+"/pacientes", map[string]any{
			"nome":       "Ana Souza",
			"cpf":        "99988877766",
			"nascimento": "1990-10-01",
		})
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestGetCheckupsScoping(t *testing.T) {
	db := newTestDB(t)
	empresaA := seedCompany(t, db, "Empresa A", models.CompanyCheckup)
	empresaB := seedCompany(t, db, "Empresa B", models.CompanyCheckup)
	for _, e := range []models.Empresa{empresaA, empresaB} {
		checkup := models.Checkup{Nome: "Checkup " + e.Nome, EmpresaID: e.ID}
		if err := db.Create(&checkup).Error; err != nil {
			t.Fatalf("seed checkup: %v", err)
		}
	}

	gin.SetMode(gin.TestMode)
	h := &CheckupHandler{DB: db}
	r := gin.New()
	r.Use(asScope(models.RoleCheckup, empresaA.ID))
	r.GET("/checkups", h.GetCheckups)

	w := doJSON(t, r, http.MethodGet, "/checkups", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var checkups []models.Checkup
	decodeData(t, w, &checkups)
	if len(checkups) != 1 {
		t.Fatalf("expected only own company's checkups, got %d", len(checkups))
	}
	if checkups[0].EmpresaID != empresaA.ID {
		t.Fatalf("leaked checkup from company %q", checkups[0].EmpresaID)
	}
}
