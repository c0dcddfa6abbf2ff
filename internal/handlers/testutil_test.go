package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"referral-app-server/internal/access"
	"referral-app-server/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// asScope injects an already-resolved session scope, standing in for the
// auth and scope middleware chain.
func asScope(role models.Role, empresaID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile := &models.UserProfile{Role: role}
		if empresaID != "" {
			profile.EmpresaID = &empresaID
		}
		scope, err := access.Resolve(profile)
		if err != nil {
			c.AbortWithStatus(500)
			return
		}
		c.Set("userID", "test-user")
		c.Set("profile", profile)
		c.Set("scope", scope)
	}
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func seedCompany(t *testing.T, db *gorm.DB, nome string, tipo models.CompanyKind) models.Empresa {
	t.Helper()

	empresa := models.Empresa{Nome: nome, Tipo: tipo}
	if err := db.Create(&empresa).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return empresa
}

func seedDoctor(t *testing.T, db *gorm.DB, empresaID string) models.Medico {
	t.Helper()

	medico := models.Medico{Nome: "Dr. Teste", CRM: "12345", Especialidade: "Cardiologia", EmpresaID: empresaID}
	if err := db.Create(&medico).Error; err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	return medico
}

func seedExam(t *testing.T, db *gorm.DB) models.Exame {
	t.Helper()

	exame := models.Exame{Nome: "Hemograma", Descricao: "Hemograma completo"}
	if err := db.Create(&exame).Error; err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	return exame
}
