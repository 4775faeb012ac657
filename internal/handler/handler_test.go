package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inamhi-tic/helpdesk-service/internal/auth"
	"github.com/inamhi-tic/helpdesk-service/internal/handler"
	"github.com/inamhi-tic/helpdesk-service/internal/model"
	"github.com/inamhi-tic/helpdesk-service/internal/router"
	"github.com/inamhi-tic/helpdesk-service/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type env struct {
	handler http.Handler
	db      *gorm.DB
	tokens  *auth.TokenIssuer
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.CatalogArea{},
		&model.CatalogType{},
		&model.User{},
		&model.Ticket{},
	))
	require.NoError(t, db.Create(&model.CatalogArea{Name: "Gestión de Tecnologías (TIC)"}).Error)
	require.NoError(t, db.Create(&model.CatalogType{Name: "Problemas con impresoras"}).Error)

	tokens := auth.NewTokenIssuer("test-secret")
	h := router.New(
		handler.NewTicketHandler(service.NewTicketService(db)),
		handler.NewUserHandler(service.NewUserService(db), tokens),
		tokens,
	)
	return &env{handler: h, db: db, tokens: tokens}
}

// seedUser inserts a user with password "secreto123" and returns a session
// token for it.
func (e *env) seedUser(t *testing.T, name, email string, role model.Role) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secreto123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &model.User{FullName: name, Email: email, Password: string(hash), Role: role}
	require.NoError(t, e.db.Create(u).Error)
	token, err := e.tokens.Issue(u, time.Now())
	require.NoError(t, err)
	return token
}

func (e *env) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func createTicket(t *testing.T, e *env, name string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/tickets", "", gin.H{
		"nombre_completo":      name,
		"area":                 "Gestión de Tecnologías (TIC)",
		"tipo_requerimiento":   "Problemas con impresoras",
		"descripcion_problema": "La impresora del tercer piso no responde",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["ticket_id"].(string)
}
