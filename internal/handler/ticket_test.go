package handler_test

import (
	"net/http"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamhi-tic/helpdesk-service/internal/model"
)

func TestCreateTicketReturnsDisplayCode(t *testing.T) {
	e := newEnv(t)
	code := createTicket(t, e, "Ana Ruiz")

	year := strconv.Itoa(time.Now().Year())
	assert.Regexp(t, regexp.MustCompile(`^SSTI-`+year+`-0001-ST$`), code)
}

func TestCreateTicketMissingField(t *testing.T) {
	e := newEnv(t)
	w := e.do(t, http.MethodPost, "/api/v1/tickets", "", gin.H{
		"nombre_completo": "Ana Ruiz",
		"area":            "Gestión de Tecnologías (TIC)",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchTicket(t *testing.T) {
	e := newEnv(t)
	code := createTicket(t, e, "Ana Ruiz")

	w := e.do(t, http.MethodGet, "/api/v1/tickets/search?term=Ana", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, code, body["id"])
	assert.Equal(t, "Pendiente", body["estado"])
	assert.Equal(t, "Sin Asignar", body["tecnico_asignado"])

	w = e.do(t, http.MethodGet, "/api/v1/tickets/search?term="+code, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, code, decode(t, w)["id"])
}

func TestSearchTicketFailures(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodGet, "/api/v1/tickets/search", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodGet, "/api/v1/tickets/search?term=nadie", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListTicketsRequiresToken(t *testing.T) {
	e := newEnv(t)
	createTicket(t, e, "Ana Ruiz")

	w := e.do(t, http.MethodGet, "/api/v1/tickets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := e.seedUser(t, "Carlos Vera", "c@inamhi.gob.ec", model.RoleTechnician)
	w = e.do(t, http.MethodGet, "/api/v1/tickets", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ana Ruiz")
}

func TestUpdateTicket(t *testing.T) {
	e := newEnv(t)
	code := createTicket(t, e, "Ana Ruiz")
	token := e.seedUser(t, "Carlos Vera", "c@inamhi.gob.ec", model.RoleTechnician)

	// Self-assignment from the pool: status and technician together.
	w := e.do(t, http.MethodPut, "/api/v1/tickets/"+code, token, gin.H{
		"estado":  "En Proceso",
		"tecnico": "Carlos Vera",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = e.do(t, http.MethodGet, "/api/v1/tickets/search?term="+code, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "En Proceso", body["estado"])
	assert.Equal(t, "Carlos Vera", body["tecnico_asignado"])

	// Status-only update keeps the assignment.
	w = e.do(t, http.MethodPut, "/api/v1/tickets/"+code, token, gin.H{"estado": "Resuelto"})
	require.Equal(t, http.StatusOK, w.Code)
	body = decode(t, e.do(t, http.MethodGet, "/api/v1/tickets/search?term="+code, "", nil))
	assert.Equal(t, "Resuelto", body["estado"])
	assert.Equal(t, "Carlos Vera", body["tecnico_asignado"])
}

func TestUpdateTicketFailures(t *testing.T) {
	e := newEnv(t)
	code := createTicket(t, e, "Ana Ruiz")
	token := e.seedUser(t, "Carlos Vera", "c@inamhi.gob.ec", model.RoleTechnician)

	w := e.do(t, http.MethodPut, "/api/v1/tickets/"+code, "", gin.H{"estado": "Resuelto"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = e.do(t, http.MethodPut, "/api/v1/tickets/no-es-un-codigo", token, gin.H{"estado": "Resuelto"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = e.do(t, http.MethodPut, "/api/v1/tickets/SSTI-2020-9999-ST", token, gin.H{"estado": "Resuelto"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, http.MethodPut, "/api/v1/tickets/"+code, token, gin.H{"tecnico": "Carlos Vera"})
	assert.Equal(t, http.StatusBadRequest, w.Code, "estado is required")
}

func TestDeleteTicketAdminOnly(t *testing.T) {
	e := newEnv(t)
	code := createTicket(t, e, "Ana Ruiz")
	tech := e.seedUser(t, "Carlos Vera", "c@inamhi.gob.ec", model.RoleTechnician)
	admin := e.seedUser(t, "Administrador Principal", "admin@inamhi.gob.ec", model.RoleAdmin)

	w := e.do(t, http.MethodDelete, "/api/v1/tickets/"+code, tech, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = e.do(t, http.MethodDelete, "/api/v1/tickets/"+code, admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A second delete of the same code reports not found.
	w = e.do(t, http.MethodDelete, "/api/v1/tickets/"+code, admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = e.do(t, http.MethodDelete, "/api/v1/tickets/sin-numero", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
