package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inamhi-tic/helpdesk-service/internal/errs"
	"github.com/inamhi-tic/helpdesk-service/internal/model"
	"github.com/inamhi-tic/helpdesk-service/internal/service"
	"github.com/inamhi-tic/helpdesk-service/internal/ticketcode"
)

type TicketHandler struct {
	svc *service.TicketService
}

func NewTicketHandler(svc *service.TicketService) *TicketHandler {
	return &TicketHandler{svc: svc}
}

type createTicketRequest struct {
	RequesterName string `json:"nombre_completo"`
	Position      string `json:"cargo"`
	Email         string `json:"correo_institucional"`
	Phone         string `json:"telefono_extension"`
	Area          string `json:"area"`
	RequestType   string `json:"tipo_requerimiento"`
	OtherDetail   string `json:"detalle_otro_requerimiento"`
	Description   string `json:"descripcion_problema"`
	Observations  string `json:"observaciones_adicionales"`
}

// Create files a ticket from the public form and answers with the derived
// display code, the only identifier the requester ever sees.
func (h *TicketHandler) Create(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), service.CreateTicketInput{
		RequesterName: req.RequesterName,
		Position:      req.Position,
		Email:         req.Email,
		Phone:         req.Phone,
		Area:          req.Area,
		RequestType:   req.RequestType,
		OtherDetail:   req.OtherDetail,
		Description:   req.Description,
		Observations:  req.Observations,
	})
	if err != nil {
		if errs.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		slog.Error("create ticket", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create ticket"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "ticket created",
		"ticket_id": ticketcode.Encode(t.ID, t.CreatedAt),
	})
}

// Search resolves a tracking term (display code or requester-name fragment)
// to a single ticket view.
func (h *TicketHandler) Search(c *gin.Context) {
	view, err := h.svc.Search(c.Request.Context(), c.Query("term"))
	if err != nil {
		switch {
		case errs.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": "search term required"})
		case errors.Is(err, errs.ErrTicketNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		default:
			slog.Error("search ticket", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search tickets"})
		}
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *TicketHandler) List(c *gin.Context) {
	views, err := h.svc.List(c.Request.Context())
	if err != nil {
		slog.Error("list tickets", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tickets"})
		return
	}
	c.JSON(http.StatusOK, views)
}

type updateTicketRequest struct {
	Status     model.TicketStatus `json:"estado" binding:"required"`
	Technician *string            `json:"tecnico,omitempty"`
}

// Update changes status and, when the field is present, the assignment. The
// path carries the display code; it is decoded before any store access.
func (h *TicketHandler) Update(c *gin.Context) {
	id, err := ticketcode.Decode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed ticket code"})
		return
	}
	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := h.svc.Update(c.Request.Context(), id, req.Status, req.Technician); err != nil {
		switch {
		case errs.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, errs.ErrTicketNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		default:
			slog.Error("update ticket", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ticket"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ticket updated"})
}

func (h *TicketHandler) Delete(c *gin.Context) {
	id, err := ticketcode.Decode(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed ticket code"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrTicketNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
			return
		}
		slog.Error("delete ticket", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete ticket"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ticket deleted"})
}
