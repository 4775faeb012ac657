package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/inamhi-tic/helpdesk-service/internal/auth"
	"github.com/inamhi-tic/helpdesk-service/internal/errs"
	"github.com/inamhi-tic/helpdesk-service/internal/model"
	"github.com/inamhi-tic/helpdesk-service/internal/service"
)

type UserHandler struct {
	svc    *service.UserService
	tokens *auth.TokenIssuer
}

func NewUserHandler(svc *service.UserService, tokens *auth.TokenIssuer) *UserHandler {
	return &UserHandler{svc: svc, tokens: tokens}
}

type registerUserRequest struct {
	FullName string `json:"nombre_completo"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"rol"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	u, err := h.svc.Register(c.Request.Context(), service.RegisterUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		switch {
		case errs.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, errs.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		default:
			slog.Error("register user", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user created", "user_id": u.ID})
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	if err != nil {
		slog.Error("list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

type updateUserRequest struct {
	FullName string `json:"nombre_completo"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"rol"`
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	u, err := h.svc.Update(c.Request.Context(), id, service.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		switch {
		case errs.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, errs.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, errs.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		default:
			slog.Error("update user", "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update user"})
		}
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("delete user", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"rol"`
}

// Login authenticates the dashboard user and issues the session token. The
// requested role gates which dashboard is asking: Administrador for the admin
// panel, Tecnico for the technician board (satisfied by Tecnico or Pasante).
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Email == "" || req.Password == "" || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, password and rol are required"})
		return
	}
	requested := model.Role(req.Role)
	if requested != model.RoleAdmin && requested != model.RoleTechnician {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rol must be Administrador or Tecnico"})
		return
	}
	u, err := h.svc.Login(c.Request.Context(), req.Email, req.Password, requested)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBadCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		case errors.Is(err, errs.ErrRoleNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{"error": "user lacks the requested role"})
		default:
			slog.Error("login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		}
		return
	}
	token, err := h.tokens.Issue(u, time.Now())
	if err != nil {
		slog.Error("issue token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "login ok",
		"token":   token,
		"user": gin.H{
			"id":    u.ID,
			"name":  u.FullName,
			"role":  u.Role,
			"email": u.Email,
		},
	})
}

// Technicians feeds the assignment dropdowns.
func (h *UserHandler) Technicians(c *gin.Context) {
	names, err := h.svc.Technicians(c.Request.Context())
	if err != nil {
		slog.Error("list technicians", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list technicians"})
		return
	}
	c.JSON(http.StatusOK, names)
}
