package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/c5sim/coverage-sim-go/internal/models"
	"github.com/c5sim/coverage-sim-go/internal/service"
	"github.com/c5sim/coverage-sim-go/pkg/response"
)

// AuthHandler handles operator registration and login
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/usuarios/registro
func (h *AuthHandler) Register(c *gin.Context) {
	var in models.UserCreate
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid registration payload")
		return
	}

	user, err := h.service.Register(in)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.BadRequest(c, "Email is already registered")
			return
		}
		response.InternalError(c, "Failed to register user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in models.LoginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid login payload")
		return
	}

	user, token, err := h.service.Login(in)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			response.Unauthorized(c, "Incorrect email or password")
			return
		}
		response.InternalError(c, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":    true,
		"token": token,
		"usuario": gin.H{
			"id":               user.ID,
			"nombre":           user.Name,
			"primer_apellido":  user.FirstSurname,
			"segundo_apellido": user.SecondSurname,
			"email":            user.Email,
		},
	})
}

// Logout handles POST /api/auth/logout. Tokens are stateless; the client
// just drops its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": false})
}
