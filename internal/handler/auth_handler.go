package handler

import (
	"net/http"

	"hospital-backoffice/internal/middleware"
	"hospital-backoffice/internal/service"
	"hospital-backoffice/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Service  string `json:"service" binding:"required"`
}

// Login authenticates a staff member and returns an access token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Name, req.Password, req.Service)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, response)
}

// Logout revokes the access token used for this request
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextToken)
	if token == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Logged out successfully")
}

// Me returns the authenticated staff member
func (h *AuthHandler) Me(c *gin.Context) {
	staff, err := h.authService.Me(c.Request.Context(), middleware.StaffID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, staff)
}
