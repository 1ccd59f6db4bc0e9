package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studiobook/internal/auth"
	"github.com/BruksfildServices01/studiobook/internal/dto"
	"github.com/BruksfildServices01/studiobook/internal/httpresp"
	"github.com/BruksfildServices01/studiobook/internal/middleware"
	"github.com/BruksfildServices01/studiobook/internal/models"
	ucUser "github.com/BruksfildServices01/studiobook/internal/usecase/user"
)

type AuthHandler struct {
	users  *ucUser.Service
	tokens *auth.TokenIssuer
}

func NewAuthHandler(users *ucUser.Service, tokens *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Role     string  `json:"role"`
	CpfCnpj  *string `json:"cpf_cnpj"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "name, email and password are required")
		return
	}

	u, err := h.users.Register(c.Request.Context(), ucUser.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.UserRole(req.Role),
		CpfCnpj:  req.CpfCnpj,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.respond(c, u, true)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "email and password are required")
		return
	}

	u, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	h.respond(c, u, false)
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *AuthHandler) respond(c *gin.Context, u *models.User, created bool) {
	token, err := h.tokens.Issue(u)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := dto.AuthResponse{User: u, Token: token}
	if created {
		httpresp.Created(c, resp)
		return
	}
	httpresp.OK(c, resp)
}
