package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studiobook/internal/httpresp"
	"github.com/BruksfildServices01/studiobook/internal/middleware"
	ucUser "github.com/BruksfildServices01/studiobook/internal/usecase/user"
)

type UserHandler struct {
	users *ucUser.Service
}

func NewUserHandler(users *ucUser.Service) *UserHandler {
	return &UserHandler{users: users}
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	CpfCnpj  *string `json:"cpf_cnpj"`
}

type CreateBarberRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) ListByBusiness(c *gin.Context) {
	users, err := h.users.ListByBusiness(c.Request.Context(), c.Param("business_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, users)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid user payload")
		return
	}

	u, err := h.users.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), ucUser.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		CpfCnpj:  req.CpfCnpj,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) CreateBarber(c *gin.Context) {
	var req CreateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "name, email and password are required")
		return
	}

	u, err := h.users.CreateBarber(c.Request.Context(), middleware.UserID(c), ucUser.BarberInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, u)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	data, ok := readImage(c)
	if !ok {
		return
	}

	u, err := h.users.UploadAvatar(c.Request.Context(), middleware.UserID(c), c.Param("id"), data)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, u)
}
