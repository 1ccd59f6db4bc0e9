package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studiobook/internal/httpresp"
	"github.com/BruksfildServices01/studiobook/internal/middleware"
	"github.com/BruksfildServices01/studiobook/internal/pagination"
	ucCatalog "github.com/BruksfildServices01/studiobook/internal/usecase/catalog"
)

type ServiceHandler struct {
	catalog *ucCatalog.Service
}

func NewServiceHandler(catalog *ucCatalog.Service) *ServiceHandler {
	return &ServiceHandler{catalog: catalog}
}

// --------- Requests ---------

type ServiceRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"duration_minutes"`
	Category        *string  `json:"category"`
	IsActive        *bool    `json:"is_active"`
}

func (r ServiceRequest) input() ucCatalog.Input {
	return ucCatalog.Input{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		Category:        r.Category,
		IsActive:        r.IsActive,
	}
}

// --------- Handlers ---------

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid service payload")
		return
	}

	svc, err := h.catalog.Create(c.Request.Context(), middleware.UserID(c), c.Param("business_id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, svc)
}

// List pages through services (page/limit, limit capped at 100).
func (h *ServiceHandler) List(c *gin.Context) {
	page, err := h.catalog.List(c.Request.Context(), pagination.Parse(c.Query("page"), c.Query("limit")))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, page)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	svc, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) ListByBusiness(c *gin.Context) {
	list, err := h.catalog.ByBusiness(c.Request.Context(), c.Param("business_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid service payload")
		return
	}

	svc, err := h.catalog.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.catalog.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	httpresp.NoContent(c)
}
