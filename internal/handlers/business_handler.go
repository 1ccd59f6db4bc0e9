package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studiobook/internal/httpresp"
	"github.com/BruksfildServices01/studiobook/internal/middleware"
	"github.com/BruksfildServices01/studiobook/internal/pagination"
	ucBusiness "github.com/BruksfildServices01/studiobook/internal/usecase/business"
)

type BusinessHandler struct {
	businesses *ucBusiness.Service
}

func NewBusinessHandler(businesses *ucBusiness.Service) *BusinessHandler {
	return &BusinessHandler{businesses: businesses}
}

// --------- Requests ---------

type BusinessRequest struct {
	Name                  *string `json:"name"`
	Address               *string `json:"address"`
	Description           *string `json:"description"`
	Phone                 *string `json:"phone"`
	Cnpj                  *string `json:"cnpj"`
	MunicipalRegistration *string `json:"municipal_registration"`
	Timezone              *string `json:"timezone"`
	IsActive              *bool   `json:"is_active"`
}

func (r BusinessRequest) input() ucBusiness.Input {
	return ucBusiness.Input{
		Name:                  r.Name,
		Address:               r.Address,
		Description:           r.Description,
		Phone:                 r.Phone,
		Cnpj:                  r.Cnpj,
		MunicipalRegistration: r.MunicipalRegistration,
		Timezone:              r.Timezone,
		IsActive:              r.IsActive,
	}
}

type BusinessHourRequest struct {
	Weekday     int    `json:"weekday" binding:"min=0,max=6"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
	IsOpen      bool   `json:"is_open"`
}

type BusinessHoursRequest struct {
	Days []BusinessHourRequest `json:"days" binding:"required,dive"`
}

// --------- Handlers ---------

func (h *BusinessHandler) Create(c *gin.Context) {
	var req BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid business payload")
		return
	}

	b, err := h.businesses.Create(c.Request.Context(), middleware.UserID(c), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, b)
}

// List pages through businesses (page/limit, limit capped at 100).
func (h *BusinessHandler) List(c *gin.Context) {
	page, err := h.businesses.List(c.Request.Context(), pagination.Parse(c.Query("page"), c.Query("limit")))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, page)
}

func (h *BusinessHandler) Get(c *gin.Context) {
	b, err := h.businesses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BusinessHandler) Update(c *gin.Context) {
	var req BusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid business payload")
		return
	}

	b, err := h.businesses.Update(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, b)
}

func (h *BusinessHandler) Delete(c *gin.Context) {
	if err := h.businesses.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// --------- Hours ---------

func (h *BusinessHandler) GetHours(c *gin.Context) {
	hours, err := h.businesses.Hours(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, hours)
}

func (h *BusinessHandler) SetHours(c *gin.Context) {
	var req BusinessHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "days is required")
		return
	}

	in := make([]ucBusiness.HourInput, 0, len(req.Days))
	for _, d := range req.Days {
		in = append(in, ucBusiness.HourInput{
			Weekday:     d.Weekday,
			OpeningTime: d.OpeningTime,
			ClosingTime: d.ClosingTime,
			IsOpen:      d.IsOpen,
		})
	}

	hours, err := h.businesses.SetHours(c.Request.Context(), middleware.UserID(c), c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, hours)
}

// --------- Cover ---------

func (h *BusinessHandler) UploadCover(c *gin.Context) {
	data, ok := readImage(c)
	if !ok {
		return
	}

	b, err := h.businesses.UploadCover(c.Request.Context(), middleware.UserID(c), c.Param("id"), data)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, b)
}
