package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studiobook/internal/httperr"
	"github.com/BruksfildServices01/studiobook/internal/httpresp"
	"github.com/BruksfildServices01/studiobook/internal/middleware"
	"github.com/BruksfildServices01/studiobook/internal/models"
	"github.com/BruksfildServices01/studiobook/internal/pagination"
	ucAppointment "github.com/BruksfildServices01/studiobook/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	update       *ucAppointment.UpdateAppointment
	cancel       *ucAppointment.CancelAppointment
	complete     *ucAppointment.CompleteAppointment
	remove       *ucAppointment.DeleteAppointment
	find         *ucAppointment.FindAppointments
	byDate       *ucAppointment.ListAppointmentsByDate
	byMonth      *ucAppointment.ListAppointmentsByMonth
	availability *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	remove *ucAppointment.DeleteAppointment,
	find *ucAppointment.FindAppointments,
	byDate *ucAppointment.ListAppointmentsByDate,
	byMonth *ucAppointment.ListAppointmentsByMonth,
	availability *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		update:       update,
		cancel:       cancel,
		complete:     complete,
		remove:       remove,
		find:         find,
		byDate:       byDate,
		byMonth:      byMonth,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Status is accepted for compatibility and ignored: new appointments
// always start PENDING.
type CreateAppointmentRequest struct {
	ServiceID string    `json:"service_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Status    string    `json:"status"`
}

type UpdateAppointmentRequest struct {
	ServiceID *string    `json:"service_id"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    *string    `json:"status"`
}

// ======================================================
// CREATE
// ======================================================

// Create books the authenticated client with the barber in the path.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "service_id, start_time and end_time are required (RFC3339)")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		OwnerID:    c.Param("owner_id"),
		ClientID:   middleware.UserID(c),
		BusinessID: c.Param("business_id"),
		ServiceID:  req.ServiceID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// UPDATE / CANCEL / COMPLETE / DELETE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "Invalid appointment payload")
		return
	}

	patch := models.AppointmentPatch{
		ServiceID: req.ServiceID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if req.Status != nil {
		st, err := models.ParseAppointmentStatus(*req.Status)
		if err != nil {
			invalidRequest(c, "Status must be PENDING, CONFIRMED, CANCELLED or COMPLETED")
			return
		}
		patch.Status = &st
	}

	ap, err := h.update.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	if ap == nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancel.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	ap, err := h.complete.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	httpresp.NoContent(c)
}

// ======================================================
// LIST
// ======================================================

// List pages through all appointments. page defaults to 1 and limit to
// 10; limit is capped at 100 to bound a single response.
func (h *AppointmentHandler) List(c *gin.Context) {
	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	page, err := h.find.All(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, page)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.find.ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if ap == nil {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found")
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) ListByOwner(c *gin.Context) {
	apps, err := h.find.ByOwner(c.Request.Context(), c.Param("owner_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, apps)
}

func (h *AppointmentHandler) ListByClient(c *gin.Context) {
	apps, err := h.find.ByClient(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, apps)
}

func (h *AppointmentHandler) ListByBusiness(c *gin.Context) {
	apps, err := h.find.ByBusiness(c.Request.Context(), c.Param("business_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, apps)
}

func (h *AppointmentHandler) ListByRange(c *gin.Context) {
	from, ok := parseTimeQuery(c, "from")
	if !ok {
		invalidRequest(c, "from must be an RFC3339 timestamp")
		return
	}
	to, ok := parseTimeQuery(c, "to")
	if !ok {
		invalidRequest(c, "to must be an RFC3339 timestamp")
		return
	}

	apps, err := h.find.ByDateRange(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, apps)
}

// ======================================================
// AGENDA
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		invalidRequest(c, "date is required (YYYY-MM-DD)")
		return
	}

	list, err := h.byDate.Execute(c.Request.Context(), c.Param("business_id"), date)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		invalidRequest(c, "year and month are required")
		return
	}

	list, err := h.byMonth.Execute(c.Request.Context(), c.Param("business_id"), year, month)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"year":         year,
		"month":        month,
		"appointments": list,
	})
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	serviceID := c.Query("service_id")
	date := c.Query("date")
	if serviceID == "" || date == "" {
		invalidRequest(c, "service_id and date are required")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), c.Param("owner_id"), serviceID, date)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, slots)
}
