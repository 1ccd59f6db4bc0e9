package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/studiobook/internal/audit"
	"github.com/BruksfildServices01/studiobook/internal/httperr"
	"github.com/BruksfildServices01/studiobook/internal/httpresp"
	"github.com/BruksfildServices01/studiobook/internal/middleware"
	"github.com/BruksfildServices01/studiobook/internal/pagination"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
}

func NewAuditLogsHandler(logs *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List returns the audit trail of the caller's business. from and to
// take a date (YYYY-MM-DD, to inclusive) or an RFC3339 timestamp.
// Results are paged; limit is capped at 100.
func (h *AuditLogsHandler) List(c *gin.Context) {
	businessID := middleware.BusinessID(c)
	if businessID == "" {
		httperr.Forbidden(c, "no_business", "You must belong to a business to read audit logs")
		return
	}

	f := audit.Filter{
		BusinessID: businessID,
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
	}

	if raw := c.Query("from"); raw != "" {
		from, ok := parseBound(raw, false)
		if !ok {
			invalidRequest(c, "Invalid from")
			return
		}
		f.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, ok := parseBound(raw, true)
		if !ok {
			invalidRequest(c, "Invalid to")
			return
		}
		f.To = &to
	}

	p := pagination.Parse(c.Query("page"), c.Query("limit"))

	logs, total, err := h.logs.List(c.Request.Context(), f, p.Limit, p.Offset())
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, pagination.NewResult(logs, p, total))
}

// parseBound reads a date or timestamp. A bare date used as an upper
// bound covers the whole day.
func parseBound(raw string, upper bool) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	if upper {
		t = t.Add(24 * time.Hour)
	}
	return t, true
}
