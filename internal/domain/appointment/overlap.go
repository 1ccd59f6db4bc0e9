package appointment

import (
	"time"

	"github.com/BruksfildServices01/studiobook/internal/models"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any instant. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return bStart.Before(aEnd) && bEnd.After(aStart)
}

// Blocks reports whether an existing appointment occupies the window.
// Cancelled appointments never block.
func Blocks(existing models.Appointment, start, end time.Time) bool {
	if existing.Status == StatusCancelled {
		return false
	}
	return Overlaps(start, end, existing.StartTime, existing.EndTime)
}
