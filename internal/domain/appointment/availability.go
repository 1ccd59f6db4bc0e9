package appointment

import (
	"time"

	"github.com/BruksfildServices01/studiobook/internal/models"
)

type TimeSlot struct {
	Start time.Time
	End   time.Time
}

// FreeSlots steps through [open, close) in slot-sized increments and
// keeps every slot no existing appointment blocks.
func FreeSlots(open, close time.Time, slot time.Duration, existing []models.Appointment) []TimeSlot {
	slots := []TimeSlot{}
	if slot <= 0 {
		return slots
	}

	for cur := open; !cur.Add(slot).After(close); cur = cur.Add(slot) {
		end := cur.Add(slot)

		free := true
		for _, ap := range existing {
			if Blocks(ap, cur, end) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, TimeSlot{Start: cur, End: end})
		}
	}

	return slots
}
