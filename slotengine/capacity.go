package slotengine

import (
	"slotbook/models"
)

// DeriveMaxSlots applies the capacity-derivation rule to an admin-supplied
// status and full-day capacity. The same rule governs single-date upserts,
// bulk range configuration and recurring rules:
//
//	closed        -> 0, whatever the input
//	half_day_*    -> floor(input / 2)
//	open          -> input unchanged
//
// A missing or non-positive input falls back to the default full-day figure
// before derivation.
func DeriveMaxSlots(status string, input int) int {
	if input <= 0 {
		input = models.DefaultMaxSlots
	}
	switch status {
	case models.SlotStatusClosed:
		return 0
	case models.SlotStatusHalfDayPre, models.SlotStatusHalfDayPost:
		return input / 2
	default:
		return input
	}
}
