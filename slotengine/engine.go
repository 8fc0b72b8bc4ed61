// Package slotengine holds the pure slot-availability and capacity logic:
// effective-configuration resolution, time-slot tables, per-slot capacity
// splits, week bounds and date-range expansion. Nothing in here touches the
// database, so every rule is unit-testable in isolation.
package slotengine

import (
	"slotbook/models"
)

// DateLayout is the canonical calendar-day format used across the service.
const DateLayout = "2006-01-02"

// Time-slot label tables per effective status. The open day spans a morning
// and an afternoon block in 30-minute steps; half days restrict to one block.
var (
	openSlots = []string{
		"09:00", "09:30", "10:00", "10:30", "11:00",
		"11:30", "12:00", "15:00", "15:30", "16:00",
	}
	halfDayPreSlots  = []string{"09:00", "09:30", "10:00", "10:30", "11:00"}
	halfDayPostSlots = []string{"15:00", "15:30", "16:00", "16:30", "17:00"}
)

// EffectiveConfig is the status/capacity actually applied to a date after
// falling back to defaults when no explicit configuration exists.
type EffectiveConfig struct {
	Status   string
	MaxSlots int
	Reason   string
}

// SlotStatus is the availability breakdown for a single time-slot label.
type SlotStatus struct {
	Time           string `json:"time"`
	BookingCount   int    `json:"bookingCount"`
	MaxCapacity    int    `json:"maxCapacity"`
	IsAvailable    bool   `json:"isAvailable"`
	IsFullyBooked  bool   `json:"isFullyBooked"`
	AvailableSpots int    `json:"availableSpots"`
}

// DaySchedule is the full availability answer for one date.
type DaySchedule struct {
	Date             string       `json:"date"`
	Status           string       `json:"status"`
	Reason           *string      `json:"reason"`
	SlotStatus       []SlotStatus `json:"slotStatus"`
	AvailableSlots   []string     `json:"availableSlots"`
	FullyBookedSlots []string     `json:"fullyBookedSlots"`
	AllSlots         []string     `json:"allSlots"`
	TotalBookings    int          `json:"totalBookings"`
	MaxBookings      int          `json:"maxBookings"`
}

// ResolveEffectiveConfig maps a configuration row (or its absence) to the
// effective status and capacity for a date. A nil row means the date was
// never configured: open, default capacity, no reason.
func ResolveEffectiveConfig(cfg *models.SlotConfiguration) EffectiveConfig {
	if cfg == nil {
		return EffectiveConfig{Status: models.SlotStatusOpen, MaxSlots: models.DefaultMaxSlots}
	}
	status := cfg.Status
	if status == "" {
		status = models.SlotStatusOpen
	}
	return EffectiveConfig{Status: status, MaxSlots: cfg.MaxSlots, Reason: cfg.Reason}
}

// TimeSlotsForStatus returns the ordered label set bookable under a status.
// Closed days have no labels.
func TimeSlotsForStatus(status string) []string {
	var src []string
	switch status {
	case models.SlotStatusHalfDayPre:
		src = halfDayPreSlots
	case models.SlotStatusHalfDayPost:
		src = halfDayPostSlots
	case models.SlotStatusClosed:
		return []string{}
	default:
		src = openSlots
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// MaxPerSlot evenly splits a day's capacity across its labels. The split is
// floor division, so max_slots below the label count degenerates to zero
// capacity per slot (always fully booked).
func MaxPerSlot(maxSlots, numLabels int) int {
	if numLabels <= 0 {
		return 0
	}
	return maxSlots / numLabels
}

// NormalizeTimeSlot truncates an HH:MM:SS time to its HH:MM label.
func NormalizeTimeSlot(t string) string {
	if len(t) > 5 {
		return t[:5]
	}
	return t
}

// BuildDaySchedule computes the full availability breakdown for a date from
// its effective configuration and the per-label counts of non-cancelled
// bookings. Counts keyed by HH:MM:SS times are folded into their HH:MM label.
// A closed date is terminal: empty slot lists and zeroed totals regardless
// of configured capacity.
func BuildDaySchedule(date string, eff EffectiveConfig, counts map[string]int) DaySchedule {
	sched := DaySchedule{
		Date:             date,
		Status:           eff.Status,
		SlotStatus:       []SlotStatus{},
		AvailableSlots:   []string{},
		FullyBookedSlots: []string{},
		AllSlots:         []string{},
	}
	if eff.Reason != "" {
		reason := eff.Reason
		sched.Reason = &reason
	}

	if eff.Status == models.SlotStatusClosed {
		return sched
	}

	labels := TimeSlotsForStatus(eff.Status)
	perLabel := make(map[string]int, len(counts))
	for t, n := range counts {
		perLabel[NormalizeTimeSlot(t)] += n
	}

	maxPerSlot := MaxPerSlot(eff.MaxSlots, len(labels))
	total := 0
	for _, label := range labels {
		count := perLabel[label]
		total += count
		available := count < maxPerSlot
		spots := maxPerSlot - count
		if spots < 0 {
			spots = 0
		}
		sched.SlotStatus = append(sched.SlotStatus, SlotStatus{
			Time:           label,
			BookingCount:   count,
			MaxCapacity:    maxPerSlot,
			IsAvailable:    available,
			IsFullyBooked:  !available,
			AvailableSpots: spots,
		})
		if available {
			sched.AvailableSlots = append(sched.AvailableSlots, label)
		} else {
			sched.FullyBookedSlots = append(sched.FullyBookedSlots, label)
		}
	}

	sched.AllSlots = labels
	sched.TotalBookings = total
	sched.MaxBookings = eff.MaxSlots
	return sched
}

// IsBookableSlot reports whether label belongs to the label set of a status.
func IsBookableSlot(status, label string) bool {
	for _, l := range TimeSlotsForStatus(status) {
		if l == label {
			return true
		}
	}
	return false
}
