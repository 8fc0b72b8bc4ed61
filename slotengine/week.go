package slotengine

import (
	"time"
)

// WeekBounds returns the Monday and Sunday of the ISO week containing date,
// both inclusive, as YYYY-MM-DD strings. The service deliberately uses the
// ISO Monday-start convention everywhere the weekly booking limit is
// evaluated: a Sunday booking belongs to the week that started the previous
// Monday, not to the following week.
func WeekBounds(date string) (string, string, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", "", err
	}
	// time.Weekday numbers Sunday as 0; shift so Monday is 0.
	offset := (int(d.Weekday()) + 6) % 7
	monday := d.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday.Format(DateLayout), sunday.Format(DateLayout), nil
}
