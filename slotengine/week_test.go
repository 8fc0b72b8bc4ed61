package slotengine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekBoundsMidWeek(t *testing.T) {
	// 2025-03-12 is a Wednesday.
	start, end, err := WeekBounds("2025-03-12")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", start)
	assert.Equal(t, "2025-03-16", end)
}

func TestWeekBoundsMondayIsItsOwnStart(t *testing.T) {
	start, end, err := WeekBounds("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", start)
	assert.Equal(t, "2025-03-16", end)
}

func TestWeekBoundsSundayBelongsToPrecedingMonday(t *testing.T) {
	// ISO convention: Sunday closes the week, it does not open the next one.
	start, end, err := WeekBounds("2025-03-16")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", start)
	assert.Equal(t, "2025-03-16", end)
}

func TestWeekBoundsAcrossMonthBoundary(t *testing.T) {
	// 2025-04-01 is a Tuesday; its week starts in March.
	start, end, err := WeekBounds("2025-04-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-31", start)
	assert.Equal(t, "2025-04-06", end)
}

func TestWeekBoundsRejectsBadDate(t *testing.T) {
	_, _, err := WeekBounds("12/03/2025")
	assert.Error(t, err)
}
