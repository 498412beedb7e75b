package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestParseTimeOfDay(t *testing.T) {
	t.Run("valid time", func(t *testing.T) {
		tod, err := ParseTimeOfDay("09:30")
		require.NoError(t, err)
		assert.Equal(t, TimeOfDay{Hour: 9, Minute: 30}, tod)
		assert.Equal(t, "09:30", tod.String())
	})

	t.Run("midnight", func(t *testing.T) {
		tod, err := ParseTimeOfDay("00:00")
		require.NoError(t, err)
		assert.Equal(t, TimeOfDay{}, tod)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		for _, input := range []string{"24:00", "12:60", "9am", "12", ""} {
			_, err := ParseTimeOfDay(input)
			assert.Error(t, err, "input %q should not parse", input)
		}
	})
}

func TestTimeOfDayAddHours(t *testing.T) {
	assert.Equal(t, mustTime(t, "10:15"), mustTime(t, "09:15").AddHours(1))
	// Wraps within the same day rather than spilling into the next date.
	assert.Equal(t, mustTime(t, "00:30"), mustTime(t, "23:30").AddHours(1))
}

func TestTimeRangeOverlaps(t *testing.T) {
	r := func(start, end string) TimeRange {
		return TimeRange{Start: mustTime(t, start), End: mustTime(t, end)}
	}

	t.Run("partial overlap", func(t *testing.T) {
		assert.True(t, r("09:00", "10:00").Overlaps(r("09:30", "10:30")))
	})

	t.Run("containment", func(t *testing.T) {
		assert.True(t, r("09:00", "12:00").Overlaps(r("10:00", "11:00")))
	})

	t.Run("touching endpoints do not conflict", func(t *testing.T) {
		assert.False(t, r("09:00", "10:00").Overlaps(r("10:00", "11:00")))
		assert.False(t, r("10:00", "11:00").Overlaps(r("09:00", "10:00")))
	})

	t.Run("disjoint", func(t *testing.T) {
		assert.False(t, r("08:00", "09:00").Overlaps(r("14:00", "15:00")))
	})

	t.Run("symmetry", func(t *testing.T) {
		pairs := [][2]TimeRange{
			{r("09:00", "10:00"), r("09:30", "10:30")},
			{r("09:00", "10:00"), r("10:00", "11:00")},
			{r("09:00", "12:00"), r("10:00", "11:00")},
			{r("08:00", "09:00"), r("14:00", "15:00")},
		}
		for _, p := range pairs {
			assert.Equal(t, p[0].Overlaps(p[1]), p[1].Overlaps(p[0]),
				"overlaps(%s, %s) must be symmetric", p[0], p[1])
		}
	})
}

func TestSameDate(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, SameDate(day, day.Add(9*time.Hour)))
	assert.False(t, SameDate(day, day.AddDate(0, 0, 1)))
	assert.False(t, SameDate(day, day.AddDate(1, 0, 0)))
}
