package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandWeekly(t *testing.T) {
	dates, err := Expand(date(2024, time.January, 1), CadenceWeekly, 3)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 8),
		date(2024, time.January, 15),
	}, dates)
}

func TestExpandBiweekly(t *testing.T) {
	dates, err := Expand(date(2024, time.June, 3), CadenceBiweekly, 3)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{
		date(2024, time.June, 3),
		date(2024, time.June, 17),
		date(2024, time.July, 1),
	}, dates)
}

func TestExpandMonthlyClampsToEndOfMonth(t *testing.T) {
	t.Run("leap february", func(t *testing.T) {
		dates, err := Expand(date(2024, time.January, 31), CadenceMonthly, 2)
		require.NoError(t, err)
		assert.Equal(t, date(2024, time.February, 29), dates[1])
	})

	t.Run("non-leap february", func(t *testing.T) {
		dates, err := Expand(date(2023, time.January, 31), CadenceMonthly, 2)
		require.NoError(t, err)
		assert.Equal(t, date(2023, time.February, 28), dates[1])
	})

	t.Run("clamp does not stick to later months", func(t *testing.T) {
		dates, err := Expand(date(2024, time.January, 31), CadenceMonthly, 4)
		require.NoError(t, err)
		assert.Equal(t, []time.Time{
			date(2024, time.January, 31),
			date(2024, time.February, 29),
			date(2024, time.March, 31),
			date(2024, time.April, 30),
		}, dates)
	})
}

func TestExpandInvariants(t *testing.T) {
	anchor := date(2024, time.May, 15)
	for _, cadence := range []Cadence{CadenceWeekly, CadenceBiweekly, CadenceMonthly} {
		for _, count := range []int{1, 5, 12} {
			dates, err := Expand(anchor, cadence, count)
			require.NoError(t, err)
			require.Len(t, dates, count, "cadence %s count %d", cadence, count)
			assert.True(t, dates[0].Equal(anchor), "first occurrence must be the anchor")
			for i := 1; i < len(dates); i++ {
				assert.True(t, dates[i-1].Before(dates[i]),
					"occurrences must be strictly increasing (%s, count %d)", cadence, count)
			}
		}
	}
}

func TestExpandRejectsBadInput(t *testing.T) {
	anchor := date(2024, time.May, 15)

	_, err := Expand(anchor, CadenceWeekly, 0)
	assert.Error(t, err)

	_, err = Expand(anchor, CadenceWeekly, MaxOccurrences+1)
	assert.Error(t, err)

	_, err = Expand(anchor, Cadence("daily"), 3)
	assert.Error(t, err)
}

func TestParseCadence(t *testing.T) {
	for _, valid := range []string{"weekly", "biweekly", "monthly"} {
		cadence, err := ParseCadence(valid)
		require.NoError(t, err)
		assert.Equal(t, Cadence(valid), cadence)
	}

	_, err := ParseCadence("yearly")
	assert.Error(t, err)
}
