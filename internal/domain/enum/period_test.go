package enum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriod_Multiplier(t *testing.T) {
	assert.InDelta(t, 1, PeriodDaily.Multiplier(), 1e-9)
	assert.InDelta(t, 7, PeriodWeekly.Multiplier(), 1e-9)
	assert.InDelta(t, 30, PeriodMonthly.Multiplier(), 1e-9)
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("weekly")
	require.NoError(t, err)
	assert.Equal(t, PeriodWeekly, p)

	_, err = ParsePeriod("yearly")
	require.Error(t, err)
}
