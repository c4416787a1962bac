package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Determinism(t *testing.T) {
	obs := observations(20, 10, 25, 15, 9, 30)

	first, err := Run(baseParams(), obs, NoopListener{})
	require.NoError(t, err)
	second, err := Run(baseParams(), obs, NoopListener{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRun_InvalidParameters(t *testing.T) {
	p := baseParams()
	p.InitialCapital = 0

	_, err := Run(p, observations(20, 10, 25), NoopListener{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid strategy parameters")
}

func TestRun_AnalyticsWiredThrough(t *testing.T) {
	res, err := Run(baseParams(), observations(20, 10, 25), NoopListener{})
	require.NoError(t, err)

	require.Len(t, res.Days, 3)
	assert.InDelta(t, 1687.5, res.Report.FinalEquity, 1e-9)
	assert.InDelta(t, 0.6875, res.Report.TotalReturn, 1e-9)
	assert.InDelta(t, 0, res.MaxDrawdown, 1e-9)
	assert.InDelta(t, 0, res.RuinProbability, 1e-9)
	assert.Equal(t, 3, res.Report.TradingDays)
}

func TestRun_EmptySeries(t *testing.T) {
	res, err := Run(baseParams(), nil, NoopListener{})
	require.NoError(t, err)
	assert.Empty(t, res.Days)
	assert.Zero(t, res.MaxDrawdown)
	assert.Zero(t, res.RuinProbability)
}
