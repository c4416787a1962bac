package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VixSentinel/internal/model"
)

func observations(values ...float64) []model.Observation {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	obs := make([]model.Observation, len(values))
	for i, v := range values {
		obs[i] = model.Observation{Date: start.AddDate(0, 0, i), Value: v}
	}
	return obs
}

func TestSynthesize_Empty(t *testing.T) {
	assert.Nil(t, Synthesize(nil, 1, 100))
	assert.Nil(t, Synthesize([]model.Observation{}, 2, 100))
}

func TestSynthesize_StartPrice(t *testing.T) {
	out := Synthesize(observations(20, 10), 1, 250)
	require.Len(t, out, 2)
	assert.Equal(t, 250.0, out[0].LeveredPrice)
}

func TestSynthesize_TracksPercentMoves(t *testing.T) {
	// 20 -> 10 is -50%, 10 -> 25 is +150%
	out := SynthesizeDefault(observations(20, 10, 25), 1)
	require.Len(t, out, 3)
	assert.InDelta(t, 100.0, out[0].LeveredPrice, 1e-9)
	assert.InDelta(t, 50.0, out[1].LeveredPrice, 1e-9)
	assert.InDelta(t, 125.0, out[2].LeveredPrice, 1e-9)
}

func TestSynthesize_LeverageAmplifies(t *testing.T) {
	// +10% underlying move at 3x leverage is a +30% levered move.
	out := SynthesizeDefault(observations(10, 11), 3)
	require.Len(t, out, 2)
	assert.InDelta(t, 130.0, out[1].LeveredPrice, 1e-9)
}

func TestSynthesize_ZeroValueCarriesForward(t *testing.T) {
	out := SynthesizeDefault(observations(15, 12, 0, 14), 1)
	require.Len(t, out, 4)
	// 15 -> 12 is -20%
	assert.InDelta(t, 80.0, out[1].LeveredPrice, 1e-9)
	// 12 -> 0 is -100%
	assert.InDelta(t, 0.0, out[2].LeveredPrice, 1e-9)
	// previous value is zero: carry the levered price forward unchanged
	assert.InDelta(t, out[2].LeveredPrice, out[3].LeveredPrice, 1e-9)
}

func TestSynthesize_ZeroLeverageIsFlat(t *testing.T) {
	out := SynthesizeDefault(observations(15, 30, 5, 60, 12), 0)
	for _, pt := range out {
		assert.Equal(t, DefaultStartPrice, pt.LeveredPrice)
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	obs := observations(18, 14, 11, 22, 26, 19)
	assert.Equal(t, SynthesizeDefault(obs, 2), SynthesizeDefault(obs, 2))
}
