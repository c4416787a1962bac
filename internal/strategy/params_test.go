package strategy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() Parameters {
	return Parameters{
		BuyThresholdLow:     13,
		BuyPct:              50,
		SellThresholdHigh:   20,
		Leverage:            1,
		InitialCapital:      1000,
		SellFeeRate:         0.05,
		DailyHoldingFeeRate: 0.0002,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Parameters)
		wantErr string
	}{
		{"valid", func(p *Parameters) {}, ""},
		{"default set valid", func(p *Parameters) { *p = Default() }, ""},
		{"negative leverage", func(p *Parameters) { p.Leverage = -1 }, "leverage"},
		{"zero leverage ok", func(p *Parameters) { p.Leverage = 0 }, ""},
		{"zero capital", func(p *Parameters) { p.InitialCapital = 0 }, "initial_capital"},
		{"negative capital", func(p *Parameters) { p.InitialCapital = -5 }, "initial_capital"},
		{"sell fee at one", func(p *Parameters) { p.SellFeeRate = 1 }, "sell_fee_rate"},
		{"negative sell fee", func(p *Parameters) { p.SellFeeRate = -0.1 }, "sell_fee_rate"},
		{"holding fee at one", func(p *Parameters) { p.DailyHoldingFeeRate = 1 }, "daily_holding_fee_rate"},
		{"buy pct above hundred", func(p *Parameters) { p.BuyPct = 120 }, "buy_pct"},
		{"deep buy pct negative", func(p *Parameters) { p.BuyDeepPct = -2 }, "buy_deep_pct"},
		{"degenerate thresholds pass", func(p *Parameters) {
			p.BuyThresholdLow = 30
			p.SellThresholdHigh = 10
		}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestNormalized_Sentinels(t *testing.T) {
	p := validParams().Normalized()

	assert.True(t, math.IsInf(p.BuyThresholdDeep, -1), "unset deep buy tier should never trigger")
	assert.True(t, math.IsInf(p.SellThresholdTier1, 1), "unset sell tier 1 should never trigger")
	assert.True(t, math.IsInf(p.SellThresholdTier2, 1), "unset sell tier 2 should never trigger")
	assert.Equal(t, DefaultScaleInRatio, p.ScaleInRatio)
}

func TestNormalized_KeepsConfiguredTiers(t *testing.T) {
	p := Default().Normalized()

	assert.InDelta(t, 10.477527, p.BuyThresholdDeep, 1e-9)
	assert.InDelta(t, 22.163723, p.SellThresholdTier1, 1e-9)
	assert.InDelta(t, 23.466296, p.SellThresholdTier2, 1e-9)
}
