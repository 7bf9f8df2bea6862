package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskLevelFromScore(t *testing.T) {
	cases := map[uint32]RiskLevel{
		0:   RiskCritical,
		25:  RiskCritical,
		26:  RiskHigh,
		50:  RiskHigh,
		51:  RiskMedium,
		75:  RiskMedium,
		76:  RiskLow,
		100: RiskLow,
		101: RiskMedium,
	}
	for score, want := range cases {
		assert.Equal(t, want, RiskLevelFromScore(score), "score=%d", score)
	}
}

func TestFallbackViews(t *testing.T) {
	native := NativeTokenView("So11111111111111111111111111111111111111112")
	assert.Equal(t, "WSOL", native.TokenSymbol)
	assert.Equal(t, uint8(9), native.Decimals)
	assert.Equal(t, RiskLow, native.RiskLevel)
	assert.Equal(t, uint32(100), native.Score)
	assert.False(t, native.IsHoneypot)
	assert.Equal(t, []string{"No risk"}, native.AuditRisks)

	failed := FallbackTokenView("Mint111", "Unable to analyze - network error")
	assert.Equal(t, "Mint111", failed.Address)
	assert.Equal(t, RiskCritical, failed.RiskLevel)
	assert.True(t, failed.IsHoneypot)
	assert.Equal(t, uint8(9), failed.Decimals)
	assert.Zero(t, failed.MarketCap)
	assert.Zero(t, failed.LiquidityTotal)
	assert.Equal(t, []string{"Unable to analyze - network error"}, failed.AuditRisks)
}
