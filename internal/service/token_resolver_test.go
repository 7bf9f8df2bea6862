package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pool-sniffer-sol/internal/cache"
	"pool-sniffer-sol/internal/consts"
	"pool-sniffer-sol/internal/logic/core"
)

type stubAnalyzer struct {
	view  *core.TokenView
	err   error
	calls int
}

func (s *stubAnalyzer) AnalyzeToken(_ context.Context, address string) (*core.TokenView, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	v := *s.view
	v.Address = address
	return &v, nil
}

func TestTokenResolver_NativeSkipsAnalyzer(t *testing.T) {
	a := &stubAnalyzer{err: errors.New("must not be called")}
	view := NewTokenResolver(a, nil).Resolve(context.Background(), consts.WSOLMintStr)

	assert.Zero(t, a.calls)
	assert.Equal(t, "WSOL", view.TokenSymbol)
	assert.Equal(t, uint32(100), view.Score)
	assert.Equal(t, core.RiskLow, view.RiskLevel)
	assert.False(t, view.IsHoneypot)
}

func TestTokenResolver_FallbackOnError(t *testing.T) {
	a := &stubAnalyzer{err: &AnalyzeError{Kind: KindMalformed, Err: errors.New("missing tokenData")}}
	view := NewTokenResolver(a, nil).Resolve(context.Background(), testMint)

	assert.Equal(t, testMint, view.Address)
	assert.Equal(t, core.RiskCritical, view.RiskLevel)
	assert.True(t, view.IsHoneypot)
	assert.Equal(t, uint8(9), view.Decimals)
	assert.Zero(t, view.MarketCap)
	assert.Equal(t, []string{"Unable to analyze - malformed response"}, view.AuditRisks)
}

func TestTokenResolver_CachesSuccessOnly(t *testing.T) {
	tc := cache.NewMemoryTokenCache(time.Minute, 10)
	a := &stubAnalyzer{view: &core.TokenView{TokenSymbol: "PTEST", Score: 90, RiskLevel: core.RiskLow}}
	r := NewTokenResolver(a, tc)

	first := r.Resolve(context.Background(), testMint)
	second := r.Resolve(context.Background(), testMint)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, first, second)

	failing := &stubAnalyzer{err: &AnalyzeError{Kind: KindNetwork, Err: errors.New("timeout")}}
	r = NewTokenResolver(failing, tc)
	const other = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	r.Resolve(context.Background(), other)
	r.Resolve(context.Background(), other)
	assert.Equal(t, 2, failing.calls, "失败结果不缓存")
	_, ok := tc.Get(context.Background(), other)
	require.False(t, ok)
}

func TestTokenResolver_DisabledAnalyzer(t *testing.T) {
	view := NewTokenResolver(DisabledAnalyzer{}, nil).Resolve(context.Background(), testMint)
	assert.Equal(t, []string{"Unable to analyze - API key not configured"}, view.AuditRisks)
	assert.Equal(t, core.RiskCritical, view.RiskLevel)
}
