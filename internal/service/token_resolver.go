package service

import (
	"context"

	"pool-sniffer-sol/internal/cache"
	"pool-sniffer-sol/internal/consts"
	"pool-sniffer-sol/internal/logic/core"
	"pool-sniffer-sol/internal/metrics"
	"pool-sniffer-sol/pkg/logger"
)

// TokenAnalyzer 外部风控服务
type TokenAnalyzer interface {
	AnalyzeToken(ctx context.Context, address string) (*core.TokenView, error)
}

// TokenResolver 风控查询的降级边界：WSOL 直接合成，其余查缓存 / 外部接口，失败返回保守视图
type TokenResolver struct {
	analyzer TokenAnalyzer
	cache    cache.TokenCache // 可为 nil
}

func NewTokenResolver(analyzer TokenAnalyzer, tokenCache cache.TokenCache) *TokenResolver {
	return &TokenResolver{analyzer: analyzer, cache: tokenCache}
}

func (r *TokenResolver) Resolve(ctx context.Context, address string) core.TokenView {
	if address == consts.WSOLMintStr {
		metrics.EnrichmentResults.WithLabelValues("native").Inc()
		return core.NativeTokenView(address)
	}

	if r.cache != nil {
		if view, ok := r.cache.Get(ctx, address); ok {
			metrics.EnrichmentResults.WithLabelValues("cache_hit").Inc()
			return view
		}
	}

	view, err := r.analyzer.AnalyzeToken(ctx, address)
	if err != nil {
		kind := ErrorKind(err)
		metrics.EnrichmentResults.WithLabelValues(kind).Inc()
		logger.Warnf("[TokenResolver:Resolve] %s 风控查询失败, 使用降级视图: %v", address, err)
		return core.FallbackTokenView(address, FailureNote(err))
	}
	metrics.EnrichmentResults.WithLabelValues("ok").Inc()

	logger.Debugf("[TokenResolver:Resolve] %s (%s) score=%d risk=%s liquidity=%.2f holders=%d top10=%.2f%% risks=%v",
		view.TokenName, view.TokenSymbol, view.Score, view.RiskLevel, view.LiquidityTotal,
		view.HolderCount, view.Top10Percentage, view.AuditRisks)
	if view.IsHoneypot {
		logger.Warnf("[TokenResolver:Resolve] HONEYPOT ALERT: %s (%s) shows signs of being a honeypot", address, view.TokenSymbol)
	}
	if view.RiskLevel == core.RiskCritical {
		logger.Warnf("[TokenResolver:Resolve] CRITICAL RISK: %s (%s) score=%d", address, view.TokenSymbol, view.Score)
	}

	if r.cache != nil {
		r.cache.Set(ctx, address, *view)
	}
	return *view
}
