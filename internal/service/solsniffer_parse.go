package service

import (
	"errors"
	"fmt"
	"strconv"

	"pool-sniffer-sol/internal/logic/core"
	"pool-sniffer-sol/internal/utils"
)

const (
	honeypotThreshold     = 3
	top10HoneypotPercent  = 80.0
	highIndicatorHoneypot = 3
)

// ParseTokenAnalysis 解析 SolSniffer v2 响应。
//
// tokenData / tokenInfo / liquidityList / ownersList 缺失视为响应损坏，
// 其余字段缺失时取默认值。
func ParseTokenAnalysis(body []byte) (*core.TokenView, error) {
	root, err := utils.DecodeJSON(body)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	tokenData, ok := utils.Field(root, "tokenData")
	if !ok {
		return nil, errors.New("missing tokenData in response")
	}
	tokenInfo, ok := utils.Field(root, "tokenInfo")
	if !ok {
		return nil, errors.New("missing tokenInfo in response")
	}

	liquidity, err := totalLiquidity(tokenData)
	if err != nil {
		return nil, err
	}
	top10, holders, err := holderMetrics(tokenData)
	if err != nil {
		return nil, err
	}

	view := &core.TokenView{
		Address:         stringOr(tokenData, "", "address"),
		TokenName:       stringOr(tokenData, "Unknown", "tokenName"),
		TokenSymbol:     stringOr(tokenData, "UNKNOWN", "tokenSymbol"),
		Decimals:        9,
		MarketCap:       floatOr(tokenData, "marketCap"),
		Price:           floatOr(tokenInfo, "price"),
		SupplyAmount:    floatOr(tokenInfo, "supplyAmount"),
		LiquidityTotal:  liquidity,
		Top10Percentage: top10,
		HolderCount:     holders,
		DeployTime:      stringOr(tokenData, "", "deployTime"),
		AuditRisks:      auditRisks(tokenData),
	}
	if d, ok := utils.Uint(tokenData, "decimals"); ok {
		view.Decimals = uint8(d)
	}
	if s, ok := utils.Uint(tokenData, "score"); ok {
		view.Score = uint32(s)
	}
	view.RiskLevel = core.RiskLevelFromScore(view.Score)
	view.MintDisabled, _ = utils.Bool(tokenData, "auditRisk", "mintDisabled")
	view.FreezeDisabled, _ = utils.Bool(tokenData, "auditRisk", "freezeDisabled")
	view.LpBurned, _ = utils.Bool(tokenData, "auditRisk", "lpBurned")
	view.IsHoneypot = detectHoneypot(tokenData, top10)

	return view, nil
}

// totalLiquidity liquidityList 形如 [{"raydium": {"amount": 12.3}}, ...]，累加所有平台
func totalLiquidity(tokenData any) (float64, error) {
	list, ok := utils.Array(tokenData, "liquidityList")
	if !ok {
		return 0, errors.New("missing or invalid liquidityList")
	}
	var total float64
	for _, item := range list {
		platforms, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, platform := range platforms {
			if amount, ok := utils.Float(platform, "amount"); ok {
				total += amount
			}
		}
	}
	return total, nil
}

// holderMetrics 持有人数 = ownersList 长度；前 10 占比只累加可解析的 percentage 字符串
func holderMetrics(tokenData any) (float64, uint32, error) {
	owners, ok := utils.Array(tokenData, "ownersList")
	if !ok {
		return 0, 0, errors.New("missing or invalid ownersList")
	}
	var top10 float64
	for i := 0; i < len(owners) && i < 10; i++ {
		s, ok := utils.String(owners[i], "percentage")
		if !ok {
			continue
		}
		if p, err := strconv.ParseFloat(s, 64); err == nil {
			top10 += p
		}
	}
	return top10, uint32(len(owners)), nil
}

func auditRisks(tokenData any) []string {
	risks := make([]string, 0, 2)
	if n, ok := utils.Uint(tokenData, "indicatorData", "high", "count"); ok && n > 0 {
		risks = append(risks, fmt.Sprintf("High risk indicators: %d", n))
	}
	if n, ok := utils.Uint(tokenData, "indicatorData", "moderate", "count"); ok && n > 0 {
		risks = append(risks, fmt.Sprintf("Moderate risk indicators: %d", n))
	}
	return risks
}

// detectHoneypot 启发式：以下条件命中 3 条及以上视为貔貅
//   - mint / freeze 权限未关闭、LP 未销毁（仅在接口返回该字段时计入）
//   - 前 10 持仓 > 80%
//   - 高风险指标 >= 3
func detectHoneypot(tokenData any, top10 float64) bool {
	indicators := 0
	for _, key := range []string{"mintDisabled", "freezeDisabled", "lpBurned"} {
		if v, ok := utils.Bool(tokenData, "auditRisk", key); ok && !v {
			indicators++
		}
	}
	if top10 > top10HoneypotPercent {
		indicators++
	}
	if n, ok := utils.Uint(tokenData, "indicatorData", "high", "count"); ok && n >= highIndicatorHoneypot {
		indicators++
	}
	return indicators >= honeypotThreshold
}

func stringOr(v any, def string, keys ...string) string {
	if s, ok := utils.String(v, keys...); ok {
		return s
	}
	return def
}

func floatOr(v any, keys ...string) float64 {
	f, _ := utils.Float(v, keys...)
	return f
}
