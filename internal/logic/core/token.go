package core

import "pool-sniffer-sol/internal/consts"

// RiskLevel 风险等级，序列化为 Low / Medium / High / Critical
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// RiskLevelFromScore 0~25 Critical，26~50 High，51~75 Medium，76~100 Low，越界按 Medium
func RiskLevelFromScore(score uint32) RiskLevel {
	switch {
	case score <= 25:
		return RiskCritical
	case score <= 50:
		return RiskHigh
	case score <= 75:
		return RiskMedium
	case score <= 100:
		return RiskLow
	default:
		return RiskMedium
	}
}

// TokenView 单个 mint 的元数据及风控快照
type TokenView struct {
	Address         string    `json:"address"`
	TokenName       string    `json:"token_name"`
	TokenSymbol     string    `json:"token_symbol"`
	Decimals        uint8     `json:"decimals"`
	MarketCap       float64   `json:"market_cap"`
	Score           uint32    `json:"score"` // 0~100，越高越安全
	RiskLevel       RiskLevel `json:"risk_level"`
	Price           float64   `json:"price"`
	SupplyAmount    float64   `json:"supply_amount"`
	LiquidityTotal  float64   `json:"liquidity_total"`   // 各平台流动性之和
	Top10Percentage float64   `json:"top_10_percentage"` // 前 10 持仓占比（%）
	HolderCount     uint32    `json:"holder_count"`
	IsHoneypot      bool      `json:"is_honeypot"`
	AuditRisks      []string  `json:"audit_risks"`
	DeployTime      string    `json:"deploy_time"`
	MintDisabled    bool      `json:"mint_disabled"`
	FreezeDisabled  bool      `json:"freeze_disabled"`
	LpBurned        bool      `json:"lp_burned"`
}

// NativeTokenView WSOL 固定视图：完全可信、零风险，不走外部接口
func NativeTokenView(address string) TokenView {
	return TokenView{
		Address:     address,
		TokenName:   "Wrapped SOL",
		TokenSymbol: "WSOL",
		Decimals:    consts.NativeDecimals,
		Score:       100,
		RiskLevel:   RiskLow,
		IsHoneypot:  false,
		AuditRisks:  []string{"No risk"},
		DeployTime:  "Unknown",
	}
}

// FallbackTokenView 风控接口失败时的保守视图：最高风险 + 疑似貔貅，note 描述失败类别
func FallbackTokenView(address, note string) TokenView {
	return TokenView{
		Address:     address,
		TokenName:   "Unknown",
		TokenSymbol: "UNKNOWN",
		Decimals:    consts.DefaultTokenDecimals,
		Score:       0,
		RiskLevel:   RiskCritical,
		IsHoneypot:  true,
		AuditRisks:  []string{note},
		DeployTime:  "Unknown",
	}
}
