package core

import (
	"math"

	"pool-sniffer-sol/pkg/logger"
)

// Coin 按 native 腿流动性（SOL）划分的四档
type Coin string

const (
	ImmediateCoin Coin = "ImmediateCoin" // Tier 1: < 120
	ShortTermCoin Coin = "ShortTermCoin" // Tier 2: [120, 200)
	GenuineCoin   Coin = "GenuineCoin"   // Tier 3: [200, 4000]
	MegaCoin      Coin = "MegaCoin"      // Tier 4: > 4000
)

// Tier 返回档位序号（1~4）
func (c Coin) Tier() int {
	switch c {
	case ShortTermCoin:
		return 2
	case GenuineCoin:
		return 3
	case MegaCoin:
		return 4
	default:
		return 1
	}
}

func (c Coin) Label() string {
	switch c {
	case ShortTermCoin:
		return "Short-Term"
	case GenuineCoin:
		return "Genuine"
	case MegaCoin:
		return "Mega"
	default:
		return "Immediate"
	}
}

// ClassifyCoin 根据 native 腿的 SOL 数量分档；NaN、Inf 归入 Tier 1 并告警
func ClassifyCoin(liquidity float32) Coin {
	switch {
	case math.IsInf(float64(liquidity), 0):
		logger.Warnf("[Classify] non-finite liquidity value %v, fallback to %s", liquidity, ImmediateCoin)
		return ImmediateCoin
	case liquidity < 120:
		return ImmediateCoin
	case liquidity >= 120 && liquidity < 200:
		return ShortTermCoin
	case liquidity >= 200 && liquidity <= 4000:
		return GenuineCoin
	case liquidity > 4000:
		return MegaCoin
	default:
		logger.Warnf("[Classify] unhandled liquidity value %v, fallback to %s", liquidity, ImmediateCoin)
		return ImmediateCoin
	}
}
