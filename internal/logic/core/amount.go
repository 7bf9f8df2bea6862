package core

import (
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

var (
	billion  = decimal.New(1, 9)
	million  = decimal.New(1, 6)
	thousand = decimal.New(1, 3)
)

// FormatTokenAmount 将链上原始整数金额按精度换算为展示字符串：
//   - >= 1e9 : "1.23B"
//   - >= 1e6 : "1.23M"
//   - >= 1e3 : "1.23K"
//   - 其它   : 保留 6 位小数
//
// 非 u64 整数（含负数、小数、空串）原样返回。纯函数，不修改入参。
func FormatTokenAmount(raw string, decimals uint8) string {
	amount, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return raw
	}

	value := decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0).Shift(-int32(decimals))
	switch {
	case value.GreaterThanOrEqual(billion):
		return value.Div(billion).StringFixed(2) + "B"
	case value.GreaterThanOrEqual(million):
		return value.Div(million).StringFixed(2) + "M"
	case value.GreaterThanOrEqual(thousand):
		return value.Div(thousand).StringFixed(2) + "K"
	default:
		return value.StringFixed(6)
	}
}

// NativeUnits 将 native 腿的原始 lamports 金额换算为 SOL（32 位浮点，仅用于分档）
//
// 金额缺失或不可解析时返回 0，由调用方决定是否告警。
func NativeUnits(raw *string) (float32, bool) {
	if raw == nil {
		return 0, false
	}
	lamports, err := strconv.ParseUint(*raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return float32(float64(lamports) / 1e9), true
}
