package core

// PoolCreationEvent 归一化后的建池事件，所有协议的原始指令都转换成这一种结构
type PoolCreationEvent struct {
	DexName              string           `json:"dex_name"`              // 协议展示名，如 Raydium
	PoolAddress          *string          `json:"pool_address"`          // 池子账户，未识别到时为 null
	TokenA               TokenView        `json:"token_a"`               // 配置中 token A 对应的 mint
	TokenB               TokenView        `json:"token_b"`               // 配置中 token B 对应的 mint
	Timestamp            string           `json:"timestamp"`             // 区块时间（ISO-8601，原样透传）
	TransactionSignature string           `json:"transaction_signature"` // 交易签名
	LiquidityAmounts     LiquidityAmounts `json:"liquidity_amounts"`
	CoinType             Coin             `json:"coin_type"` // 按 native 腿流动性分档
}

// LiquidityAmounts 原始整数金额（字符串）及按精度格式化后的展示值
//
// 参数缺失时对应字段为 nil，不视为错误；格式化字段与原始字段一一对应。
type LiquidityAmounts struct {
	TokenAAmount *string `json:"token_a_amount"`
	TokenBAmount *string `json:"token_b_amount"`
	SolAmount    *string `json:"sol_amount"`

	TokenAAmountFormatted *string `json:"token_a_amount_formatted"`
	TokenBAmountFormatted *string `json:"token_b_amount_formatted"`
	SolAmountFormatted    *string `json:"sol_amount_formatted"`
}

// NewLiquidityAmounts 根据两腿精度生成格式化字段，native 腿固定 9 位精度
func NewLiquidityAmounts(tokenA, tokenB, native *string, decimalsA, decimalsB, nativeDecimals uint8) LiquidityAmounts {
	return LiquidityAmounts{
		TokenAAmount:          tokenA,
		TokenBAmount:          tokenB,
		SolAmount:             native,
		TokenAAmountFormatted: formatOptional(tokenA, decimalsA),
		TokenBAmountFormatted: formatOptional(tokenB, decimalsB),
		SolAmountFormatted:    formatOptional(native, nativeDecimals),
	}
}

func formatOptional(raw *string, decimals uint8) *string {
	if raw == nil {
		return nil
	}
	formatted := FormatTokenAmount(*raw, decimals)
	return &formatted
}
