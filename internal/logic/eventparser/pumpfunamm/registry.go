package pumpfunamm

import (
	"pool-sniffer-sol/internal/consts"
	"pool-sniffer-sol/internal/logic/eventparser/common"
)

// PumpSwap（pump.fun AMM）create_pool 指令：
//
// #0  - pool
// #3  - base_mint
// #4  - quote_mint
//
// 参数：index, base_amount_in, quote_amount_in, coin_creator
const CreatePool = "create_pool"

// RegisterConfig 注册 PumpSwap 建池字段映射
func RegisterConfig(r *common.Registry) {
	r.Register(common.ProtocolConfig{
		Dex:             consts.DexPumpSwap,
		ID:              consts.SubscriptionPumpSwap,
		ProgramAddress:  consts.PumpSwapProgramStr,
		Method:          CreatePool,
		TokenAAccount:   "base_mint",
		TokenBAccount:   "quote_mint",
		PoolAccount:     "pool",
		TokenAAmountArg: "base_amount_in",
		TokenBAmountArg: "quote_amount_in",
		TokenAKey:       "base_mint",
		TokenBKey:       "quote_mint",
	})
}
