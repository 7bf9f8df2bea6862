package raydiumv4

import (
	"pool-sniffer-sol/internal/consts"
	"pool-sniffer-sol/internal/logic/eventparser/common"
)

// Raydium AMM v4 Initialize2 指令（Bitquery 解码后的账户名）：
//
// #4  - amm        // 池子地址
// #8  - coinMint   // base mint
// #9  - pcMint     // quote mint，通常为 WSOL
//
// 参数：nonce, openTime, initPcAmount, initCoinAmount
// 来源, https://github.com/raydium-io/raydium-amm/blob/master/program/src/instruction.rs
const Initialize2 = "initialize2"

// RegisterConfig 注册 RaydiumV4 建池字段映射
func RegisterConfig(r *common.Registry) {
	r.Register(common.ProtocolConfig{
		Dex:             consts.DexRaydiumV4,
		ID:              consts.SubscriptionRaydium,
		ProgramAddress:  consts.RaydiumV4ProgramStr,
		Method:          Initialize2,
		TokenAAccount:   "pcMint",
		TokenBAccount:   "coinMint",
		PoolAccount:     "amm",
		TokenAAmountArg: "initPcAmount",
		TokenBAmountArg: "initCoinAmount",
		TokenAKey:       "pc_mint",
		TokenBKey:       "coin_mint",
	})
}
