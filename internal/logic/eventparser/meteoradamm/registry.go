package meteoradamm

import (
	"pool-sniffer-sol/internal/consts"
	"pool-sniffer-sol/internal/logic/eventparser/common"
)

// Meteora Dynamic AMM 无许可常数乘积池（带 config）
const InitializePermissionlessPoolWithConfig2 = "initializePermissionlessConstantProductPoolWithConfig2"

// RegisterConfig 注册 Meteora 建池字段映射
func RegisterConfig(r *common.Registry) {
	r.Register(common.ProtocolConfig{
		Dex:             consts.DexMeteoraDAMM,
		ID:              consts.SubscriptionMeteora,
		ProgramAddress:  consts.MeteoraDAMMProgramStr,
		Method:          InitializePermissionlessPoolWithConfig2,
		TokenAAccount:   "tokenAMint",
		TokenBAccount:   "tokenBMint",
		PoolAccount:     "pool",
		TokenAAmountArg: "tokenAAmount",
		TokenBAmountArg: "tokenBAmount",
		TokenAKey:       "token_a_mint",
		TokenBKey:       "token_b_mint",
	})
}
