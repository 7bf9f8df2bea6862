package consts

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	//  Programs
	SystemProgramStr = "11111111111111111111111111111111"

	// 原生 SOL 的 wrapped 形式，池子里的 "native 腿"
	WSOLMintStr = "So11111111111111111111111111111111111111112"

	// DEX: Raydium AMM v4（initialize2 建池）
	RaydiumV4ProgramStr = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"

	// DEX: PumpSwap（pump.fun AMM，create_pool 建池）
	PumpSwapProgramStr = "pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA"

	// DEX: Meteora Dynamic AMM（permissionless constant product pool）
	MeteoraDAMMProgramStr = "Eo7WjKq67rjJQSZxS6z3YkapzY3eMj6Xy8X5EQVn5UaB"
)
