package consts

const (
	DexRaydiumV4   = iota + 1 // 1
	DexPumpSwap               // 2
	DexMeteoraDAMM            // 3
)

// DexNames 协议展示名，会直接出现在下游事件的 dex_name 字段
var DexNames = []string{
	"Unknown",  // 0 (保留)
	"Raydium",  // 1
	"PumpSwap", // 2
	"Meteora",  // 3
}

func DexName(dex int) string {
	if dex >= 1 && dex < len(DexNames) {
		return DexNames[dex]
	}
	return DexNames[0] // Unknown
}

// 订阅标识：单协议订阅直接按名字查配置，combined 按 method 扫描
const (
	SubscriptionRaydium  = "raydium"
	SubscriptionPumpSwap = "pumpswap"
	SubscriptionMeteora  = "meteora"
	SubscriptionCombined = "combined"
)
