package eventparser

import (
	"pool-sniffer-sol/internal/logic/eventparser/common"
	"pool-sniffer-sol/internal/logic/eventparser/meteoradamm"
	"pool-sniffer-sol/internal/logic/eventparser/pumpfunamm"
	"pool-sniffer-sol/internal/logic/eventparser/raydiumv4"
)

// NewDefaultRegistry 注册所有已支持的协议。
// 注册顺序即 combined 订阅的匹配优先级：Raydium → PumpSwap → Meteora。
func NewDefaultRegistry() *common.Registry {
	r := common.NewRegistry()
	raydiumv4.RegisterConfig(r)
	pumpfunamm.RegisterConfig(r)
	meteoradamm.RegisterConfig(r)
	return r
}
