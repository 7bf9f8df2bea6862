package bitquery

import (
	"pool-sniffer-sol/internal/logic/core"
	"pool-sniffer-sol/internal/logic/dispatcher"
)

// NewRunnerFactory 每个订阅一个 Connector，共享同一个归一化器
func NewRunnerFactory(cfg Config, normalizer FrameNormalizer) dispatcher.RunnerFactory {
	return func(sub core.Subscription, out core.Publisher) (dispatcher.Runner, error) {
		c, err := NewConnector(cfg, sub, normalizer, out)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}
