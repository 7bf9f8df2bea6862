package eventparser

import (
	"context"
	"runtime/debug"

	"pool-sniffer-sol/internal/consts"
	"pool-sniffer-sol/internal/logic/core"
	"pool-sniffer-sol/internal/logic/eventparser/common"
	"pool-sniffer-sol/internal/metrics"
	"pool-sniffer-sol/pkg/logger"
)

// TokenResolver 为 mint 地址解析 TokenView，实现方保证不返回错误
type TokenResolver interface {
	Resolve(ctx context.Context, address string) core.TokenView
}

// Normalizer 把各协议的原始指令帧转换为统一的建池事件
type Normalizer struct {
	registry *common.Registry
	resolver TokenResolver
}

func NewNormalizer(registry *common.Registry, resolver TokenResolver) *Normalizer {
	return &Normalizer{registry: registry, resolver: resolver}
}

// Normalize 解析一帧上游数据。无法得到完整事件时返回 nil，不返回错误；
// 同样的输入与同样的风控结果总是得到同样的输出。
func (n *Normalizer) Normalize(ctx context.Context, label string, raw any) (event *core.PoolCreationEvent) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("[Normalizer:%s] panic: %+v\nstack: %s", label, r, debug.Stack())
			event = nil
		}
	}()

	// 1. 控制帧直接跳过
	if frameType, ok := common.FrameType(raw); ok {
		switch {
		case common.IsControlFrameType(frameType):
			logger.Debugf("[Normalizer:%s] skip control frame, type=%s", label, frameType)
			return nil
		case frameType != "next":
			logger.Debugf("[Normalizer:%s] unknown frame type=%s, try parsing", label, frameType)
		}
	}

	// 2~3. 定位指令列表，只取第一条
	instr, ok := common.LocateInstruction(raw)
	if !ok {
		return n.discard(label, "no_instructions")
	}

	// 4. 必填字段
	fields, ok := common.ExtractInstruction(instr)
	if !ok {
		return n.discard(label, "missing_field")
	}

	// 5~6. 解析协议配置，并二次校验 method
	cfg, ok := n.registry.Resolve(label, fields.Method)
	if !ok {
		logger.Debugf("[Normalizer:%s] no protocol config for method=%s, tx=%s", label, fields.Method, fields.Signature)
		return n.discard(label, "unmatched_config")
	}
	if fields.Method != cfg.Method {
		logger.Debugf("[Normalizer:%s] not a %s pool creation, method=%s, tx=%s", label, cfg.Name, fields.Method, fields.Signature)
		return n.discard(label, "method_mismatch")
	}

	// 7. 初始金额
	amountA, amountB := common.ExtractLiquidityAmounts(fields.Program, cfg)

	// 8. 地址：必须恰好两个不同的 mint
	tokens, pool := common.ExtractAddresses(fields.Accounts, fields.Program, cfg)
	addrA, okA := tokens[cfg.TokenAKey]
	addrB, okB := tokens[cfg.TokenBKey]
	if len(tokens) != 2 || !okA || !okB || addrA == addrB {
		logger.Debugf("[Normalizer:%s] expected 2 distinct mints, got=%v, tx=%s", label, tokens, fields.Signature)
		return n.discard(label, "token_count")
	}

	// 9. native 腿
	nativeAmount := common.NativeAmount(addrA, addrB, amountA, amountB)
	nativeUnits, ok := core.NativeUnits(nativeAmount)
	if !ok && nativeAmount != nil {
		logger.Warnf("[Normalizer:%s] unparsable native amount %q, tx=%s", label, *nativeAmount, fields.Signature)
	}

	// 10. 风控信息
	tokenA := n.resolver.Resolve(ctx, addrA)
	tokenB := n.resolver.Resolve(ctx, addrB)

	// 11. 分档 + 金额格式化
	event = &core.PoolCreationEvent{
		DexName:              cfg.Name,
		PoolAddress:          pool,
		TokenA:               tokenA,
		TokenB:               tokenB,
		Timestamp:            fields.BlockTime,
		TransactionSignature: fields.Signature,
		LiquidityAmounts: core.NewLiquidityAmounts(amountA, amountB, nativeAmount,
			tokenA.Decimals, tokenB.Decimals, consts.NativeDecimals),
		CoinType: core.ClassifyCoin(nativeUnits),
	}

	metrics.PoolEvents.WithLabelValues(cfg.Name, string(event.CoinType)).Inc()
	logger.Infof("[Normalizer:%s] new pool on %s: %s / %s, sol=%v, coin=%s, tx=%s",
		label, cfg.Name, addrA, addrB, nativeUnits, event.CoinType, fields.Signature)
	return event
}

func (n *Normalizer) discard(label, reason string) *core.PoolCreationEvent {
	metrics.FramesDiscarded.WithLabelValues(label, reason).Inc()
	return nil
}
