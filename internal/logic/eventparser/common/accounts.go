package common

import (
	"strings"

	"pool-sniffer-sol/internal/consts"
	"pool-sniffer-sol/internal/utils"
)

// IsSkippedAddress 账户跳过名单：System Program、超长的 Token 占位地址、PumpSwap program 自身
func IsSkippedAddress(address string) bool {
	return address == consts.SystemProgramStr ||
		(strings.Contains(address, "Token") && len(address) > 50) ||
		address == consts.PumpSwapProgramStr
}

// ExtractLiquidityAmounts 按参数名取 token A/B 初始金额（Value.bigInteger），缺失为 nil
func ExtractLiquidityAmounts(program any, cfg ProtocolConfig) (tokenA, tokenB *string) {
	args, ok := utils.Array(program, "Arguments")
	if !ok {
		return nil, nil
	}

	for _, arg := range args {
		name, ok := utils.String(arg, "Name")
		if !ok {
			continue
		}
		var target **string
		switch name {
		case cfg.TokenAAmountArg:
			target = &tokenA
		case cfg.TokenBAmountArg:
			target = &tokenB
		default:
			continue
		}
		if amount, ok := utils.String(arg, "Value", "bigInteger"); ok {
			*target = &amount
		}
	}
	return tokenA, tokenB
}

// ExtractAddresses 遍历账户列表，按 AccountNames 中同位置的名字归类：
// token A/B 地址写入规范 key，池子地址单独返回。同名出现多次时后者覆盖前者。
func ExtractAddresses(accounts []any, program any, cfg ProtocolConfig) (map[string]string, *string) {
	tokens := make(map[string]string, 2)
	var pool *string

	names, _ := utils.Array(program, "AccountNames")
	for i, account := range accounts {
		address, ok := utils.String(account, "Address")
		if !ok || IsSkippedAddress(address) {
			continue
		}

		var name string
		if i < len(names) {
			name, _ = names[i].(string)
		}

		switch name {
		case "":
			// 没有位置名的账户无法归类
		case cfg.TokenAAccount:
			tokens[cfg.TokenAKey] = address
		case cfg.TokenBAccount:
			tokens[cfg.TokenBKey] = address
		case cfg.PoolAccount:
			addr := address
			pool = &addr
		}
	}
	return tokens, pool
}

// NativeAmount 返回 WSOL 那一腿的原始金额；两腿都不是 WSOL 时为 nil
func NativeAmount(tokenAAddress, tokenBAddress string, tokenAAmount, tokenBAmount *string) *string {
	switch consts.WSOLMintStr {
	case tokenAAddress:
		return tokenAAmount
	case tokenBAddress:
		return tokenBAmount
	default:
		return nil
	}
}
