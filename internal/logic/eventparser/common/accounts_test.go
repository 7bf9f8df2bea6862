package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pool-sniffer-sol/internal/consts"
)

var pumpSwapConfig = ProtocolConfig{
	ID:              "pumpswap",
	Method:          "create_pool",
	TokenAAccount:   "base_mint",
	TokenBAccount:   "quote_mint",
	PoolAccount:     "pool",
	TokenAAmountArg: "base_amount_in",
	TokenBAmountArg: "quote_amount_in",
	TokenAKey:       "base_mint",
	TokenBKey:       "quote_mint",
}

func TestIsSkippedAddress(t *testing.T) {
	assert.True(t, IsSkippedAddress(consts.SystemProgramStr))
	assert.True(t, IsSkippedAddress(consts.PumpSwapProgramStr))
	assert.True(t, IsSkippedAddress("Token"+string(make([]byte, 46))), "超长 Token 占位")
	assert.False(t, IsSkippedAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"), "43 字符的 Token Program 不在名单内")
	assert.False(t, IsSkippedAddress(consts.WSOLMintStr))
}

func TestExtractLiquidityAmounts(t *testing.T) {
	program := decode(t, `{"Arguments":[
		{"Name":"index","Value":{"integer":0}},
		{"Name":"base_amount_in","Value":{"bigInteger":"1000000000"}},
		{"Name":"quote_amount_in","Value":{"integer":5}},
		{"Value":{"bigInteger":"1"}}
	]}`)

	a, b := ExtractLiquidityAmounts(program, pumpSwapConfig)
	require.NotNil(t, a)
	assert.Equal(t, "1000000000", *a)
	assert.Nil(t, b, "非 bigInteger 的值视为缺失")

	a, b = ExtractLiquidityAmounts(decode(t, `{"Name":"x"}`), pumpSwapConfig)
	assert.Nil(t, a)
	assert.Nil(t, b)
}

func TestExtractAddresses(t *testing.T) {
	program := decode(t, `{"AccountNames":["pool","global_config","creator","base_mint","quote_mint","lp_mint"]}`)
	accounts := decode(t, `[
		{"Address":"PoolAddr"},
		{"Address":"`+consts.SystemProgramStr+`"},
		{"Address":"Creator"},
		{"Address":"MintBase"},
		{"Address":"`+consts.WSOLMintStr+`"},
		{"Address":"LpMint"},
		{"Address":"BeyondNames"}
	]`).([]any)

	tokens, pool := ExtractAddresses(accounts, program, pumpSwapConfig)
	assert.Equal(t, map[string]string{"base_mint": "MintBase", "quote_mint": consts.WSOLMintStr}, tokens)
	require.NotNil(t, pool)
	assert.Equal(t, "PoolAddr", *pool)
}

func TestExtractAddresses_SkipListedMintIsDropped(t *testing.T) {
	program := decode(t, `{"AccountNames":["base_mint","quote_mint"]}`)
	accounts := decode(t, `[{"Address":"`+consts.PumpSwapProgramStr+`"},{"Address":"MintQuote"}]`).([]any)

	tokens, pool := ExtractAddresses(accounts, program, pumpSwapConfig)
	assert.Equal(t, map[string]string{"quote_mint": "MintQuote"}, tokens)
	assert.Nil(t, pool)
}

func TestNativeAmount(t *testing.T) {
	a, b := "1", "2"
	assert.Equal(t, &a, NativeAmount(consts.WSOLMintStr, "X", &a, &b))
	assert.Equal(t, &b, NativeAmount("X", consts.WSOLMintStr, &a, &b))
	assert.Nil(t, NativeAmount("X", "Y", &a, &b))
	assert.Nil(t, NativeAmount(consts.WSOLMintStr, "Y", nil, &b), "native 腿金额缺失")
}
