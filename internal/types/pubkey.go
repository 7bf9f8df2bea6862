package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

type Pubkey [32]byte

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// TryPubkeyFromBase58 解析 base58 字符串为 Pubkey，失败时返回 error（用于不信任输入路径）
func TryPubkeyFromBase58(s string) (Pubkey, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("failed to decode base58 pubkey %q: %w", s, err)
	}
	if len(data) != 32 {
		return Pubkey{}, fmt.Errorf("invalid pubkey length: got %d, want 32, input=%q", len(data), s)
	}
	var p Pubkey
	copy(p[:], data)
	return p, nil
}

// IsValidPubkey 判断上游推送的 mint 地址是否为合法的 32 字节 base58 公钥
func IsValidPubkey(s string) bool {
	_, err := TryPubkeyFromBase58(s)
	return err == nil
}

// Signature 交易签名（64 字节）
type Signature [64]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func TrySignatureFromBase58(s string) (Signature, error) {
	data, err := base58.Decode(s)
	if err != nil {
		return Signature{}, fmt.Errorf("failed to decode base58 signature: %w", err)
	}
	if len(data) != 64 {
		return Signature{}, fmt.Errorf("invalid signature length: got %d, want 64", len(data))
	}
	var sig Signature
	copy(sig[:], data)
	return sig, nil
}
