package common

import (
	"fmt"

	"pool-sniffer-sol/internal/consts"
)

// ProtocolConfig 单个 DEX 建池指令的字段映射表，静态且不可变。
//
// 上游推送的指令已按 IDL 解码为 JSON：账户按位置给出，名字来自 Program.AccountNames；
// 金额参数在 Program.Arguments 中按名字给出。不同协议字段名不同，全部收敛到这里。
type ProtocolConfig struct {
	Dex            int    // consts.DexXxx
	ID             string // 订阅标识，单协议订阅按它直接查表
	Name           string // 展示名，写入事件 dex_name
	ProgramAddress string // 用于生成订阅过滤条件
	Method         string // 建池指令名

	TokenAAccount string // token A mint 在 AccountNames 中的名字
	TokenBAccount string // token B mint 在 AccountNames 中的名字
	PoolAccount   string // 池子账户名字

	TokenAAmountArg string // token A 初始金额参数名
	TokenBAmountArg string // token B 初始金额参数名

	TokenAKey string // 地址表中 token A 的规范 key
	TokenBKey string // 地址表中 token B 的规范 key
}

// Registry 协议配置表。注册顺序即 combined 模式的匹配优先级。
type Registry struct {
	ordered []ProtocolConfig
	byID    map[string]int
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]int)}
}

// Register 只在启动期调用；ID 重复属于编码错误，直接 panic
func (r *Registry) Register(cfg ProtocolConfig) {
	if _, dup := r.byID[cfg.ID]; dup {
		panic(fmt.Sprintf("protocol %q registered twice", cfg.ID))
	}
	if cfg.Name == "" {
		cfg.Name = consts.DexName(cfg.Dex)
	}
	r.byID[cfg.ID] = len(r.ordered)
	r.ordered = append(r.ordered, cfg)
}

// Lookup 按订阅标识直接查表
func (r *Registry) Lookup(id string) (ProtocolConfig, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return ProtocolConfig{}, false
	}
	return r.ordered[idx], true
}

// MatchMethod 按注册顺序线性扫描，第一个 method 相同的配置胜出
func (r *Registry) MatchMethod(method string) (ProtocolConfig, bool) {
	for _, cfg := range r.ordered {
		if cfg.Method == method {
			return cfg, true
		}
	}
	return ProtocolConfig{}, false
}

// Resolve combined 订阅按 method 匹配，其它订阅按名字查表
func (r *Registry) Resolve(label, method string) (ProtocolConfig, bool) {
	if label == consts.SubscriptionCombined {
		return r.MatchMethod(method)
	}
	return r.Lookup(label)
}

// Configs 返回按优先级排列的配置副本
func (r *Registry) Configs() []ProtocolConfig {
	out := make([]ProtocolConfig, len(r.ordered))
	copy(out, r.ordered)
	return out
}
