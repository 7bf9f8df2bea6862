package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"pool-sniffer-sol/internal/consts"
	"pool-sniffer-sol/internal/logic/core"
)

// LoadQueries 读取 name -> GraphQL 文档的 YAML 映射
func LoadQueries(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read queries file %s: %w", path, err)
	}
	var queries map[string]string
	if err := yaml.Unmarshal(data, &queries); err != nil {
		return nil, fmt.Errorf("parse queries file %s: %w", path, err)
	}
	return queries, nil
}

// ResolveSubscriptions 未配置订阅时只开 combined。
// 查询优先级：内联 query > queries_file > builtin（按注册表生成）。
func (c *StreamConfig) ResolveSubscriptions(builtin map[string]string) ([]core.Subscription, error) {
	entries := c.Subscriptions
	if len(entries) == 0 {
		entries = []SubscriptionConfig{{Name: consts.SubscriptionCombined}}
	}

	var fromFile map[string]string
	if c.QueriesFile != "" {
		var err error
		if fromFile, err = LoadQueries(c.QueriesFile); err != nil {
			return nil, err
		}
	}

	subs := make([]core.Subscription, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("subscription name is required")
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("subscription %q configured twice", name)
		}
		seen[name] = struct{}{}

		query := strings.TrimSpace(e.Query)
		if query == "" {
			query = strings.TrimSpace(fromFile[name])
		}
		if query == "" {
			query = builtin[name]
		}
		if query == "" {
			return nil, fmt.Errorf("subscription %q has no query: not inline, not in queries file, no builtin", name)
		}
		subs = append(subs, core.Subscription{Name: name, Query: query})
	}
	return subs, nil
}
