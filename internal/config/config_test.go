package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/conf"
)

const sampleYaml = `
logger:
  format: json
  level: debug
bitquery:
  token: bq-token
sniffer:
  api_key: sniff-key
cache:
  mode: redis
  redis_addr: 127.0.0.1:6379
http:
  addr: 0.0.0.0:9000
relay:
  enabled: true
  brokers: 127.0.0.1:9092
  send_timeout_ms: 1500
subscriptions:
  - name: raydium
  - name: custom
    query: "subscription { Custom }"
`

func loadSample(t *testing.T, content string) StreamConfig {
	var c StreamConfig
	require.NoError(t, conf.LoadFromYamlBytes([]byte(content), &c))
	return c
}

func TestLoad_AppliesDefaults(t *testing.T) {
	c := loadSample(t, sampleYaml)

	assert.Equal(t, "json", c.LogConf.Format)
	assert.Equal(t, "debug", c.LogConf.ToLogOption().Level)

	bq := c.Bitquery.ToConnectorConfig()
	assert.Equal(t, "wss://streaming.bitquery.io/eap", bq.Endpoint)
	assert.Equal(t, "bq-token", bq.Token)
	assert.Equal(t, "graphql-transport-ws", bq.SubProtocol)
	assert.Equal(t, 30*time.Second, bq.HandshakeTimeout)
	assert.Equal(t, 10*time.Second, bq.WriteTimeout)

	sn := c.Sniffer.ToSolSnifferOption()
	assert.Equal(t, "https://solsniffer.com/api/v2/token", sn.Endpoint)
	assert.Equal(t, "sniff-key", sn.APIKey)
	assert.Equal(t, 30*time.Second, sn.Timeout)

	assert.Equal(t, CacheModeRedis, c.Cache.Mode)
	assert.Equal(t, 10*time.Minute, c.Cache.TTL())
	assert.Equal(t, 10000, c.Cache.MaxEntries)

	assert.Equal(t, "0.0.0.0:9000", c.Http.Addr)
	assert.Equal(t, "/stream", c.Http.StreamPath)

	assert.True(t, c.Relay.Enabled)
	assert.Equal(t, "pool_sniffer_sol_event", c.Relay.ToKafkaOption().Topic)
	assert.Equal(t, 3, c.Relay.ToKafkaOption().Partitions)
	assert.Equal(t, 1500*time.Millisecond, c.Relay.ToRelayOption().SendTimeout)

	assert.Equal(t, 50, c.OutboxCapacity)
}

func TestLoad_RejectsUnknownCacheMode(t *testing.T) {
	var c StreamConfig
	err := conf.LoadFromYamlBytes([]byte("cache:\n  mode: disk\n"), &c)
	assert.Error(t, err)
}

func TestResolveSubscriptions_DefaultsToCombined(t *testing.T) {
	c := StreamConfig{}
	subs, err := c.ResolveSubscriptions(map[string]string{"combined": "subscription { All }"})
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "combined", subs[0].Name)
	assert.Equal(t, "subscription { All }", subs[0].Query)
}

func TestResolveSubscriptions_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"raydium: |\n  subscription { FromFile }\nmeteora: \"subscription { MeteoraFile }\"\n"), 0o644))

	c := StreamConfig{
		QueriesFile: path,
		Subscriptions: []SubscriptionConfig{
			{Name: "raydium", Query: "subscription { Inline }"},
			{Name: "meteora"},
			{Name: "pumpswap"},
		},
	}
	builtin := map[string]string{
		"raydium":  "subscription { BuiltinRaydium }",
		"meteora":  "subscription { BuiltinMeteora }",
		"pumpswap": "subscription { BuiltinPump }",
	}

	subs, err := c.ResolveSubscriptions(builtin)
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "subscription { Inline }", subs[0].Query)
	assert.Equal(t, "subscription { MeteoraFile }", subs[1].Query)
	assert.Equal(t, "subscription { BuiltinPump }", subs[2].Query)
}

func TestResolveSubscriptions_Errors(t *testing.T) {
	_, err := (&StreamConfig{Subscriptions: []SubscriptionConfig{{Name: "unknown"}}}).ResolveSubscriptions(nil)
	assert.ErrorContains(t, err, "has no query")

	_, err = (&StreamConfig{Subscriptions: []SubscriptionConfig{{Name: " "}}}).ResolveSubscriptions(nil)
	assert.Error(t, err)

	dup := &StreamConfig{Subscriptions: []SubscriptionConfig{{Name: "a", Query: "q"}, {Name: "a", Query: "q"}}}
	_, err = dup.ResolveSubscriptions(nil)
	assert.ErrorContains(t, err, "twice")

	_, err = (&StreamConfig{QueriesFile: filepath.Join(t.TempDir(), "missing.yaml")}).ResolveSubscriptions(nil)
	assert.Error(t, err)
}
