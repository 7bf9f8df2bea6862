package config

import (
	"time"

	"pool-sniffer-sol/internal/logic/bitquery"
	"pool-sniffer-sol/internal/mq"
	"pool-sniffer-sol/internal/service"
	"pool-sniffer-sol/pkg/logger"
)

type LogConfig struct {
	Format   string `json:"format,default=console,options=console|json"` // 日志格式
	LogDir   string `json:"log_dir,optional"`                            // 为空只输出 stdout
	Level    string `json:"level,default=info"`                          // debug / info / warn / error
	Compress bool   `json:"compress,optional"`                           // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// BitqueryConfig 上游 GraphQL websocket
type BitqueryConfig struct {
	Endpoint            string `json:"endpoint,default=wss://streaming.bitquery.io/eap"`
	Token               string `json:"token,optional"` // 一般写 ${BITQUERY_TOKEN}
	SubProtocol         string `json:"sub_protocol,default=graphql-transport-ws"`
	HandshakeTimeoutSec int    `json:"handshake_timeout_sec,default=30"` // 建连 + 等待 ack
	WriteTimeoutSec     int    `json:"write_timeout_sec,default=10"`
}

func (c *BitqueryConfig) ToConnectorConfig() bitquery.Config {
	return bitquery.Config{
		Endpoint:         c.Endpoint,
		Token:            c.Token,
		SubProtocol:      c.SubProtocol,
		HandshakeTimeout: time.Duration(c.HandshakeTimeoutSec) * time.Second,
		WriteTimeout:     time.Duration(c.WriteTimeoutSec) * time.Second,
	}
}

// SnifferConfig SolSniffer 风控接口
type SnifferConfig struct {
	Endpoint   string `json:"endpoint,default=https://solsniffer.com/api/v2/token"`
	APIKey     string `json:"api_key,optional"` // 一般写 ${SOLSNIFFER_KEY}，为空时全部走降级视图
	TimeoutSec int    `json:"timeout_sec,default=30"`
	UserAgent  string `json:"user_agent,default=SolSniffer-Integration/1.0.0"`
}

func (c *SnifferConfig) ToSolSnifferOption() service.SolSnifferOption {
	return service.SolSnifferOption{
		Endpoint:  c.Endpoint,
		APIKey:    c.APIKey,
		UserAgent: c.UserAgent,
		Timeout:   time.Duration(c.TimeoutSec) * time.Second,
	}
}

const (
	CacheModeNone   = "none"
	CacheModeMemory = "memory"
	CacheModeRedis  = "redis"
)

// CacheConfig 风控结果缓存，只缓存查询成功的结果
type CacheConfig struct {
	Mode          string `json:"mode,default=memory,options=none|memory|redis"`
	RedisAddr     string `json:"redis_addr,optional"`
	RedisPassword string `json:"redis_password,optional"`
	RedisDB       int    `json:"redis_db,optional"`
	TTLSec        int    `json:"ttl_sec,default=600"`
	MaxEntries    int    `json:"max_entries,default=10000"` // 仅 memory 模式
}

func (c *CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSec) * time.Second
}

type HttpConfig struct {
	Addr               string   `json:"addr,default=127.0.0.1:8080"`
	StreamPath         string   `json:"stream_path,default=/stream"`
	AllowedOrigins     []string `json:"allowed_origins,optional"` // 为空时只允许 http://localhost:3000
	ShutdownTimeoutSec int      `json:"shutdown_timeout_sec,default=5"`
}

// RelayConfig 可选的 Kafka 转发
type RelayConfig struct {
	Enabled       bool   `json:"enabled,optional"`
	Brokers       string `json:"brokers,optional"` // 多个用英文逗号分隔
	Topic         string `json:"topic,default=pool_sniffer_sol_event"`
	Partitions    int    `json:"partitions,default=3"`
	BatchSize     int    `json:"batch_size,default=32768"` // 字节
	LingerMs      int    `json:"linger_ms,default=5"`
	SendTimeoutMs int    `json:"send_timeout_ms,default=5000"` // 单条消息等待回执的时限
	IncludeRaw    bool   `json:"include_raw,optional"`
}

func (c *RelayConfig) ToKafkaOption() mq.KafkaProducerOption {
	return mq.KafkaProducerOption{
		Brokers:    c.Brokers,
		Topic:      c.Topic,
		Partitions: c.Partitions,
		BatchSize:  c.BatchSize,
		LingerMs:   c.LingerMs,
	}
}

func (c *RelayConfig) ToRelayOption() mq.RelayOption {
	return mq.RelayOption{
		Topic:       c.Topic,
		Partitions:  c.Partitions,
		SendTimeout: time.Duration(c.SendTimeoutMs) * time.Millisecond,
		IncludeRaw:  c.IncludeRaw,
	}
}

// SubscriptionConfig query 为空时依次取 queries_file、内置生成的查询
type SubscriptionConfig struct {
	Name  string `json:"name"`
	Query string `json:"query,optional"`
}

// StreamConfig 主配置，由 etc/stream.yaml 加载
type StreamConfig struct {
	LogConf       LogConfig            `json:"logger"`
	Bitquery      BitqueryConfig       `json:"bitquery"`
	Sniffer       SnifferConfig        `json:"sniffer"`
	Cache         CacheConfig          `json:"cache"`
	Http          HttpConfig           `json:"http"`
	Relay         RelayConfig          `json:"relay,optional"`
	Subscriptions []SubscriptionConfig `json:"subscriptions,optional"`

	QueriesFile    string `json:"queries_file,optional"`    // YAML: name -> GraphQL 文档
	OutboxCapacity int    `json:"outbox_capacity,default=50"` // 合流通道容量
}
