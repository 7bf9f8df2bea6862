package svc

import (
	"context"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/redis/go-redis/v9"

	"pool-sniffer-sol/internal/cache"
	"pool-sniffer-sol/internal/config"
	"pool-sniffer-sol/internal/logic/bitquery"
	"pool-sniffer-sol/internal/logic/dispatcher"
	"pool-sniffer-sol/internal/logic/eventparser"
	"pool-sniffer-sol/internal/logic/eventparser/common"
	"pool-sniffer-sol/internal/mq"
	"pool-sniffer-sol/internal/service"
	"pool-sniffer-sol/pkg/logger"
)

const redisPingTimeout = 3 * time.Second

// ServiceContext 进程级资源，HTTP 推送与 Kafka 转发共用同一个 Dispatcher
type ServiceContext struct {
	Config     config.StreamConfig
	Registry   *common.Registry
	Resolver   *service.TokenResolver
	Normalizer *eventparser.Normalizer
	Dispatcher *dispatcher.Dispatcher
	Redis      *redis.Client   // 仅 cache.mode=redis
	Producer   *kafka.Producer // 仅 relay.enabled
}

func NewServiceContext(c config.StreamConfig) (*ServiceContext, error) {
	sc := &ServiceContext{
		Config:   c,
		Registry: eventparser.NewDefaultRegistry(),
	}

	// 1. 风控查询：缓存 + SolSniffer
	tokenCache, err := sc.newTokenCache()
	if err != nil {
		sc.Close()
		return nil, err
	}

	var analyzer service.TokenAnalyzer = service.DisabledAnalyzer{}
	if c.Sniffer.APIKey != "" {
		client, err := service.NewSolSnifferClient(c.Sniffer.ToSolSnifferOption())
		if err != nil {
			sc.Close()
			return nil, err
		}
		analyzer = client
	} else {
		logger.Warnf("[ServiceContext] sniffer.api_key 为空，所有 token 将使用降级视图")
	}
	sc.Resolver = service.NewTokenResolver(analyzer, tokenCache)
	sc.Normalizer = eventparser.NewNormalizer(sc.Registry, sc.Resolver)

	// 2. 订阅与合流
	subs, err := c.ResolveSubscriptions(bitquery.DefaultQueries(sc.Registry))
	if err != nil {
		sc.Close()
		return nil, err
	}
	capacity := c.OutboxCapacity
	if capacity <= 0 {
		capacity = 50
	}
	connCfg := c.Bitquery.ToConnectorConfig()
	if err := connCfg.Validate(); err != nil {
		sc.Close()
		return nil, err
	}
	factory := bitquery.NewRunnerFactory(connCfg, sc.Normalizer)
	sc.Dispatcher = dispatcher.NewDispatcher(factory, subs, capacity)

	// 3. 可选 Kafka 转发
	if c.Relay.Enabled {
		producer, err := mq.NewKafkaProducer(c.Relay.ToKafkaOption())
		if err != nil {
			logger.Errorf("[ServiceContext] Kafka producer 初始化失败: %v", err)
			sc.Close()
			return nil, err
		}
		sc.Producer = producer
	}

	names := make([]string, 0, len(subs))
	for _, s := range subs {
		names = append(names, s.Name)
	}
	logger.Infof("[ServiceContext] 初始化完成, subscriptions=%v, cache=%s, relay=%v", names, c.Cache.Mode, c.Relay.Enabled)
	return sc, nil
}

// newTokenCache 返回接口值；none 模式返回真正的 nil 接口
func (sc *ServiceContext) newTokenCache() (cache.TokenCache, error) {
	c := sc.Config.Cache
	switch c.Mode {
	case config.CacheModeNone:
		return nil, nil
	case config.CacheModeRedis:
		if c.RedisAddr == "" {
			return nil, fmt.Errorf("cache.redis_addr is required when cache.mode=redis")
		}
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("redis ping %s: %w", c.RedisAddr, err)
		}
		sc.Redis = rdb
		return cache.NewRedisTokenCache(rdb, c.TTL()), nil
	default:
		return cache.NewMemoryTokenCache(c.TTL(), c.MaxEntries), nil
	}
}

// Close 释放外部连接，可重复调用
func (sc *ServiceContext) Close() {
	if sc.Producer != nil {
		sc.Producer.Close()
		sc.Producer = nil
	}
	if sc.Redis != nil {
		if err := sc.Redis.Close(); err != nil {
			logger.Warnf("[ServiceContext] close redis: %v", err)
		}
		sc.Redis = nil
	}
}
