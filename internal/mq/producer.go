package mq

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"pool-sniffer-sol/pkg/logger"
)

const (
	defaultBatchSize  = 32 * 1024
	defaultLingerMs   = 5
	defaultPartitions = 3
	adminTimeout      = 10 * time.Second
)

// KafkaProducerOption 由 config.RelayConfig 转换而来
type KafkaProducerOption struct {
	Brokers    string // 多个 broker 用英文逗号分隔
	Topic      string
	Partitions int
	BatchSize  int // 字节
	LingerMs   int
}

// NewKafkaProducer 确保 topic 存在后创建幂等生产者
func NewKafkaProducer(opt KafkaProducerOption) (*kafka.Producer, error) {
	if opt.Brokers == "" {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if opt.Topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}
	if err := ensureTopic(opt); err != nil {
		return nil, err
	}

	batchSize := opt.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	lingerMs := opt.LingerMs
	if lingerMs < 0 {
		lingerMs = defaultLingerMs
	}

	host, _ := os.Hostname()
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": opt.Brokers,
		"client.id":         fmt.Sprintf("pool-sniffer-sol-%s", host),

		// 可靠性
		"acks":                                  "all",
		"enable.idempotence":                    true,
		"max.in.flight.requests.per.connection": 5,

		"delivery.timeout.ms": 30000,
		"request.timeout.ms":  30000,
		"retries":             5,
		"retry.backoff.ms":    100,

		"batch.size":        batchSize,
		"linger.ms":         lingerMs,
		"compression.type":  "none",
		"message.max.bytes": 2 * 1024 * 1024,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}
	return producer, nil
}

func ensureTopic(opt KafkaProducerOption) error {
	admin, err := kafka.NewAdminClient(&kafka.ConfigMap{
		"bootstrap.servers": opt.Brokers,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer admin.Close()

	meta, err := admin.GetMetadata(nil, true, int(adminTimeout/time.Millisecond))
	if err != nil {
		return fmt.Errorf("failed to get metadata: %w", err)
	}
	if _, ok := meta.Topics[opt.Topic]; ok {
		return nil
	}

	replication := 1
	if len(meta.Brokers) > 1 {
		replication = 2
	}
	partitions := opt.Partitions
	if partitions <= 0 {
		partitions = defaultPartitions
	}

	ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
	defer cancel()
	results, err := admin.CreateTopics(ctx, []kafka.TopicSpecification{{
		Topic:             opt.Topic,
		NumPartitions:     partitions,
		ReplicationFactor: replication,
	}})
	if err != nil {
		return fmt.Errorf("failed to create topic %s: %w", opt.Topic, err)
	}
	for _, res := range results {
		if code := res.Error.Code(); code != kafka.ErrNoError && code != kafka.ErrTopicAlreadyExists {
			return fmt.Errorf("failed to create topic %s: %w", res.Topic, res.Error)
		}
	}
	logger.Infof("[Kafka:ensureTopic] created topic %s, partitions=%d, replication=%d", opt.Topic, partitions, replication)
	return nil
}
