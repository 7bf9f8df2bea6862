package mq

import (
	"context"
	"sync"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"

	"pool-sniffer-sol/internal/logic/core"
	"pool-sniffer-sol/internal/logic/dispatcher"
	"pool-sniffer-sol/internal/metrics"
	"pool-sniffer-sol/internal/types"
	"pool-sniffer-sol/internal/utils"
	"pool-sniffer-sol/pkg/logger"
)

const (
	defaultSendTimeout = 5 * time.Second
	defaultRelayBatch  = 64
)

// Source 每次 Start 启动一轮合流，由 dispatcher.Dispatcher 实现
type Source interface {
	Start(ctx context.Context) *dispatcher.Outbox
}

// RelayOption 由 config.RelayConfig 转换而来
type RelayOption struct {
	Topic       string
	Partitions  int
	SendTimeout time.Duration
	MaxBatch    int  // 单次 SendKafkaJobs 的最大条数
	IncludeRaw  bool // 是否转发 raw 透传消息
}

// EventRelay 作为一个无界面的消费者独占一轮合流，把消息写入 Kafka。
// 实现 go-zero service.Service。
type EventRelay struct {
	source   Source
	producer *kafka.Producer
	opt      RelayOption

	mu      sync.Mutex
	stopped bool
	cancel  context.CancelFunc
	outbox *dispatcher.Outbox
	done   chan struct{}
}

func NewEventRelay(source Source, producer *kafka.Producer, opt RelayOption) *EventRelay {
	if opt.Partitions <= 0 {
		opt.Partitions = defaultPartitions
	}
	if opt.SendTimeout <= 0 {
		opt.SendTimeout = defaultSendTimeout
	}
	if opt.MaxBatch <= 0 {
		opt.MaxBatch = defaultRelayBatch
	}
	return &EventRelay{
		source:   source,
		producer: producer,
		opt:      opt,
		done:     make(chan struct{}),
	}
}

// Start 阻塞到合流结束或 Stop 被调用
func (r *EventRelay) Start() {
	defer close(r.done)

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	out := r.source.Start(ctx)
	r.cancel = cancel
	r.outbox = out
	r.mu.Unlock()
	defer cancel()
	defer out.Close()

	logger.Infof("[EventRelay:Start] relaying to topic %s, partitions=%d, include_raw=%v",
		r.opt.Topic, r.opt.Partitions, r.opt.IncludeRaw)

	for {
		batch, open := r.collect(out)
		if len(batch) > 0 {
			r.flush(ctx, batch)
		}
		if !open {
			logger.Infof("[EventRelay:Start] all subscriptions ended")
			return
		}
	}
}

// Stop 关闭 Outbox，生产者在下一次 Publish 时退出；等待 Start 返回
func (r *EventRelay) Stop() {
	r.mu.Lock()
	r.stopped = true
	cancel, out := r.cancel, r.outbox
	r.mu.Unlock()

	if out == nil {
		return
	}
	out.Close()
	cancel()
	<-r.done

	if remaining := r.producer.Flush(int(r.opt.SendTimeout / time.Millisecond)); remaining > 0 {
		logger.Warnf("[EventRelay:Stop] %d messages still in flight", remaining)
	}
	logger.Infof("[EventRelay:Stop] relay stopped")
}

// collect 阻塞取一条，再非阻塞取满一批
func (r *EventRelay) collect(out *dispatcher.Outbox) ([]*KafkaJob, bool) {
	var jobs []*KafkaJob
	add := func(msg core.Message) {
		if job, ok := r.BuildJob(msg); ok {
			jobs = append(jobs, job)
		}
	}

	select {
	case msg, ok := <-out.Messages():
		if !ok {
			return nil, false
		}
		add(msg)
	case <-out.Done():
		return nil, false
	}

	for len(jobs) < r.opt.MaxBatch {
		select {
		case msg, ok := <-out.Messages():
			if !ok {
				return jobs, false
			}
			add(msg)
		default:
			return jobs, true
		}
	}
	return jobs, true
}

func (r *EventRelay) flush(ctx context.Context, jobs []*KafkaJob) {
	_, failed := SendKafkaJobs(ctx, r.producer, jobs, r.opt.SendTimeout)
	if len(failed) == 0 {
		return
	}
	metrics.RelayFailures.Add(float64(len(failed)))
	for _, f := range failed {
		logger.Errorf("[EventRelay:flush] send failed, key=%s, partition=%d: %v", f.Job.Key, f.Job.Partition, f.Err)
	}
}

// BuildJob 建池事件按交易签名分区；raw 消息仅在 IncludeRaw 时转发，固定写 0 号分区
func (r *EventRelay) BuildJob(msg core.Message) (*KafkaJob, bool) {
	if msg.EventType == core.EventTypeRaw && !r.opt.IncludeRaw {
		return nil, false
	}

	job := &KafkaJob{
		Topic: r.opt.Topic,
		Value: msg.Payload,
	}
	if msg.Key == "" {
		return job, true
	}

	job.Key = []byte(msg.Key)
	sig, err := types.TrySignatureFromBase58(msg.Key)
	if err != nil {
		logger.Debugf("[EventRelay:BuildJob] unparsable signature %q, using partition 0", msg.Key)
		return job, true
	}
	job.Partition = int32(utils.PartitionHashBytes(sig[:], uint32(r.opt.Partitions)))
	return job, true
}
