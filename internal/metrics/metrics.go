package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pool_sniffer"

var (
	once sync.Once

	// FramesReceived 上游推送的文本帧数量
	FramesReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "connector",
		Name:      "frames_received_total",
		Help:      "Total number of text frames received from upstream subscriptions",
	}, []string{"subscription"})

	// MessagesPublished 推入合流通道的消息数量（pool_creation / raw）
	MessagesPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "connector",
		Name:      "messages_published_total",
		Help:      "Total number of envelopes pushed to the output channel",
	}, []string{"subscription", "event_type"})

	// ConnectorTerminations 连接器退出原因
	ConnectorTerminations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "connector",
		Name:      "terminations_total",
		Help:      "Connector terminations by reason",
	}, []string{"subscription", "reason"})

	// PoolEvents 归一化成功的建池事件
	PoolEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "normalizer",
		Name:      "pool_events_total",
		Help:      "Pool creation events normalized, by dex and coin type",
	}, []string{"dex", "coin_type"})

	// FramesDiscarded 无法归一化的帧（最终以 raw 透传）
	FramesDiscarded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "normalizer",
		Name:      "frames_discarded_total",
		Help:      "Frames that produced no pool event, by reason",
	}, []string{"subscription", "reason"})

	// EnrichmentResults 风控查询结果：ok / cache_hit / native / 各失败类别
	EnrichmentResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "enrichment",
		Name:      "results_total",
		Help:      "Token enrichment outcomes",
	}, []string{"result"})

	// StreamClients 当前 SSE 连接数
	StreamClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "stream_clients",
		Help:      "Number of connected server-sent-events clients",
	})

	// RelayFailures Kafka 转发失败次数
	RelayFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "relay",
		Name:      "publish_failures_total",
		Help:      "Total number of envelopes that failed to reach Kafka",
	})
)

// Register 注册全部指标，重复调用无副作用；不传参数时注册到 DefaultRegisterer
func Register(registerers ...prometheus.Registerer) {
	once.Do(func() {
		var reg prometheus.Registerer = prometheus.DefaultRegisterer
		if len(registerers) > 0 && registerers[0] != nil {
			reg = registerers[0]
		}
		reg.MustRegister(
			FramesReceived,
			MessagesPublished,
			ConnectorTerminations,
			PoolEvents,
			FramesDiscarded,
			EnrichmentResults,
			StreamClients,
			RelayFailures,
		)
	})
}
