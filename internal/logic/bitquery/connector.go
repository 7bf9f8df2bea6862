package bitquery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"pool-sniffer-sol/internal/logic/core"
	"pool-sniffer-sol/internal/metrics"
	"pool-sniffer-sol/internal/utils"
	"pool-sniffer-sol/pkg/logger"
)

const (
	DefaultEndpoint    = "wss://streaming.bitquery.io/eap"
	DefaultSubProtocol = "graphql-transport-ws"

	defaultHandshakeTimeout = 30 * time.Second
	defaultWriteTimeout     = 10 * time.Second
)

var (
	// ErrHandshakeIncomplete 收到 connection_ack 之前连接已结束
	ErrHandshakeIncomplete = errors.New("handshake incomplete: stream ended before connection_ack")
	// ErrConnectionRejected 握手阶段收到 connection_error
	ErrConnectionRejected = errors.New("connection rejected by upstream")
)

// Config 上游连接参数，凭证由调用方显式传入
type Config struct {
	Endpoint         string
	Token            string
	SubProtocol      string
	HandshakeTimeout time.Duration // 建连 + 等待 ack 的总时限
	WriteTimeout     time.Duration
}

// validate 检查必填项并填充默认值
func (c *Config) validate() error {
	var errs []string
	if c.Endpoint == "" {
		errs = append(errs, "Endpoint is required")
	} else if !strings.HasPrefix(c.Endpoint, "ws://") && !strings.HasPrefix(c.Endpoint, "wss://") {
		errs = append(errs, "Endpoint must be a ws:// or wss:// url")
	}
	if c.SubProtocol == "" {
		c.SubProtocol = DefaultSubProtocol
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = defaultHandshakeTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultWriteTimeout
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid bitquery config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Validate 启动期检查，不修改调用方的配置
func (c Config) Validate() error {
	return c.validate()
}

type State int32

const (
	StateDisconnected State = iota
	StateConnected
	StateInitializing
	StateReady
	StateSubscribed
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateSubscribed:
		return "subscribed"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// FrameNormalizer 把解码后的数据帧转换为建池事件，无法转换时返回 nil
type FrameNormalizer interface {
	Normalize(ctx context.Context, label string, raw any) *core.PoolCreationEvent
}

// Connector 持有一路上游订阅：握手、订阅、逐帧归一化后推入合流通道。
// 断线后不重连，Run 返回即终止。
type Connector struct {
	cfg        Config
	sub        core.Subscription
	normalizer FrameNormalizer
	out        core.Publisher

	state atomic.Int32
	now   func() time.Time
}

func NewConnector(cfg Config, sub core.Subscription, normalizer FrameNormalizer, out core.Publisher) (*Connector, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if sub.Name == "" {
		return nil, errors.New("subscription name is empty")
	}
	if strings.TrimSpace(sub.Query) == "" {
		return nil, fmt.Errorf("subscription %s has no query", sub.Name)
	}
	if normalizer == nil || out == nil {
		return nil, errors.New("normalizer and publisher are required")
	}
	if cfg.Token == "" {
		logger.Warnf("[Connector:%s] bitquery token is empty, upstream will likely reject the session", sub.Name)
	}
	return &Connector{
		cfg:        cfg,
		sub:        sub,
		normalizer: normalizer,
		out:        out,
		now:        time.Now,
	}, nil
}

func (c *Connector) State() State {
	return State(c.state.Load())
}

func (c *Connector) setState(s State) {
	prev := State(c.state.Swap(int32(s)))
	logger.Debugf("[Connector:%s] %s -> %s", c.sub.Name, prev, s)
}

// Run 阻塞直到连接关闭、握手失败或消费者离开。
// 消费者离开和上游正常关闭返回 nil，其余返回错误。
// ctx 只约束建连和风控查询。
func (c *Connector) Run(ctx context.Context) (err error) {
	reason := "closed"
	defer func() {
		c.setState(StateTerminated)
		metrics.ConnectorTerminations.WithLabelValues(c.sub.Name, reason).Inc()
	}()

	conn, err := c.dial(ctx)
	if err != nil {
		reason = "dial"
		return err
	}
	defer conn.Close()

	if err := c.handshake(conn); err != nil {
		reason = "handshake"
		if errors.Is(err, ErrConnectionRejected) {
			reason = "rejected"
		}
		return err
	}

	if err := c.subscribe(conn); err != nil {
		reason = "subscribe"
		return err
	}

	reason, err = c.receiveLoop(ctx, conn)
	return err
}

func (c *Connector) dial(ctx context.Context) (*websocket.Conn, error) {
	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: c.cfg.HandshakeTimeout,
		Subprotocols:     []string{c.cfg.SubProtocol},
	}
	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.cfg.Token)

	logger.Infof("[Connector:%s] connecting to %s", c.sub.Name, c.cfg.Endpoint)
	conn, resp, err := dialer.DialContext(ctx, c.cfg.Endpoint, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (http %d)", c.cfg.Endpoint, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", c.cfg.Endpoint, err)
	}
	c.setState(StateConnected)
	return conn, nil
}

// handshake 发送 connection_init 并等待 connection_ack
func (c *Connector) handshake(conn *websocket.Conn) error {
	if err := c.writeJSON(conn, map[string]any{"type": "connection_init"}); err != nil {
		return fmt.Errorf("send connection_init: %w", err)
	}
	c.setState(StateInitializing)

	_ = conn.SetReadDeadline(time.Now().Add(c.cfg.HandshakeTimeout))
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrHandshakeIncomplete, err)
		}
		if msgType != websocket.TextMessage {
			continue
		}

		h, ok := parseHeader(data)
		if !ok {
			logger.Warnf("[Connector:%s] 握手阶段收到无法解析的帧, 忽略: %.200s", c.sub.Name, data)
			continue
		}
		switch kindOf(h.Type) {
		case FrameConnectionAck:
			_ = conn.SetReadDeadline(time.Time{})
			c.setState(StateReady)
			logger.Infof("[Connector:%s] connection acknowledged", c.sub.Name)
			return nil
		case FrameConnectionError:
			return fmt.Errorf("%w: %s", ErrConnectionRejected, string(h.Payload))
		default:
			logger.Infof("[Connector:%s] 握手阶段收到 %s 帧, 忽略", c.sub.Name, h.Type)
		}
	}
}

// subscribe id 取 名字_秒级时间戳
func (c *Connector) subscribe(conn *websocket.Conn) error {
	id := fmt.Sprintf("%s_%d", c.sub.Name, c.now().Unix())
	msg := map[string]any{
		"id":      id,
		"type":    "start",
		"payload": map[string]any{"query": c.sub.Query},
	}
	if err := c.writeJSON(conn, msg); err != nil {
		return fmt.Errorf("send subscription %s: %w", id, err)
	}
	c.setState(StateSubscribed)
	logger.Infof("[Connector:%s] subscribed, id=%s", c.sub.Name, id)
	return nil
}

// receiveLoop 每个非控制帧恰好产生一条消息：建池事件或 raw 透传
func (c *Connector) receiveLoop(ctx context.Context, conn *websocket.Conn) (string, error) {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Infof("[Connector:%s] upstream closed the stream: %v", c.sub.Name, err)
				return "closed", nil
			}
			return "read", fmt.Errorf("read frame: %w", err)
		}
		if msgType != websocket.TextMessage {
			continue
		}
		metrics.FramesReceived.WithLabelValues(c.sub.Name).Inc()

		h, _ := parseHeader(data)
		switch kind := kindOf(h.Type); kind {
		case FramePing:
			if err := c.writeJSON(conn, map[string]any{"type": "pong"}); err != nil {
				return "write", fmt.Errorf("send pong: %w", err)
			}
			continue
		case FrameError, FrameConnectionError:
			logger.Warnf("[Connector:%s] upstream %s frame, id=%s: %s", c.sub.Name, kind, h.ID, string(h.Payload))
			continue
		case FrameComplete:
			logger.Infof("[Connector:%s] upstream completed subscription id=%s", c.sub.Name, h.ID)
			continue
		default:
			if kind.IsControl() {
				continue
			}
		}

		if err := c.forward(ctx, data); err != nil {
			if errors.Is(err, core.ErrConsumerGone) {
				logger.Infof("[Connector:%s] client disconnected, stopping stream", c.sub.Name)
				return "consumer_gone", nil
			}
			return "publish", err
		}
	}
}

// forward 解码失败时包装为 {"raw": text}，不丢帧
func (c *Connector) forward(ctx context.Context, data []byte) error {
	raw, err := utils.DecodeJSON(data)
	if err != nil {
		raw = map[string]any{"raw": string(data)}
	}

	var msg core.Message
	if ev := c.normalizer.Normalize(ctx, c.sub.Name, raw); ev != nil {
		msg, err = core.NewPoolCreationMessage(ev, c.now())
	} else {
		msg, err = core.NewRawMessage(c.sub.Name, raw, c.now())
	}
	if err != nil {
		logger.Errorf("[Connector:%s] build envelope failed: %v", c.sub.Name, err)
		return nil
	}

	if err := c.out.Publish(msg); err != nil {
		return err
	}
	metrics.MessagesPublished.WithLabelValues(c.sub.Name, msg.EventType).Inc()
	return nil
}

func (c *Connector) writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	return conn.WriteJSON(v)
}
