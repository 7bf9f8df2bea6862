package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	EventTypePoolCreation = "pool_creation"
	EventTypeRaw          = "raw"
)

// ErrConsumerGone 合流通道的唯一消费者已离开，生产者应正常退出
var ErrConsumerGone = errors.New("output consumer gone")

// Subscription 一路上游订阅：名字 + 透传的查询文档
type Subscription struct {
	Name  string
	Query string
}

// Publisher 合流通道的生产端；满载时阻塞，消费者离开后返回 ErrConsumerGone
type Publisher interface {
	Publish(msg Message) error
}

// Envelope 下游可见的自描述消息
type Envelope struct {
	EventType    string `json:"event_type"`
	Subscription string `json:"subscription"`
	Timestamp    string `json:"timestamp"`
	Data         any    `json:"data"`
}

// Message 已序列化的 Envelope，附带分区 key（交易签名，raw 消息为空）
type Message struct {
	EventType    string
	Subscription string
	Key          string
	Payload      []byte
}

// SSEFrame 按 server-sent-events 格式封帧：data: <json>\n\n
func (m Message) SSEFrame() []byte {
	frame := make([]byte, 0, len(m.Payload)+8)
	frame = append(frame, "data: "...)
	frame = append(frame, m.Payload...)
	return append(frame, '\n', '\n')
}

// NewPoolCreationMessage 建池事件的 subscription 字段取协议展示名
func NewPoolCreationMessage(ev *PoolCreationEvent, now time.Time) (Message, error) {
	return newMessage(EventTypePoolCreation, ev.DexName, ev.TransactionSignature, ev, now)
}

// NewRawMessage 无法归一化的帧原样透传，subscription 字段取订阅名
func NewRawMessage(subscription string, raw any, now time.Time) (Message, error) {
	return newMessage(EventTypeRaw, subscription, "", raw, now)
}

func newMessage(eventType, subscription, key string, data any, now time.Time) (Message, error) {
	payload, err := json.Marshal(Envelope{
		EventType:    eventType,
		Subscription: subscription,
		Timestamp:    now.UTC().Format(time.RFC3339Nano),
		Data:         data,
	})
	if err != nil {
		return Message{}, fmt.Errorf("marshal %s envelope: %w", eventType, err)
	}
	return Message{
		EventType:    eventType,
		Subscription: subscription,
		Key:          key,
		Payload:      payload,
	}, nil
}
