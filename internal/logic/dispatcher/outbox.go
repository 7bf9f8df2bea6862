package dispatcher

import (
	"sync"

	"pool-sniffer-sol/internal/logic/core"
)

// Outbox 合流通道：N 个生产者，唯一消费者。
// 满载时 Publish 阻塞，直到消费者取走消息或调用 Close 离开。
type Outbox struct {
	ch        chan core.Message
	done      chan struct{}
	closeOnce sync.Once
}

func NewOutbox(capacity int) *Outbox {
	if capacity <= 0 {
		capacity = 1
	}
	return &Outbox{
		ch:   make(chan core.Message, capacity),
		done: make(chan struct{}),
	}
}

// Publish 消费者离开后返回 core.ErrConsumerGone
func (o *Outbox) Publish(msg core.Message) error {
	// 消费者已离开时不再入队，避免 select 随机选中仍有空位的 ch
	select {
	case <-o.done:
		return core.ErrConsumerGone
	default:
	}

	select {
	case o.ch <- msg:
		return nil
	case <-o.done:
		return core.ErrConsumerGone
	}
}

// Messages 所有生产者退出后关闭
func (o *Outbox) Messages() <-chan core.Message {
	return o.ch
}

// Close 由消费者调用，可重复调用
func (o *Outbox) Close() {
	o.closeOnce.Do(func() {
		close(o.done)
	})
}

// Done 消费者离开后关闭
func (o *Outbox) Done() <-chan struct{} {
	return o.done
}

func (o *Outbox) Len() int {
	return len(o.ch)
}

func (o *Outbox) Cap() int {
	return cap(o.ch)
}
