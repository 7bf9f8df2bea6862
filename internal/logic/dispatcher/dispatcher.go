package dispatcher

import (
	"context"
	"sync"

	"github.com/zeromicro/go-zero/core/threading"

	"pool-sniffer-sol/internal/logic/core"
	"pool-sniffer-sol/pkg/logger"
)

// Runner 一路上游订阅的生产者；Run 返回即该路结束，不会重启
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFactory 为订阅创建生产者，所有生产者共享同一个 Publisher
type RunnerFactory func(sub core.Subscription, out core.Publisher) (Runner, error)

// Dispatcher 每次 Start 启动一轮：为每个订阅起一个生产者，汇入同一个 Outbox
type Dispatcher struct {
	factory  RunnerFactory
	subs     []core.Subscription
	capacity int
}

func NewDispatcher(factory RunnerFactory, subs []core.Subscription, capacity int) *Dispatcher {
	return &Dispatcher{
		factory:  factory,
		subs:     append([]core.Subscription(nil), subs...),
		capacity: capacity,
	}
}

func (d *Dispatcher) Subscriptions() []core.Subscription {
	return append([]core.Subscription(nil), d.subs...)
}

// Start 返回的 Outbox 在所有生产者退出后关闭 Messages()；
// 消费者离开时应调用 Outbox.Close，生产者在下一次 Publish 时退出。
func (d *Dispatcher) Start(ctx context.Context) *Outbox {
	out := NewOutbox(d.capacity)

	var wg sync.WaitGroup
	for _, sub := range d.subs {
		runner, err := d.factory(sub, out)
		if err != nil {
			logger.Errorf("[Dispatcher:Start] 创建订阅 %s 失败: %v", sub.Name, err)
			continue
		}

		name := sub.Name
		wg.Add(1)
		threading.GoSafe(func() {
			defer wg.Done()
			if err := runner.Run(ctx); err != nil {
				logger.Errorf("[Dispatcher:%s] subscription terminated: %v", name, err)
				return
			}
			logger.Infof("[Dispatcher:%s] subscription stopped", name)
		})
	}

	threading.GoSafe(func() {
		wg.Wait()
		close(out.ch)
	})
	return out
}
