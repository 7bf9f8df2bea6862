package main

import (
	"flag"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	zerosvc "github.com/zeromicro/go-zero/core/service"

	"pool-sniffer-sol/internal/config"
	"pool-sniffer-sol/internal/handler"
	"pool-sniffer-sol/internal/metrics"
	"pool-sniffer-sol/internal/mq"
	"pool-sniffer-sol/internal/svc"
	"pool-sniffer-sol/pkg/logger"
)

var configFile = flag.String("f", "etc/stream.yaml", "the config file")

func main() {
	defer func() {
		if r := recover(); r != nil {
			logx.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
		}
	}()

	flag.Parse()

	var c config.StreamConfig
	conf.MustLoad(*configFile, &c, conf.UseEnv())

	if err := logger.Init(c.LogConf.ToLogOption()); err != nil {
		logx.Must(err)
	}
	defer logger.Sync()

	metrics.Register()

	serviceContext, err := svc.NewServiceContext(c)
	if err != nil {
		logx.Must(err)
	}
	defer serviceContext.Close()

	sg := zerosvc.NewServiceGroup()
	sg.Add(handler.NewHttpServer(serviceContext))
	if serviceContext.Producer != nil {
		sg.Add(mq.NewEventRelay(serviceContext.Dispatcher, serviceContext.Producer, c.Relay.ToRelayOption()))
	}

	logx.Infof("Starting pool stream service on %s%s", c.Http.Addr, c.Http.StreamPath)
	go sg.Start()

	// 等待退出信号
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logx.Info("Shutting down services...")
	sg.Stop()
}
