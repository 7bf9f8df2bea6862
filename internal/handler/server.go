package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pool-sniffer-sol/internal/svc"
	"pool-sniffer-sol/pkg/logger"
)

const (
	defaultStreamPath      = "/stream"
	defaultShutdownTimeout = 5 * time.Second
	defaultReadTimeout     = 10 * time.Second
	defaultIdleTimeout     = 60 * time.Second
)

var defaultAllowedOrigins = []string{"http://localhost:3000"}

// RouterOption 路由参数，零值字段取默认
type RouterOption struct {
	StreamPath     string
	AllowedOrigins []string
}

// NewRouter 挂载 SSE 推送、/healthz 与 /metrics；CORS 只作用于推送路径
func NewRouter(opt RouterOption, stream http.Handler) http.Handler {
	if opt.StreamPath == "" {
		opt.StreamPath = defaultStreamPath
	}
	if len(opt.AllowedOrigins) == 0 {
		opt.AllowedOrigins = defaultAllowedOrigins
	}

	withCors := cors.Handler(cors.Options{
		AllowedOrigins: opt.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet},
		AllowedHeaders: []string{"Content-Type", "Accept", "Authorization"},
		MaxAge:         3600,
	})

	mux := http.NewServeMux()
	mux.Handle(opt.StreamPath, withCors(stream))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

// HttpServer 实现 go-zero service.Service，交给 ServiceGroup 管理
type HttpServer struct {
	srv             *http.Server
	shutdownTimeout time.Duration
}

func NewHttpServer(sc *svc.ServiceContext) *HttpServer {
	c := sc.Config.Http
	router := NewRouter(RouterOption{
		StreamPath:     c.StreamPath,
		AllowedOrigins: c.AllowedOrigins,
	}, NewStreamHandler(sc.Dispatcher))

	shutdownTimeout := time.Duration(c.ShutdownTimeoutSec) * time.Second
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &HttpServer{
		srv: &http.Server{
			Addr:        c.Addr,
			Handler:     router,
			ReadTimeout: defaultReadTimeout,
			IdleTimeout: defaultIdleTimeout,
			// SSE 长连接，不设写超时
			WriteTimeout: 0,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (s *HttpServer) Start() {
	logger.Infof("[HttpServer:Start] listening on %s", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Errorf("[HttpServer:Start] server error: %v", err)
	}
}

func (s *HttpServer) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		logger.Warnf("[HttpServer:Stop] graceful shutdown failed: %v", err)
		_ = s.srv.Close()
		return
	}
	logger.Infof("[HttpServer:Stop] server stopped")
}
