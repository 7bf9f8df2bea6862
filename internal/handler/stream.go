package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"pool-sniffer-sol/internal/logic/dispatcher"
	"pool-sniffer-sol/internal/metrics"
	"pool-sniffer-sol/pkg/logger"
)

// StreamSource 每次调用启动一轮合流，返回该轮独占的 Outbox
type StreamSource interface {
	Start(ctx context.Context) *dispatcher.Outbox
}

// StreamHandler SSE 推送：每个客户端对应一轮独立的订阅
type StreamHandler struct {
	source StreamSource
}

func NewStreamHandler(source StreamSource) *StreamHandler {
	return &StreamHandler{source: source}
}

func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	session := uuid.NewString()
	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	metrics.StreamClients.Inc()
	defer metrics.StreamClients.Dec()

	ctx := r.Context()
	out := h.source.Start(ctx)
	defer out.Close()

	logger.Infof("[Stream:%s] client connected, remote=%s", session, r.RemoteAddr)

	var sent int
	for {
		select {
		case <-ctx.Done():
			logger.Infof("[Stream:%s] client disconnected, sent=%d", session, sent)
			return
		case msg, ok := <-out.Messages():
			if !ok {
				logger.Infof("[Stream:%s] all subscriptions ended, sent=%d", session, sent)
				return
			}
			if _, err := w.Write(msg.SSEFrame()); err != nil {
				logger.Warnf("[Stream:%s] write failed: %v", session, err)
				return
			}
			flusher.Flush()
			sent++
		}
	}
}
