package handler

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pool-sniffer-sol/internal/logic/core"
	"pool-sniffer-sol/internal/logic/dispatcher"
)

// scriptedRunner 依次推送固定条数后退出；count < 0 表示一直推送直到消费者离开
type scriptedRunner struct {
	sub     core.Subscription
	out     core.Publisher
	count   int
	stopped chan error
}

func (r *scriptedRunner) Run(context.Context) error {
	for i := 0; r.count < 0 || i < r.count; i++ {
		msg, err := core.NewRawMessage(r.sub.Name, map[string]any{"seq": i}, time.Unix(1717243200, 0))
		if err != nil {
			return err
		}
		if err := r.out.Publish(msg); err != nil {
			if r.stopped != nil {
				r.stopped <- err
			}
			if errors.Is(err, core.ErrConsumerGone) {
				return nil
			}
			return err
		}
	}
	return nil
}

func newScriptedDispatcher(count int, stopped chan error) *dispatcher.Dispatcher {
	factory := func(sub core.Subscription, out core.Publisher) (dispatcher.Runner, error) {
		return &scriptedRunner{sub: sub, out: out, count: count, stopped: stopped}, nil
	}
	return dispatcher.NewDispatcher(factory, []core.Subscription{{Name: "combined"}}, 4)
}

func TestStreamHandler_WritesSSEFramesUntilSubscriptionsEnd(t *testing.T) {
	srv := httptest.NewServer(NewStreamHandler(newScriptedDispatcher(2, nil)))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))

	var frames []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		require.True(t, strings.HasPrefix(line, "data: "), "unexpected line %q", line)
		frames = append(frames, strings.TrimPrefix(line, "data: "))
	}

	require.Len(t, frames, 2)
	for i, f := range frames {
		assert.Contains(t, f, `"event_type":"raw"`)
		assert.Contains(t, f, `"subscription":"combined"`)
		assert.Contains(t, f, fmt.Sprintf(`"seq":%d`, i))
	}
}

func TestStreamHandler_ClientDisconnectStopsProducers(t *testing.T) {
	stopped := make(chan error, 1)
	srv := httptest.NewServer(NewStreamHandler(newScriptedDispatcher(-1, stopped)))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(line, "data: "))

	cancel()
	_ = resp.Body.Close()

	select {
	case err := <-stopped:
		assert.ErrorIs(t, err, core.ErrConsumerGone)
	case <-time.After(3 * time.Second):
		t.Fatal("producer kept running after client left")
	}
}

func TestStreamHandler_RejectsNonGet(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/stream", nil)
	NewStreamHandler(newScriptedDispatcher(0, nil)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
