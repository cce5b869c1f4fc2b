package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"photofolio-home/pkg/scheduler"
	"photofolio-home/pkg/services"
)

type liveFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
	Slide struct {
		ID int `json:"id"`
	} `json:"slide"`
	Progress float64 `json:"progress"`
}

func dialLive(t *testing.T, opts Options) (*websocket.Conn, *services.Service, *scheduler.ManualScheduler) {
	t.Helper()
	svc, sched := newTestService(t)
	srv := httptest.NewServer(New(svc, nil, opts).Router())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + LivePath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, svc, sched
}

func readFrame(t *testing.T, conn *websocket.Conn) liveFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame liveFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func sendSelect(t *testing.T, conn *websocket.Conn, id int) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(ClientMessage{Type: MessageSelect, SlideID: id}))
}

func TestLiveViewStreamsState(t *testing.T) {
	conn, svc, sched := dialLive(t, Options{})

	first := readFrame(t, conn)
	assert.Equal(t, MessageState, first.Type)
	assert.Equal(t, 1, first.Slide.ID)
	assert.Equal(t, 0.0, first.Progress)
	assert.Equal(t, 1, svc.MountedViews())

	sched.Advance(100 * time.Millisecond)
	tick := readFrame(t, conn)
	assert.Equal(t, 1, tick.Slide.ID)
	assert.Equal(t, 2.0, tick.Progress)

	sendSelect(t, conn, 3)
	selected := readFrame(t, conn)
	assert.Equal(t, 3, selected.Slide.ID)
	assert.Equal(t, 0.0, selected.Progress)

	sendSelect(t, conn, 99)
	rejected := readFrame(t, conn)
	assert.Equal(t, MessageError, rejected.Type)
	assert.Contains(t, rejected.Error, "unknown slide")
}

func TestLiveViewRejectsBadMessages(t *testing.T) {
	conn, svc, _ := dialLive(t, Options{})
	readFrame(t, conn)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	assert.Equal(t, MessageError, readFrame(t, conn).Type)

	data, err := json.Marshal(map[string]string{"type": "jump"})
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
	frame := readFrame(t, conn)
	assert.Equal(t, MessageError, frame.Type)
	assert.Contains(t, frame.Error, "jump")

	rejected := svc.Metrics().RejectedMsgs
	assert.Equal(t, 1.0, testutil.ToFloat64(rejected.WithLabelValues("malformed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(rejected.WithLabelValues("unknown_type")))
}

func TestLiveViewRateLimitsSelects(t *testing.T) {
	conn, _, _ := dialLive(t, Options{SelectRate: rate.Every(time.Hour), SelectBurst: 1})
	readFrame(t, conn)

	sendSelect(t, conn, 2)
	assert.Equal(t, 2, readFrame(t, conn).Slide.ID)

	sendSelect(t, conn, 3)
	frame := readFrame(t, conn)
	assert.Equal(t, MessageError, frame.Type)
	assert.Equal(t, "too many messages", frame.Error)
}

func TestLiveViewUnmountsOnClose(t *testing.T) {
	conn, svc, sched := dialLive(t, Options{})
	readFrame(t, conn)
	require.Equal(t, 1, sched.Live())

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool {
		return svc.MountedViews() == 0 && sched.Live() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
