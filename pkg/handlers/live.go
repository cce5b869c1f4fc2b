package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"photofolio-home/pkg/models"
	"photofolio-home/pkg/slideshow"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 512
	updateBuffer   = 16
)

// Live view message types
const (
	MessageState  = "state"
	MessageError  = "error"
	MessageSelect = "select"
)

// StateMessage carries the active slide and progress to the browser
type StateMessage struct {
	Type     string       `json:"type"`
	Slide    models.Slide `json:"slide"`
	Progress float64      `json:"progress"`
}

// ErrorMessage reports a rejected client message
type ErrorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// ClientMessage is sent by the browser
type ClientMessage struct {
	Type    string `json:"type"`
	SlideID int    `json:"slideId"`
}

// LiveHandler mounts one view per WebSocket connection and streams its state.
// The view is unmounted when the connection closes.
func (h *Handler) LiveHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	updates := make(chan models.Snapshot, updateBuffer)
	errs := make(chan string, updateBuffer)

	view, err := h.svc.NewView(slideshow.WithUpdates(func(snap models.Snapshot) {
		select {
		case updates <- snap:
		default:
			// Client is behind; the next tick carries the full state again
		}
	}))
	if err != nil {
		h.log.Error("failed to create live view", zap.Error(err))
		return
	}

	updates <- view.Snapshot()
	if err := view.Mount(); err != nil {
		h.log.Error("failed to mount live view", zap.Error(err))
		return
	}

	done := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(conn, updates, errs, done)
	}()

	log := h.log.With(zap.String("view", view.ID()))
	log.Debug("live view connected", zap.String("remote", r.RemoteAddr))

	h.readLoop(conn, view, errs)

	view.Unmount()
	close(done)
	<-writerDone
	log.Debug("live view disconnected")
}

func (h *Handler) readLoop(conn *websocket.Conn, view *slideshow.View, errs chan<- string) {
	conn.SetReadLimit(maxMessageSize)
	limiter := rate.NewLimiter(h.selectRate, h.selectBurst)
	rejected := h.svc.Metrics().RejectedMsgs

	reject := func(reason, message string) {
		rejected.WithLabelValues(reason).Inc()
		select {
		case errs <- message:
		default:
		}
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			reject("malformed", "invalid message")
			continue
		}
		if msg.Type != MessageSelect {
			reject("unknown_type", "unknown message type: "+msg.Type)
			continue
		}
		if !limiter.Allow() {
			reject("rate_limited", "too many messages")
			continue
		}

		if err := view.Select(msg.SlideID); err != nil {
			reject("unknown_slide", err.Error())
		}
	}
}

// writeLoop is the only writer of the connection
func (h *Handler) writeLoop(conn *websocket.Conn, updates <-chan models.Snapshot, errs <-chan string, done <-chan struct{}) {
	for {
		var msg any
		select {
		case <-done:
			return
		case snap := <-updates:
			msg = StateMessage{Type: MessageState, Slide: snap.Slide, Progress: snap.Progress}
		case text := <-errs:
			msg = ErrorMessage{Type: MessageError, Error: text}
		}

		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			h.log.Debug("live view write deadline failed", zap.Error(err))
		}
		if err := conn.WriteJSON(msg); err != nil {
			h.log.Debug("live view write failed", zap.Error(err))
			// Unblocks the read loop so the view gets unmounted
			_ = conn.Close()
			return
		}
	}
}
