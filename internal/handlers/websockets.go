package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // clients only send control frames
	defaultInterval  = 2 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000

	msgState = "state"
	msgError = "error"
)

type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// stateStream pushes contest state to one client, skipping polls that found nothing new.
type stateStream struct {
	h    *Handler
	conn *websocket.Conn
	last []byte
}

// @Summary      Contest state stream
// @Description  WebSocket. Sends {"type":"state","data":ContestState} on connect and again whenever
// @Description  the polled state differs from what the client last received.
// @Tags         contest
// @Param        interval     query  string  false  "Poll interval as a Go duration, up to 10s"  example(2s)
// @Param        interval_ms  query  int     false  "Poll interval in milliseconds, up to 10000"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	closed := make(chan struct{})
	go h.drain(conn, closed)

	ctx := c.Request.Context()
	s := &stateStream{h: h, conn: conn}
	if err := s.push(ctx); err != nil {
		h.log.Infow("ws_initial_state_failed", "err", err)
		return
	}

	poll := time.NewTicker(interval)
	defer poll.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-poll.C:
			if err := s.push(ctx); err != nil {
				if !s.reportError() {
					return
				}
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000. Missing or out of range
// values fall back to the handler's configured interval.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return h.wsInterval
}

// drain reads until the client goes away so control frames get processed.
func (h *Handler) drain(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// push sends the current state unless it is byte-identical to the last one sent.
func (s *stateStream) push(ctx context.Context) error {
	st, err := s.h.services.Monitoring.GetState(ctx)
	if err != nil {
		s.h.log.Errorw("ws_get_state_failed", "err", err)
		return err
	}
	payload, err := json.Marshal(wsEnvelope{Type: msgState, Data: st})
	if err != nil {
		return err
	}
	if bytes.Equal(payload, s.last) {
		return nil
	}
	if err := s.write(payload); err != nil {
		return err
	}
	s.last = payload
	return nil
}

// reportError tells the client a poll failed; false means the connection is gone.
func (s *stateStream) reportError() bool {
	payload, _ := json.Marshal(wsEnvelope{Type: msgError, Error: errInternal})
	if err := s.write(payload); err != nil {
		s.h.log.Infow("ws_write_failed", "err", err)
		return false
	}
	return true
}

func (s *stateStream) write(payload []byte) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}
