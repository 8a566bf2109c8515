package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yourusername/bad-bets/internal/calculator"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next message or pong from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

type wsRequest struct {
	Kind   calculator.Kind        `json:"kind"`
	Inputs map[string]interface{} `json:"inputs"`
}

type wsResponse struct {
	Kind   calculator.Kind   `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
	Cached bool              `json:"cached,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// originUpgrader accepts websocket upgrades from the CORS origins. Like
// go-chi/cors, an empty list allows every origin.
type originUpgrader struct {
	websocket.Upgrader
	origins map[string]bool
	any     bool
}

func newOriginUpgrader(allowed []string) *originUpgrader {
	u := &originUpgrader{origins: make(map[string]bool, len(allowed)), any: len(allowed) == 0}
	for _, o := range allowed {
		if o == "*" {
			u.any = true
		}
		u.origins[strings.TrimRight(o, "/")] = true
	}
	u.Upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     u.checkOrigin,
	}
	return u
}

func (u *originUpgrader) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || u.any {
		return true
	}
	return u.origins[strings.TrimRight(origin, "/")]
}

// CalculateStream serves calculations over a websocket. Each text frame
// holds one request; the connection stays open after invalid input.
func (h *Handler) CalculateStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Debug("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
					return
				}
			}
		}
	}()

	ctx := r.Context()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.WithError(err).Debug("WebSocket closed unexpectedly")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		resp := h.handleFrame(ctx, data)
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(resp); err != nil {
			return
		}
	}
}

func (h *Handler) handleFrame(ctx context.Context, data []byte) wsResponse {
	var req wsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wsResponse{Error: "invalid request: " + err.Error()}
	}
	inputs, err := toInputs(req.Inputs)
	if err != nil {
		return wsResponse{Kind: req.Kind, Error: err.Error()}
	}
	calc, err := h.calculators.Calculate(ctx, req.Kind, inputs)
	if err != nil {
		if statusFor(err) == http.StatusInternalServerError {
			h.logger.WithError(err).Error("WebSocket calculation failed")
			return wsResponse{Kind: req.Kind, Error: "internal server error"}
		}
		return wsResponse{Kind: req.Kind, Error: err.Error()}
	}
	return wsResponse{Kind: calc.Kind, Fields: calc.Fields, Cached: calc.Cached}
}
