package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"StockAnalyzer/internal/validator"
)

const (
	wsWriteWait    = 10 * time.Second
	wsPongWait     = 90 * time.Second
	wsPingPeriod   = 45 * time.Second
	wsMaxMessage   = 4096
	wsOutboxLength = 4
)

// wsMessage is a server to client frame.
type wsMessage struct {
	Type    string        `json:"type"`
	Data    *AnalysisBody `json:"data,omitempty"`
	Status  int           `json:"status,omitempty"`
	Message string        `json:"message,omitempty"`
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	if !s.cfg.Server.EnableCORS {
		return false
	}
	for _, o := range s.cfg.Server.AllowedOrigins {
		o = strings.TrimSpace(o)
		if o == "*" || strings.EqualFold(strings.TrimRight(o, "/"), origin) {
			return true
		}
	}
	return false
}

// serveWS runs one analysis per inbound request message and replies with the
// result or an error frame. Requests on one connection are handled in order.
func (s *Server) serveWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("ip", c.ClientIP()).Msg("websocket upgrade failed")
		return
	}
	remote := c.ClientIP()
	log.Info().Str("ip", remote).Msg("websocket connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan wsMessage, wsOutboxLength)
	done := make(chan struct{})
	go wsWriter(conn, out, done)

	conn.SetReadLimit(wsMaxMessage)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("ip", remote).Msg("websocket read failed")
			}
			break
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))

		msg := s.handleWSRequest(ctx, data)
		select {
		case out <- msg:
		case <-done:
			log.Info().Str("ip", remote).Msg("websocket closed")
			return
		}
	}

	close(out)
	<-done
	log.Info().Str("ip", remote).Msg("websocket closed")
}

func (s *Server) handleWSRequest(ctx context.Context, data []byte) wsMessage {
	var req validator.AnalysisRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return wsMessage{Type: "error", Status: http.StatusBadRequest, Message: "Malformed request, expected {\"symbol\",\"days\",\"refresh\"}"}
	}
	body, err := s.analyze(ctx, &req)
	if err != nil {
		status, msg := classify(err, req.Symbol)
		log.Warn().Err(err).Str("symbol", req.Symbol).Int("status", status).Msg("websocket analysis failed")
		return wsMessage{Type: "error", Status: status, Message: msg}
	}
	return wsMessage{Type: "analysis", Data: body}
}

// wsWriter owns all writes to conn. It pings on a ticker and exits when out
// is closed or a write fails.
func wsWriter(conn *websocket.Conn, out <-chan wsMessage, done chan<- struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-out:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				log.Warn().Err(err).Msg("websocket write failed")
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
