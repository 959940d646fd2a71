package console

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocketPath is the HTTP path of the websocket console.
const WebSocketPath = "/console"

// wsConn is a session over a websocket; each text message is one line.
type wsConn struct {
	conn *websocket.Conn
}

func (c *wsConn) ReadLine() (string, error) {
	for {
		kind, msg, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}
		if kind == websocket.TextMessage || kind == websocket.BinaryMessage {
			return string(msg), nil
		}
	}
}

func (c *wsConn) WriteText(text string) error {
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, []byte(text))
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

func (c *wsConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// startWebSocket serves the console over websocket on ln.
func (s *Server) startWebSocket(ln net.Listener) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  maxLine,
		WriteBufferSize: maxLine,
		CheckOrigin:     func(r *http.Request) bool { return true }, // local debug tool
	}

	mux := http.NewServeMux()
	mux.HandleFunc(WebSocketPath, func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		conn.SetReadLimit(maxLine)

		c := &wsConn{conn: conn}
		if !s.admit(c) {
			return
		}
		s.serve(c)
	})

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	s.stopper = func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		// Hijacked websocket connections are not tracked by Shutdown.
		return srv.Shutdown(ctx)
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Warn("console websocket server", "error", err)
		}
	}()
}
