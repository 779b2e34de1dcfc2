package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Cross-origin policy is enforced by the cors middleware; the
	// upgrade itself accepts any origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

// handleWebsocket streams live notifications to one front-end client.
func (s *Server) handleWebsocket(c *gin.Context) {
	if s.center == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "notifications unavailable"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed: %v", err)
		return
	}

	feed, cancel := s.center.Subscribe()
	defer cancel()
	defer conn.Close()

	// Reader only detects close; clients send nothing meaningful.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case n, ok := <-feed:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(n); err != nil {
				s.logger.Warn("websocket write failed: %v", err)
				return
			}
		}
	}
}
