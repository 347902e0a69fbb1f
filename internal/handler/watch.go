// Package handler holds shared HTTP handler helpers.
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agendou/agendou-api/internal/repository"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

const writeTimeout = 10 * time.Second

// ServeWatch upgrades the request to a websocket and forwards every live
// query snapshot as one JSON message. The subscription is released when
// either side goes away.
func ServeWatch[T any](c *gin.Context, sub *repository.Subscription[T], logger zerolog.Logger) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sub.Close()
		return
	}
	defer conn.Close()
	defer sub.Close()

	// Read pump: the only reason to read is to notice the peer closing.
	peerGone := make(chan struct{})
	go func() {
		defer close(peerGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snapshot, ok := <-sub.Updates():
			if !ok {
				if err := sub.Err(); err != nil {
					logger.Warn().Err(err).Str("path", c.Request.URL.Path).Msg("watch stream failed upstream")
				}
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(snapshot); err != nil {
				return
			}
		case <-peerGone:
			return
		}
	}
}
