package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/EGarpxMaster/analisis-aforo-vehicular/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// DatasetWebSocket polls the data directory and tells the browser when a CSV
// file was added, removed or rewritten so the page can reload.
func DatasetWebSocket(dataDir string, interval time.Duration, logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(c.Request.Context())
		defer cancel()

		// Read pump: detect client disconnect
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		last, err := services.Fingerprint(dataDir)
		if err != nil {
			logger.Warn().Err(err).Str("dir", dataDir).Msg("dataset fingerprint failed")
		}
		if err := conn.WriteJSON(gin.H{"type": "dataset_state", "data": gin.H{"fingerprint": last}}); err != nil {
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				current, err := services.Fingerprint(dataDir)
				if err != nil || current == last {
					continue
				}
				last = current
				err = conn.WriteJSON(gin.H{
					"type": "dataset_changed",
					"data": gin.H{"fingerprint": current},
				})
				if err != nil {
					logger.Debug().Err(err).Msg("ws write error")
					return
				}
			}
		}
	}
}
