package handlers

import (
  "context"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/gorilla/websocket"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/requestdata"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
)

var upgrader = websocket.Upgrader{
  CheckOrigin: func(r *http.Request) bool {
    return true
  },
}

// WsHandler upgrades the request and subscribes the client to its private
// channel plus the shared yard channels. Extra channels can be requested
// over the socket itself via subscribe frames.
func WsHandler(hub *socket.Hub, log *logger.Logger) gin.HandlerFunc {
  return func(c *gin.Context) {
    rd := requestdata.GetRequestData(c.Request.Context())
    if rd == nil || rd.UserID == uuid.Nil {
      c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
      return
    }
    conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
    if err != nil {
      log.Warn("Failed to upgrade to websocket", "error", err)
      return
    }

    ctx, cancel := context.WithCancel(context.Background())
    client := socket.NewClient(conn, hub, rd.UserID, cancel, log)

    channels := []string{
      socket.UserChannel(rd.UserID),
      socket.ChannelTrucks,
      socket.ChannelGate,
      socket.ChannelWeighbridge,
      socket.ChannelDocks,
      socket.ChannelHandovers,
    }
    hub.Subscribe(client, channels)

    go client.WriteLoop(ctx)
    go client.ReadLoop(ctx)
  }
}
