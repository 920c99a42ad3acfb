package socket

import (
  "context"
  "encoding/json"
  "net"
  "sync"
  "time"

  "github.com/google/uuid"
  "github.com/gorilla/websocket"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
)

// InboundMessage is the only client->server frame: channel management.
type InboundMessage struct {
  Action  string `json:"action,omitempty"`  // "subscribe" | "unsubscribe"
  Channel string `json:"channel,omitempty"` // channel name
}

const (
  OutboundChanBuffer = 256

  writeWait  = 10 * time.Second
  pongWait   = 60 * time.Second
  pingPeriod = (pongWait * 9) / 10
)

type Client struct {
  ID        uuid.UUID
  Conn      *websocket.Conn
  Hub       *Hub
  Log       *logger.Logger
  cancelFn  context.CancelFunc
  Outbound  chan Message
  closeOnce sync.Once
}

// NewClient constructs a fully-initialised Client. The cancel function comes
// from the handler so the HTTP context can finish while the WS lives on.
func NewClient(conn *websocket.Conn, hub *Hub, uid uuid.UUID,
  cancel context.CancelFunc, log *logger.Logger) *Client {

  return &Client{
    ID:       uid,
    Conn:     conn,
    Hub:      hub,
    Log:      log,
    cancelFn: cancel,
    Outbound: make(chan Message, OutboundChanBuffer),
  }
}

func (c *Client) ReadLoop(ctx context.Context)  { c.readLoop(ctx) }
func (c *Client) WriteLoop(ctx context.Context) { c.writeLoop(ctx) }

// readLoop pumps inbound frames into the hub.
func (c *Client) readLoop(ctx context.Context) {
  defer c.close()

  c.Conn.SetReadLimit(1 << 20)
  _ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
  c.Conn.SetPongHandler(func(string) error {
    _ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
    return nil
  })

  for {
    select {
    case <-ctx.Done():
      return

    default:
      _, data, err := c.Conn.ReadMessage()
      if err != nil {
        if ne, ok := err.(net.Error); !ok || !ne.Temporary() {
          c.Log.Debug("websocket read error, closing client", "error", err)
          return
        }
        continue
      }

      var inbound InboundMessage
      if err := json.Unmarshal(data, &inbound); err != nil {
        c.Log.Debug("failed to unmarshal inbound message",
          "error", err, "raw", string(data))
        continue
      }

      switch inbound.Action {
      case "subscribe":
        if inbound.Channel != "" {
          c.Hub.Subscribe(c, []string{inbound.Channel})
          c.Log.Debug("client subscribed",
            "channel", inbound.Channel, "client", c.ID)
        }
      case "unsubscribe":
        if inbound.Channel != "" {
          c.Hub.UnsubscribeFromChannel(c, inbound.Channel)
          c.Log.Debug("client unsubscribed",
            "channel", inbound.Channel, "client", c.ID)
        }
      default:
        c.Log.Debug("inbound WS message unhandled",
          "client", c.ID, "message", inbound)
      }
    }
  }
}

// writeLoop pumps hub messages onto the wire and keeps the connection alive.
func (c *Client) writeLoop(ctx context.Context) {
  ticker := time.NewTicker(pingPeriod)
  defer func() {
    ticker.Stop()
    c.close()
  }()

  for {
    select {
    case <-ctx.Done():
      c.Log.Debug("writeLoop ctx done, shutting down", "client", c.ID)
      return

    case msg, ok := <-c.Outbound:
      _ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
      if !ok {
        c.Log.Debug("outbound channel closed, shutting down", "client", c.ID)
        _ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
        return
      }
      if err := c.writeJSON(msg); err != nil {
        c.Log.Warn("failed writing JSON", "client", c.ID, "error", err)
        return
      }

    case <-ticker.C:
      _ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
      if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
        c.Log.Debug("ping error, shutting down", "client", c.ID, "error", err)
        return
      }
    }
  }
}

func (c *Client) writeJSON(v interface{}) error {
  payload, err := json.Marshal(v)
  if err != nil {
    return err
  }
  w, err := c.Conn.NextWriter(websocket.TextMessage)
  if err != nil {
    return err
  }
  if _, err = w.Write(payload); err != nil {
    _ = w.Close()
    return err
  }
  return w.Close()
}

// close tears the client down exactly once. Both pump loops defer it, so the
// Once guard keeps the second caller from double-closing Outbound. The hub
// unsubscribe happens before the channel close: localBroadcast sends under the
// hub read lock, so once Unsubscribe returns no sender can hold the channel.
func (c *Client) close() {
  c.closeOnce.Do(func() {
    c.Log.Debug("closing client connection", "client", c.ID)
    if c.cancelFn != nil {
      c.cancelFn()
    }
    c.Hub.Unsubscribe(c)
    close(c.Outbound)
    _ = c.Conn.Close()
  })
}
