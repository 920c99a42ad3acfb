package socket

import (
  "context"
  "encoding/json"
  "fmt"
  "sync"

  "github.com/redis/go-redis/v9"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
)

// RedisPubSub bridges hub broadcasts between nodes: every BroadcastGlobal is
// published to one redis channel, and every node re-delivers what it hears to
// its local subscribers.
type RedisPubSub struct {
  log        *logger.Logger
  client     *redis.Client
  channel    string
  cancelFunc context.CancelFunc
  mu         sync.Mutex
}

func NewRedisPubSub(log *logger.Logger, address, password, channel string) (*RedisPubSub, error) {
  opt := &redis.Options{
    Addr:     address,
    Password: password,
    DB:       0,
  }
  rdb := redis.NewClient(opt)
  if err := rdb.Ping(context.Background()).Err(); err != nil {
    return nil, fmt.Errorf("failed to ping redis at '%s': %w", address, err)
  }
  return &RedisPubSub{
    log:     log.With("component", "RedisPubSub"),
    client:  rdb,
    channel: channel,
  }, nil
}

// Publish sends a hub message to the shared redis channel.
func (rp *RedisPubSub) Publish(msg Message) error {
  payload, err := json.Marshal(msg)
  if err != nil {
    return fmt.Errorf("failed to marshal message for redis: %w", err)
  }
  return rp.client.Publish(context.Background(), rp.channel, payload).Err()
}

// StartSubscriber begins re-delivering remote broadcasts into the local hub.
func (rp *RedisPubSub) StartSubscriber(hub *Hub) error {
  rp.mu.Lock()
  defer rp.mu.Unlock()
  if rp.cancelFunc != nil {
    return fmt.Errorf("redis subscriber already started")
  }

  ctx, cancel := context.WithCancel(context.Background())
  rp.cancelFunc = cancel

  sub := rp.client.Subscribe(ctx, rp.channel)
  go func() {
    defer sub.Close()
    ch := sub.Channel()
    for {
      select {
      case <-ctx.Done():
        rp.log.Debug("redis subscriber shutting down")
        return
      case m, ok := <-ch:
        if !ok {
          rp.log.Warn("redis subscription channel closed")
          return
        }
        var msg Message
        if err := json.Unmarshal([]byte(m.Payload), &msg); err != nil {
          rp.log.Warn("failed to unmarshal redis payload", "error", err)
          continue
        }
        hub.localBroadcast(msg)
      }
    }
  }()
  return nil
}

// Stop tears down the subscriber and the redis connection.
func (rp *RedisPubSub) Stop() {
  rp.mu.Lock()
  defer rp.mu.Unlock()
  if rp.cancelFunc != nil {
    rp.cancelFunc()
    rp.cancelFunc = nil
  }
  if err := rp.client.Close(); err != nil {
    rp.log.Warn("failed closing redis client", "error", err)
  }
}
