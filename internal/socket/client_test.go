package socket

import (
  "context"
  "net/http"
  "net/http/httptest"
  "strings"
  "sync"
  "testing"
  "time"

  "github.com/google/uuid"
  "github.com/gorilla/websocket"
)

// dialTestClient upgrades a real connection and hands back the server-side
// client plus the peer connection, so teardown paths run against live sockets.
func dialTestClient(t *testing.T, hub *Hub) (*Client, *websocket.Conn, context.Context) {
  t.Helper()

  upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
  serverConns := make(chan *websocket.Conn, 1)
  srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
    conn, err := upgrader.Upgrade(w, r, nil)
    if err != nil {
      t.Errorf("upgrade failed: %v", err)
      return
    }
    serverConns <- conn
  }))
  t.Cleanup(srv.Close)

  peer, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
  if err != nil {
    t.Fatalf("dial failed: %v", err)
  }
  t.Cleanup(func() { _ = peer.Close() })

  var serverConn *websocket.Conn
  select {
  case serverConn = <-serverConns:
  case <-time.After(2 * time.Second):
    t.Fatal("server never saw the connection")
  }

  ctx, cancel := context.WithCancel(context.Background())
  t.Cleanup(cancel)
  client := NewClient(serverConn, hub, uuid.New(), cancel, hub.log)
  return client, peer, ctx
}

func TestClientCloseIdempotent(t *testing.T) {
  hub := newTestHub(t)
  client, _, _ := dialTestClient(t, hub)
  hub.Subscribe(client, []string{ChannelTrucks})

  client.close()
  client.close()

  if _, ok := <-client.Outbound; ok {
    t.Error("outbound channel should be closed and drained")
  }
  hub.BroadcastGlobal(context.Background(), Message{Channel: ChannelTrucks, Payload: "late"})
}

func TestClientLoopsSurvivePeerDisconnect(t *testing.T) {
  hub := newTestHub(t)
  client, peer, ctx := dialTestClient(t, hub)
  hub.Subscribe(client, []string{ChannelTrucks, UserChannel(client.ID)})

  var wg sync.WaitGroup
  panics := make(chan interface{}, 2)
  runLoop := func(loop func(context.Context)) {
    defer wg.Done()
    defer func() {
      if r := recover(); r != nil {
        panics <- r
      }
    }()
    loop(ctx)
  }
  wg.Add(2)
  go runLoop(client.WriteLoop)
  go runLoop(client.ReadLoop)

  _ = peer.Close()

  done := make(chan struct{})
  go func() {
    wg.Wait()
    close(done)
  }()
  select {
  case <-done:
  case <-time.After(3 * time.Second):
    t.Fatal("client loops did not shut down after peer disconnect")
  }

  select {
  case r := <-panics:
    t.Fatalf("client loop panicked on normal disconnect: %v", r)
  default:
  }

  hub.BroadcastGlobal(context.Background(), Message{Channel: ChannelTrucks, Payload: "after"})
}
