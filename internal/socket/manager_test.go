package socket

import (
  "context"
  "testing"

  "github.com/google/uuid"

  "github.com/yardsync-org/yardsync-backend/internal/logger"
)

func newTestHub(t *testing.T) *Hub {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("failed to build logger: %v", err)
  }
  return NewHub(log)
}

func newTestClient() *Client {
  return &Client{
    ID:       uuid.New(),
    Outbound: make(chan Message, OutboundChanBuffer),
  }
}

func TestUserChannel(t *testing.T) {
  uid := uuid.MustParse("3f1c8a4e-0000-4000-8000-00000000beef")
  if got := UserChannel(uid); got != "user:"+uid.String() {
    t.Errorf("UserChannel = %q", got)
  }
}

func TestSubscribeAndBroadcast(t *testing.T) {
  hub := newTestHub(t)
  client := newTestClient()
  hub.Subscribe(client, []string{ChannelTrucks, UserChannel(client.ID)})

  hub.BroadcastGlobal(context.Background(), Message{Channel: ChannelTrucks, Payload: "moved"})
  select {
  case msg := <-client.Outbound:
    if msg.Channel != ChannelTrucks {
      t.Errorf("delivered channel = %q, want %q", msg.Channel, ChannelTrucks)
    }
  default:
    t.Fatal("subscribed client received nothing")
  }

  hub.BroadcastGlobal(context.Background(), Message{Channel: ChannelDocks, Payload: "ignored"})
  select {
  case msg := <-client.Outbound:
    t.Errorf("client received message on unsubscribed channel %q", msg.Channel)
  default:
  }
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
  hub := newTestHub(t)
  client := newTestClient()
  hub.Subscribe(client, []string{ChannelGate})
  hub.Unsubscribe(client)

  hub.BroadcastGlobal(context.Background(), Message{Channel: ChannelGate, Payload: "verified"})
  select {
  case <-client.Outbound:
    t.Error("unsubscribed client still received a message")
  default:
  }
}

func TestUnsubscribeFromChannelKeepsOthers(t *testing.T) {
  hub := newTestHub(t)
  client := newTestClient()
  hub.Subscribe(client, []string{ChannelGate, ChannelWeighbridge})
  hub.UnsubscribeFromChannel(client, ChannelGate)

  hub.BroadcastGlobal(context.Background(), Message{Channel: ChannelWeighbridge, Payload: "weighed"})
  select {
  case msg := <-client.Outbound:
    if msg.Channel != ChannelWeighbridge {
      t.Errorf("delivered channel = %q", msg.Channel)
    }
  default:
    t.Error("client should still receive the channel it kept")
  }
}
