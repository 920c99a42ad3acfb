package eventdata

import (
  "context"

  "github.com/yardsync-org/yardsync-backend/internal/socket"
)

type key struct{}

var eventDataKey key

// EventData collects hub messages produced while a service call runs inside a
// transaction. The handler broadcasts them only after the call returns, so a
// rolled-back transaction never announces anything.
type EventData struct {
  Messages []socket.Message
}

func WithEventData(ctx context.Context) context.Context {
  data := &EventData{
    Messages: make([]socket.Message, 0),
  }
  return context.WithValue(ctx, eventDataKey, data)
}

func GetEventData(ctx context.Context) *EventData {
  val := ctx.Value(eventDataKey)
  ed, ok := val.(*EventData)
  if !ok {
    return nil
  }
  return ed
}

func (d *EventData) AppendMessage(msg socket.Message) {
  d.Messages = append(d.Messages, msg)
}
