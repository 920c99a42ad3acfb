package handlers

import (
  "fmt"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yardsync-org/yardsync-backend/internal/errordata"
  "github.com/yardsync-org/yardsync-backend/internal/eventdata"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
)

// flushEvents broadcasts the messages a service queued during its
// transaction. It runs after the service returned, so everything queued has
// already been committed.
func flushEvents(c *gin.Context, hub *socket.Hub) {
  ed := eventdata.GetEventData(c.Request.Context())
  if ed == nil || len(ed.Messages) == 0 {
    return
  }
  for _, msg := range ed.Messages {
    hub.BroadcastGlobal(c.Request.Context(), msg)
  }
  ed.Messages = nil
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
  raw := c.Param(name)
  id, err := uuid.Parse(raw)
  if err != nil {
    return uuid.Nil, fmt.Errorf("invalid %s '%s'", name, raw)
  }
  return id, nil
}

// userError prefers a message a service stashed on the context for the
// caller over the raw error text.
func userError(c *gin.Context, err error) string {
  if ed := errordata.GetErrorData(c.Request.Context()); ed != nil && ed.HasMessage() {
    return ed.Message
  }
  return err.Error()
}

func parseUUID(raw, name string) (uuid.UUID, error) {
  id, err := uuid.Parse(raw)
  if err != nil {
    return uuid.Nil, fmt.Errorf("invalid %s '%s'", name, raw)
  }
  return id, nil
}

// parseWindow reads "from" and "to" query params (RFC 3339 or YYYY-MM-DD).
// Missing values default to the last 24 hours.
func parseWindow(c *gin.Context) (time.Time, time.Time, error) {
  now := time.Now()
  from := now.Add(-24 * time.Hour)
  to := now
  if raw := c.Query("from"); raw != "" {
    parsed, err := parseTimeParam(raw)
    if err != nil {
      return time.Time{}, time.Time{}, fmt.Errorf("invalid 'from': %w", err)
    }
    from = parsed
  }
  if raw := c.Query("to"); raw != "" {
    parsed, err := parseTimeParam(raw)
    if err != nil {
      return time.Time{}, time.Time{}, fmt.Errorf("invalid 'to': %w", err)
    }
    to = parsed
  }
  if to.Before(from) {
    return time.Time{}, time.Time{}, fmt.Errorf("'to' must not be before 'from'")
  }
  return from, to, nil
}

func parseTimeParam(raw string) (time.Time, error) {
  if t, err := time.Parse(time.RFC3339, raw); err == nil {
    return t, nil
  }
  return time.ParseInLocation("2006-01-02", raw, time.Local)
}
