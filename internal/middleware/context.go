package middleware

import (
  "github.com/gin-gonic/gin"

  "github.com/yardsync-org/yardsync-backend/internal/errordata"
  "github.com/yardsync-org/yardsync-backend/internal/eventdata"
)

// AttachRequestContext seeds the per-request carriers every handler relies
// on: the outbound socket message queue and the user-facing error slot.
func AttachRequestContext() gin.HandlerFunc {
  return func(c *gin.Context) {
    ctx := c.Request.Context()
    ctx = eventdata.WithEventData(ctx)
    ctx = errordata.WithErrorData(ctx)
    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}
