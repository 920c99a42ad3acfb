package requestdata

import (
  "context"

  "github.com/google/uuid"
)

type key struct{}

var requestDataKey key

// RequestData is the per-request session object populated by the auth
// middleware from the access token. It replaces any notion of ambient global
// auth state: everything downstream reads the identity from the context.
type RequestData struct {
  TokenString  string
  RefreshToken string
  UserID       uuid.UUID
  RoleID       uuid.UUID
  Email        string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
  return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
  val := ctx.Value(requestDataKey)
  if rd, ok := val.(*RequestData); ok {
    return rd
  }
  return nil
}
