package middleware

import (
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yardsync-org/yardsync-backend/internal/access"
  "github.com/yardsync-org/yardsync-backend/internal/logger"
  "github.com/yardsync-org/yardsync-backend/internal/repos"
  "github.com/yardsync-org/yardsync-backend/internal/requestdata"
  "github.com/yardsync-org/yardsync-backend/internal/services"
)

type AuthMiddleware struct {
  log         *logger.Logger
  authService services.AuthService
  roleRepo    repos.RoleRepo
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService, roleRepo repos.RoleRepo) *AuthMiddleware {
  middlewareLogger := log.With("Middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLogger, authService: authService, roleRepo: roleRepo}
}

// RequireAuth resolves the bearer token into request data on the context.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }
    ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
    if err != nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
      return
    }
    c.Request = c.Request.WithContext(ctx)
    rd := requestdata.GetRequestData(ctx)
    if rd == nil || rd.UserID == uuid.Nil {
      c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden - invalid user id"})
      return
    }
    c.Next()
  }
}

// RequirePage gates one route group behind a page identifier. The role and
// its permissions are re-read per request so role edits bite on the very next
// call. A role that fails to load yields an empty permission set, which the
// gate denies for everything except nothing.
func (am *AuthMiddleware) RequirePage(pageID string) gin.HandlerFunc {
  return func(c *gin.Context) {
    ctx := c.Request.Context()
    rd := requestdata.GetRequestData(ctx)
    if rd == nil || rd.UserID == uuid.Nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not signed in"})
      return
    }
    var permissions []string
    if rd.RoleID != uuid.Nil {
      roles, err := am.roleRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.RoleID})
      if err != nil {
        am.log.Warn("Failed to load role for permission gate; denying.", "roleID", rd.RoleID, "error", err)
      } else if len(roles) > 0 {
        permissions = roles[0].PermissionTypes()
      }
    }
    allowed := access.Allowed(true, pageID, permissions)
    am.log.Debug("Permission gate decision.", "email", rd.Email, "page", pageID, "allowed", allowed)
    if !allowed {
      c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
      return
    }
    c.Next()
  }
}

func extractToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  // Websocket clients cannot set headers; they pass the token in the query.
  if qToken := c.Query("token"); qToken != "" {
    return qToken
  }
  return ""
}
