package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/yardsync-org/yardsync-backend/internal/services"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
)

type UserAdminHandler struct {
  userAdminService services.UserAdminService
  hub              *socket.Hub
}

func NewUserAdminHandler(userAdminService services.UserAdminService, hub *socket.Hub) *UserAdminHandler {
  return &UserAdminHandler{userAdminService: userAdminService, hub: hub}
}

func (uh *UserAdminHandler) ListUsers(c *gin.Context) {
  page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
  pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "25"))
  users, total, err := uh.userAdminService.ListUsers(c.Request.Context(), page, pageSize)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"users": users, "total": total})
}

func (uh *UserAdminHandler) AssignRole(c *gin.Context) {
  userID, err := parseUUIDParam(c, "userID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    RoleID string `json:"role_id" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "role_id is required"})
    return
  }
  roleID, err := parseUUID(req.RoleID, "role_id")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  user, err := uh.userAdminService.AssignRole(c.Request.Context(), userID, roleID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, uh.hub)
  c.JSON(http.StatusOK, gin.H{"user": user})
}
