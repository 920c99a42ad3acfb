package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yardsync-org/yardsync-backend/internal/services"
  "github.com/yardsync-org/yardsync-backend/internal/socket"
)

type ApprovalHandler struct {
  approvalService services.ApprovalService
  hub             *socket.Hub
}

func NewApprovalHandler(approvalService services.ApprovalService, hub *socket.Hub) *ApprovalHandler {
  return &ApprovalHandler{approvalService: approvalService, hub: hub}
}

func (ah *ApprovalHandler) ListPending(c *gin.Context) {
  requests, err := ah.approvalService.ListPending(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"requests": requests})
}

func (ah *ApprovalHandler) Decide(c *gin.Context) {
  requestID, err := parseUUIDParam(c, "requestID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    Approve bool   `json:"approve"`
    Reason  string `json:"reason,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  decided, err := ah.approvalService.Decide(c.Request.Context(), requestID, req.Approve, req.Reason)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  flushEvents(c, ah.hub)
  c.JSON(http.StatusOK, gin.H{"request": decided})
}
