package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/yardsync-org/yardsync-backend/internal/services"
)

type ContactHandler struct {
  contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
  return &ContactHandler{contactService: contactService}
}

func (ch *ContactHandler) Submit(c *gin.Context) {
  var req struct {
    Name    string `json:"name" binding:"required"`
    Email   string `json:"email" binding:"required"`
    Subject string `json:"subject,omitempty"`
    Message string `json:"message" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and message are required"})
    return
  }
  submission, err := ch.contactService.SubmitContactForm(c.Request.Context(), req.Name, req.Email, req.Subject, req.Message)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"submission": submission})
}

func (ch *ContactHandler) GetRecent(c *gin.Context) {
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
  submissions, err := ch.contactService.GetRecentSubmissions(c.Request.Context(), limit)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}
