package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yardsync-org/yardsync-backend/internal/services"
)

type RegisterTemplateHandler struct {
  registerTemplateService services.RegisterTemplateService
}

func NewRegisterTemplateHandler(registerTemplateService services.RegisterTemplateService) *RegisterTemplateHandler {
  return &RegisterTemplateHandler{registerTemplateService: registerTemplateService}
}

func (rh *RegisterTemplateHandler) GetTemplates(c *gin.Context) {
  templates, err := rh.registerTemplateService.GetTemplates(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"templates": templates})
}

func (rh *RegisterTemplateHandler) Create(c *gin.Context) {
  var req struct {
    Name         string                      `json:"name" binding:"required"`
    RegisterType string                      `json:"register_type" binding:"required"`
    Fields       []services.RegisterFieldDef `json:"fields" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "name, register_type and fields are required"})
    return
  }
  template, err := rh.registerTemplateService.CreateTemplate(c.Request.Context(), req.Name, req.RegisterType, req.Fields)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"template": template})
}

func (rh *RegisterTemplateHandler) Update(c *gin.Context) {
  templateID, err := parseUUIDParam(c, "templateID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    Name         *string                     `json:"name,omitempty"`
    RegisterType *string                     `json:"register_type,omitempty"`
    Fields       []services.RegisterFieldDef `json:"fields,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  template, err := rh.registerTemplateService.UpdateTemplate(c.Request.Context(), templateID, req.Name, req.RegisterType, req.Fields)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"template": template})
}

func (rh *RegisterTemplateHandler) Delete(c *gin.Context) {
  templateID, err := parseUUIDParam(c, "templateID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  if err := rh.registerTemplateService.DeleteTemplate(c.Request.Context(), templateID); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"message": "template deleted"})
}

func (rh *RegisterTemplateHandler) RecordEntry(c *gin.Context) {
  templateID, err := parseUUIDParam(c, "templateID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    Values map[string]interface{} `json:"values" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "values is required"})
    return
  }
  entry, err := rh.registerTemplateService.RecordEntry(c.Request.Context(), templateID, req.Values)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"entry": entry})
}

func (rh *RegisterTemplateHandler) GetEntries(c *gin.Context) {
  templateID, err := parseUUIDParam(c, "templateID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  from, to, err := parseWindow(c)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  entries, err := rh.registerTemplateService.GetEntries(c.Request.Context(), templateID, from, to)
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"entries": entries})
}
