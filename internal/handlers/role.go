package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yardsync-org/yardsync-backend/internal/services"
)

type RoleHandler struct {
  roleService services.RoleService
}

func NewRoleHandler(roleService services.RoleService) *RoleHandler {
  return &RoleHandler{roleService: roleService}
}

func (rh *RoleHandler) GetRoles(c *gin.Context) {
  roles, err := rh.roleService.GetRoles(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"roles": roles})
}

func (rh *RoleHandler) Create(c *gin.Context) {
  var req struct {
    Name        string   `json:"name" binding:"required"`
    Description string   `json:"description,omitempty"`
    Permissions []string `json:"permissions,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
    return
  }
  role, err := rh.roleService.CreateRole(c.Request.Context(), req.Name, req.Description, req.Permissions)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"role": role})
}

func (rh *RoleHandler) Update(c *gin.Context) {
  roleID, err := parseUUIDParam(c, "roleID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    Name        *string `json:"name,omitempty"`
    Description *string `json:"description,omitempty"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  role, err := rh.roleService.UpdateRole(c.Request.Context(), roleID, req.Name, req.Description)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"role": role})
}

func (rh *RoleHandler) ReplacePermissions(c *gin.Context) {
  roleID, err := parseUUIDParam(c, "roleID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  var req struct {
    Permissions []string `json:"permissions" binding:"required"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "permissions is required"})
    return
  }
  role, err := rh.roleService.ReplacePermissions(c.Request.Context(), roleID, req.Permissions)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"role": role})
}

func (rh *RoleHandler) Delete(c *gin.Context) {
  roleID, err := parseUUIDParam(c, "roleID")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  if err := rh.roleService.DeleteRole(c.Request.Context(), roleID); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": userError(c, err)})
    return
  }
  c.JSON(http.StatusOK, gin.H{"message": "role deleted"})
}
