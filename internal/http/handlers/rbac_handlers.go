package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shashankj99/med-o-sys-api-auth/internal/services"
)

// RBACHandlers handles role, permission and assignment requests.
type RBACHandlers struct {
	rbacSvc *services.RBACService
}

// NewRBACHandlers creates new RBAC handlers
func NewRBACHandlers(rbacSvc *services.RBACService) *RBACHandlers {
	return &RBACHandlers{rbacSvc: rbacSvc}
}

// NameRequest represents a role or permission create or update
type NameRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UserRolesRequest represents a user role assignment
type UserRolesRequest struct {
	UserID uint     `json:"user_id" binding:"required"`
	Roles  []string `json:"roles" binding:"required,min=1"`
}

// RolePermissionsRequest represents a role permission sync
type RolePermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required,min=1"`
}

// PermissionRolesRequest represents a permission role sync
type PermissionRolesRequest struct {
	Roles []string `json:"roles" binding:"required,min=1"`
}

func (h *RBACHandlers) ListRoles(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	roles, err := h.rbacSvc.ListRoles(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": roles})
}

func (h *RBACHandlers) CreateRole(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	role, err := h.rbacSvc.CreateRole(c.Request.Context(), principal, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": role})
}

func (h *RBACHandlers) GetRole(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	role, err := h.rbacSvc.GetRole(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": role})
}

func (h *RBACHandlers) UpdateRole(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	role, err := h.rbacSvc.UpdateRole(c.Request.Context(), principal, id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": role})
}

func (h *RBACHandlers) DeleteRole(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.rbacSvc.DeleteRole(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Role deleted successfully"}})
}

func (h *RBACHandlers) ListPermissions(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	permissions, err := h.rbacSvc.ListPermissions(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": permissions})
}

func (h *RBACHandlers) CreatePermission(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	permission, err := h.rbacSvc.CreatePermission(c.Request.Context(), principal, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": permission})
}

func (h *RBACHandlers) GetPermission(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	permission, err := h.rbacSvc.GetPermission(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": permission})
}

func (h *RBACHandlers) UpdatePermission(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	permission, err := h.rbacSvc.UpdatePermission(c.Request.Context(), principal, id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": permission})
}

func (h *RBACHandlers) DeletePermission(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.rbacSvc.DeletePermission(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Permission deleted successfully"}})
}

// AssignUserRoles replaces a user's role memberships
func (h *RBACHandlers) AssignUserRoles(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	var req UserRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if err := h.rbacSvc.AssignRolesToUser(c.Request.Context(), principal, req.UserID, req.Roles); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Roles assigned successfully"}})
}

// SyncRolePermissions replaces the permissions granted by a role
func (h *RBACHandlers) SyncRolePermissions(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req RolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if err := h.rbacSvc.SyncRolePermissions(c.Request.Context(), principal, id, req.Permissions); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Permissions synced successfully"}})
}

// SyncPermissionRoles replaces the roles a permission is granted to
func (h *RBACHandlers) SyncPermissionRoles(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req PermissionRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	if err := h.rbacSvc.SyncPermissionRoles(c.Request.Context(), principal, id, req.Roles); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Roles synced successfully"}})
}
