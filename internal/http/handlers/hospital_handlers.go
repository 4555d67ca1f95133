package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shashankj99/med-o-sys-api-auth/internal/services"
)

// HospitalHandlers handles hospital association requests.
type HospitalHandlers struct {
	hospitalSvc *services.HospitalService
}

// NewHospitalHandlers creates new hospital association handlers
func NewHospitalHandlers(hospitalSvc *services.HospitalService) *HospitalHandlers {
	return &HospitalHandlers{hospitalSvc: hospitalSvc}
}

// HospitalUserRequest represents a hospital association create or update
type HospitalUserRequest struct {
	UserID     uint `json:"user_id" binding:"required"`
	HospitalID uint `json:"hospital_id" binding:"required"`
}

// Add associates a user with a hospital
func (h *HospitalHandlers) Add(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	var req HospitalUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	hu, err := h.hospitalSvc.Add(c.Request.Context(), principal, req.UserID, req.HospitalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": hu})
}

// Show returns the hospital association of a user
func (h *HospitalHandlers) Show(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	hu, err := h.hospitalSvc.Show(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": hu})
}

// Update moves a user's association to another hospital
func (h *HospitalHandlers) Update(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	var req HospitalUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	hu, err := h.hospitalSvc.Update(c.Request.Context(), principal, req.UserID, req.HospitalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": hu})
}
