package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shashankj99/med-o-sys-api-auth/internal/services"
)

// GeoHandlers handles the province/district/city hierarchy requests.
type GeoHandlers struct {
	geoSvc *services.GeoService
}

// NewGeoHandlers creates new geography handlers
func NewGeoHandlers(geoSvc *services.GeoService) *GeoHandlers {
	return &GeoHandlers{geoSvc: geoSvc}
}

// ProvinceRequest represents a province create or update
type ProvinceRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// DistrictRequest represents a district create or update
type DistrictRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	ProvinceID uint   `json:"province_id" binding:"required"`
}

// CityRequest represents a city create or update
type CityRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	DistrictID uint   `json:"district_id" binding:"required"`
}

func (h *GeoHandlers) ListProvinces(c *gin.Context) {
	provinces, err := h.geoSvc.ListProvinces(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": provinces})
}

func (h *GeoHandlers) GetProvince(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	province, err := h.geoSvc.GetProvince(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": province})
}

func (h *GeoHandlers) CreateProvince(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	var req ProvinceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	province, err := h.geoSvc.CreateProvince(c.Request.Context(), principal, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": province})
}

func (h *GeoHandlers) UpdateProvince(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req ProvinceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	province, err := h.geoSvc.UpdateProvince(c.Request.Context(), principal, id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": province})
}

func (h *GeoHandlers) DeleteProvince(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.geoSvc.DeleteProvince(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Province deleted successfully"}})
}

func (h *GeoHandlers) ListDistricts(c *gin.Context) {
	provinceID, ok := optionalIDQuery(c, "province_id")
	if !ok {
		return
	}
	districts, err := h.geoSvc.ListDistricts(c.Request.Context(), c.Query("search"), provinceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": districts})
}

func (h *GeoHandlers) GetDistrict(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	district, err := h.geoSvc.GetDistrict(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": district})
}

func (h *GeoHandlers) CreateDistrict(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	var req DistrictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	district, err := h.geoSvc.CreateDistrict(c.Request.Context(), principal, req.Name, req.ProvinceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": district})
}

func (h *GeoHandlers) UpdateDistrict(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req DistrictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	district, err := h.geoSvc.UpdateDistrict(c.Request.Context(), principal, id, req.Name, req.ProvinceID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": district})
}

func (h *GeoHandlers) DeleteDistrict(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.geoSvc.DeleteDistrict(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "District deleted successfully"}})
}

func (h *GeoHandlers) ListCities(c *gin.Context) {
	districtID, ok := optionalIDQuery(c, "district_id")
	if !ok {
		return
	}
	cities, err := h.geoSvc.ListCities(c.Request.Context(), c.Query("search"), districtID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cities})
}

func (h *GeoHandlers) GetCity(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	city, err := h.geoSvc.GetCity(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": city})
}

func (h *GeoHandlers) CreateCity(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	city, err := h.geoSvc.CreateCity(c.Request.Context(), principal, req.Name, req.DistrictID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": city})
}

func (h *GeoHandlers) UpdateCity(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req CityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}
	city, err := h.geoSvc.UpdateCity(c.Request.Context(), principal, id, req.Name, req.DistrictID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": city})
}

func (h *GeoHandlers) DeleteCity(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.geoSvc.DeleteCity(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "City deleted successfully"}})
}

func optionalIDQuery(c *gin.Context, key string) (uint, bool) {
	v := c.Query(key)
	if v == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "the " + key + " must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}
