package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
	"github.com/shashankj99/med-o-sys-api-auth/internal/services"
)

// UserHandlers handles administrative user management and profile requests.
type UserHandlers struct {
	userSvc   *services.UserService
	avatarSvc domain.AvatarService
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userSvc *services.UserService, avatarSvc domain.AvatarService) *UserHandlers {
	return &UserHandlers{userSvc: userSvc, avatarSvc: avatarSvc}
}

// userJSON extends the shared user map with the public CDN address of the
// stored avatar.
func (h *UserHandlers) userJSON(user *domain.User) gin.H {
	out := userJSON(user)
	out["img_url"] = h.avatarSvc.URL(user.Img)
	return out
}

// UpdateUserRequest represents an administrative or profile update
type UpdateUserRequest struct {
	FirstName            string `json:"first_name" binding:"required,max=50"`
	MiddleName           string `json:"middle_name" binding:"omitempty,max=50"`
	LastName             string `json:"last_name" binding:"required,max=50"`
	NepName              string `json:"nep_name" binding:"omitempty,max=150"`
	ProvinceID           uint   `json:"province_id" binding:"required"`
	DistrictID           uint   `json:"district_id" binding:"required"`
	CityID               uint   `json:"city_id" binding:"required"`
	WardNo               int    `json:"ward_no" binding:"required,min=1"`
	DobAD                string `json:"dob_ad" binding:"required"`
	DobBS                string `json:"dob_bs" binding:"required"`
	Mobile               string `json:"mobile" binding:"required,len=10,numeric"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"omitempty,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"eqfield=Password"`
	Age                  int    `json:"age" binding:"omitempty,min=0"`
	BloodGroup           string `json:"blood_group" binding:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Gender               string `json:"gender" binding:"required,oneof=male female others"`
	Img                  string `json:"img"`
}

// List handles the filtered, paginated user listing
func (h *UserHandlers) List(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	page, err := h.userSvc.List(c.Request.Context(), principal, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	users := make([]gin.H, 0, len(page.Users))
	for i := range page.Users {
		users = append(users, h.userJSON(&page.Users[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"data": users,
		"meta": gin.H{
			"total":       page.Total,
			"page":        page.Page,
			"limit":       page.Limit,
			"total_pages": page.TotalPages,
		},
	})
}

// Get handles fetching one user by id
func (h *UserHandlers) Get(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Get(c.Request.Context(), principal, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.userJSON(user)})
}

// Profile handles fetching the caller's own record
func (h *UserHandlers) Profile(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Profile(c.Request.Context(), principal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.userJSON(user)})
}

// Update handles an administrative user update
func (h *UserHandlers) Update(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}
	in, ok := updateInput(c)
	if !ok {
		return
	}

	user, err := h.userSvc.Update(c.Request.Context(), principal, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.userJSON(user)})
}

// UpdateProfile handles a self-service profile update
func (h *UserHandlers) UpdateProfile(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	in, ok := updateInput(c)
	if !ok {
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), principal, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": h.userJSON(user)})
}

// Delete handles removing a user
func (h *UserHandlers) Delete(c *gin.Context) {
	principal, ok := principalFrom(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.userSvc.Delete(c.Request.Context(), principal, id); err != nil {
		respondError(c, err)
		return
	}

	log.Printf("USER_DELETED: user_id=%d by=%d", id, principal.User.ID)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "User deleted successfully"},
	})
}

func updateInput(c *gin.Context) (*domain.UpdateUserInput, bool) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return nil, false
	}

	dob, err := time.Parse("2006-01-02", req.DobAD)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "the dob ad must be a valid date in YYYY-MM-DD format"})
		return nil, false
	}

	return &domain.UpdateUserInput{
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		NepName:    req.NepName,
		ProvinceID: req.ProvinceID,
		DistrictID: req.DistrictID,
		CityID:     req.CityID,
		WardNo:     req.WardNo,
		DobAD:      dob,
		DobBS:      req.DobBS,
		Mobile:     req.Mobile,
		Email:      req.Email,
		Password:   req.Password,
		Age:        req.Age,
		BloodGroup: req.BloodGroup,
		Gender:     req.Gender,
		Img:        req.Img,
	}, true
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "the id parameter must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

func filterFromQuery(c *gin.Context) (domain.UserFilter, error) {
	filter := domain.UserFilter{
		Search: c.Query("search"),
		Role:   c.Query("role"),
		Page:   intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", 10),
	}

	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errInvalidDate("start_date")
		}
		filter.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, errInvalidDate("end_date")
		}
		filter.EndDate = &t
	}
	if v := c.Query("province_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, errInvalidID("province_id")
		}
		filter.ProvinceID = uint(id)
	}
	if v := c.Query("district_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, errInvalidID("district_id")
		}
		filter.DistrictID = uint(id)
	}
	if v := c.Query("city_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return filter, errInvalidID("city_id")
		}
		filter.CityID = uint(id)
	}
	if v := c.Query("blood_group"); v != "" {
		filter.BloodGroup = v
	}
	if v := c.Query("status"); v != "" {
		status, err := strconv.ParseBool(v)
		if err != nil {
			return filter, errInvalidBool("status")
		}
		filter.Status = &status
	}
	return filter, nil
}

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func errInvalidDate(field string) error {
	return domain.ValidationError("the " + field + " must be a valid date in YYYY-MM-DD format")
}

func errInvalidID(field string) error {
	return domain.ValidationError("the " + field + " must be a positive integer")
}

func errInvalidBool(field string) error {
	return domain.ValidationError("the " + field + " must be a boolean")
}
