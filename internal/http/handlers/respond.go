package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// statusOf maps an error kind to its HTTP status.
func statusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusUnprocessableEntity
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"error": domain.MessageOf(err)})
}

func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
}

// principalFrom returns the principal placed in the context by the auth
// middleware.
func principalFrom(c *gin.Context) (*domain.Principal, bool) {
	v, ok := c.Get("principal")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	principal, ok := v.(*domain.Principal)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return principal, true
}

func userJSON(user *domain.User) gin.H {
	return gin.H{
		"id":              user.ID,
		"first_name":      user.FirstName,
		"middle_name":     user.MiddleName,
		"last_name":       user.LastName,
		"full_name":       user.FullName(),
		"nep_name":        user.NepName,
		"province_id":     user.ProvinceID,
		"district_id":     user.DistrictID,
		"city_id":         user.CityID,
		"ward_no":         user.WardNo,
		"dob_ad":          user.DobAD.Format("2006-01-02"),
		"dob_bs":          user.DobBS,
		"mobile":          user.Mobile,
		"email":           user.Email,
		"age":             user.Age,
		"blood_group":     user.BloodGroup,
		"gender":          user.Gender,
		"img":             user.Img,
		"mobile_verified": user.MobileVerified,
		"email_verified":  user.EmailVerified,
		"status":          user.Status,
		"created_at":      user.CreatedAt,
		"updated_at":      user.UpdatedAt,
	}
}
