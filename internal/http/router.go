package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/shashankj99/med-o-sys-api-auth/internal/http/handlers"
	"github.com/shashankj99/med-o-sys-api-auth/internal/http/middleware"
)

// BuildRouter assembles the HTTP surface. Everything under the guarded
// group requires a resolvable bearer token; per-operation role checks live
// in the services.
func BuildRouter(
	ah *handlers.AuthHandlers,
	uh *handlers.UserHandlers,
	gh *handlers.GeoHandlers,
	rh *handlers.RBACHandlers,
	hh *handlers.HospitalHandlers,
	authMW *middleware.AuthMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/verify/mobile", ah.VerifyMobile)
	auth.GET("/activate/:token", ah.VerifyEmail)
	auth.POST("/otp/resend", ah.ResendOTP)
	auth.POST("/password/forgot", ah.ForgotPassword)
	auth.POST("/password/reset/otp", ah.ResetViaOTP)
	auth.GET("/password/reset/:token", ah.ResetViaToken)
	auth.POST("/password/new", ah.SetNewPassword)

	v := r.Group("/")
	v.Use(authMW.Handler())

	v.POST("/auth/logout", ah.Logout)
	v.GET("/profile", uh.Profile)
	v.PUT("/profile", uh.UpdateProfile)

	v.GET("/users", uh.List)
	v.GET("/users/:id", uh.Get)
	v.PUT("/users/:id", uh.Update)
	v.DELETE("/users/:id", uh.Delete)

	v.GET("/provinces", gh.ListProvinces)
	v.POST("/provinces", gh.CreateProvince)
	v.GET("/provinces/:id", gh.GetProvince)
	v.PUT("/provinces/:id", gh.UpdateProvince)
	v.DELETE("/provinces/:id", gh.DeleteProvince)

	v.GET("/districts", gh.ListDistricts)
	v.POST("/districts", gh.CreateDistrict)
	v.GET("/districts/:id", gh.GetDistrict)
	v.PUT("/districts/:id", gh.UpdateDistrict)
	v.DELETE("/districts/:id", gh.DeleteDistrict)

	v.GET("/cities", gh.ListCities)
	v.POST("/cities", gh.CreateCity)
	v.GET("/cities/:id", gh.GetCity)
	v.PUT("/cities/:id", gh.UpdateCity)
	v.DELETE("/cities/:id", gh.DeleteCity)

	v.GET("/roles", rh.ListRoles)
	v.POST("/roles", rh.CreateRole)
	v.GET("/roles/:id", rh.GetRole)
	v.PUT("/roles/:id", rh.UpdateRole)
	v.DELETE("/roles/:id", rh.DeleteRole)
	v.POST("/roles/:id/permissions", rh.SyncRolePermissions)

	v.GET("/permissions", rh.ListPermissions)
	v.POST("/permissions", rh.CreatePermission)
	v.GET("/permissions/:id", rh.GetPermission)
	v.PUT("/permissions/:id", rh.UpdatePermission)
	v.DELETE("/permissions/:id", rh.DeletePermission)
	v.POST("/permissions/:id/roles", rh.SyncPermissionRoles)

	v.POST("/users/roles", rh.AssignUserRoles)

	v.POST("/hospital/users", hh.Add)
	v.GET("/hospital/users/:id", hh.Show)
	v.PUT("/hospital/users", hh.Update)

	return r
}
