package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
	"github.com/shashankj99/med-o-sys-api-auth/internal/config"
	httpx "github.com/shashankj99/med-o-sys-api-auth/internal/http"
	"github.com/shashankj99/med-o-sys-api-auth/internal/http/handlers"
	"github.com/shashankj99/med-o-sys-api-auth/internal/http/middleware"
	"github.com/shashankj99/med-o-sys-api-auth/internal/infrastructure/auth"
	"github.com/shashankj99/med-o-sys-api-auth/internal/infrastructure/database"
	"github.com/shashankj99/med-o-sys-api-auth/internal/infrastructure/media"
	"github.com/shashankj99/med-o-sys-api-auth/internal/infrastructure/notifications"
	"github.com/shashankj99/med-o-sys-api-auth/internal/infrastructure/repositories"
	"github.com/shashankj99/med-o-sys-api-auth/internal/services"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}
	cas, err := auth.NewCasbinService(gdb, cfg.CasbinModelPath)
	if err != nil {
		return err
	}
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer)
	sender := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)
	dispatcher := notifications.NewRedisDispatcher(rdb)
	avatarSvc := media.NewCDNAvatarService(cfg.CDNUploadAvatarURL, cfg.CDNGetAvatarURL)
	assignments := auth.NewRoleAssignments(cas.E)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	otpRepo := repositories.NewOTPRepository(gdb)
	tokenRepo := repositories.NewVerificationTokenRepository(gdb)
	sessionRepo := repositories.NewSessionRepository(gdb)
	provinceRepo := repositories.NewProvinceRepository(gdb)
	districtRepo := repositories.NewDistrictRepository(gdb)
	cityRepo := repositories.NewCityRepository(gdb)
	roleRepo := repositories.NewRoleRepository(gdb)
	permissionRepo := repositories.NewPermissionRepository(gdb)
	hospitalRepo := repositories.NewHospitalUserRepository(gdb)
	txManager := repositories.NewTxManager(gdb)
	throttle := repositories.NewOTPThrottle(rdb, cfg.OTPResendWindow)
	grants := repositories.NewResetGrantStore(rdb, cfg.ResetGrantTTL)

	// Services
	ledger := services.NewVerificationLedger(otpRepo, tokenRepo, services.LedgerConfig{
		SecretKey:           cfg.VerificationKey,
		MaxGenerateAttempts: cfg.OTPMaxGenAttempts,
	})
	authSvc := services.NewAuthService(
		userRepo, sessionRepo, ledger, passwordSvc, tokenSvc,
		avatarSvc, dispatcher, throttle, grants, txManager,
	)
	authzSvc := services.NewAuthzService(sessionRepo, userRepo, assignments)
	userSvc := services.NewUserService(
		userRepo, sessionRepo, passwordSvc, avatarSvc, assignments, authzSvc, txManager,
	)
	geoSvc := services.NewGeoService(provinceRepo, districtRepo, cityRepo, authzSvc)
	rbacSvc := services.NewRBACService(roleRepo, permissionRepo, userRepo, assignments, authzSvc)
	hospitalSvc := services.NewHospitalService(hospitalRepo, userRepo, assignments, authzSvc)

	// Handlers and middleware
	authH := handlers.NewAuthHandlers(authSvc)
	userH := handlers.NewUserHandlers(userSvc, avatarSvc)
	geoH := handlers.NewGeoHandlers(geoSvc)
	rbacH := handlers.NewRBACHandlers(rbacSvc)
	hospitalH := handlers.NewHospitalHandlers(hospitalSvc)
	authMW := middleware.NewAuthMW(authzSvc)

	r := httpx.BuildRouter(authH, userH, geoH, rbacH, hospitalH, authMW)

	if err := seedRoles(roleRepo); err != nil {
		return err
	}

	// Background delivery of queued notifications.
	worker := notifications.NewWorker(rdb, sender, cfg.AppBaseURL)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go worker.Run(workerCtx)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedRoles creates the built-in roles on an empty roles table.
func seedRoles(roleRepo domain.RoleRepository) error {
	ctx := context.Background()
	roles, err := roleRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(roles) > 0 {
		return nil
	}
	for _, name := range domain.HospitalMemberRoles {
		if err := roleRepo.Create(ctx, &domain.Role{Name: name}); err != nil {
			return err
		}
	}
	log.Println("roles: seeded built-in roles")
	return nil
}
