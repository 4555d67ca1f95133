package repositories

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	err = db.AutoMigrate(
		&DBUser{}, &DBOtp{}, &DBVerificationToken{}, &DBSessionToken{},
		&DBProvince{}, &DBDistrict{}, &DBCity{},
		&DBRole{}, &DBPermission{}, &DBHospitalUser{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, repo domain.UserRepository, mobile, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		FirstName:    "Ram",
		LastName:     "Shrestha",
		ProvinceID:   1,
		DistrictID:   2,
		CityID:       3,
		WardNo:       4,
		DobAD:        time.Date(1995, 4, 12, 0, 0, 0, 0, time.UTC),
		DobBS:        "2051-12-30",
		Mobile:       mobile,
		Email:        email,
		PasswordHash: "hashed",
		Age:          31,
		BloodGroup:   "A+",
		Gender:       "male",
		Img:          "default.png",
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func TestUserRepositoryImpl_CreateAndFind(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "9841000000", "ram@example.com")
	if user.ID == 0 {
		t.Fatal("expected an assigned id")
	}

	byID, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID.Email != "ram@example.com" {
		t.Errorf("unexpected email %q", byID.Email)
	}

	if _, err := repo.FindByMobile(ctx, "9841000000"); err != nil {
		t.Errorf("FindByMobile: %v", err)
	}
	if _, err := repo.FindByIdentifier(ctx, "ram@example.com"); err != nil {
		t.Errorf("FindByIdentifier by email: %v", err)
	}
	if _, err := repo.FindByIdentifier(ctx, "9841000000"); err != nil {
		t.Errorf("FindByIdentifier by mobile: %v", err)
	}

	_, err = repo.FindByID(ctx, 999)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUserRepositoryImpl_DuplicateConflicts(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "9841000000", "ram@example.com")

	dup := &domain.User{
		FirstName: "Hari", LastName: "K", WardNo: 1,
		DobAD: time.Now(), Mobile: "9841000000", Email: "other@example.com",
		PasswordHash: "x",
	}
	err := repo.Create(ctx, dup)
	if domain.KindOf(err) != domain.KindConflict {
		t.Errorf("expected conflict for duplicate mobile, got %v", err)
	}
}

func TestUserRepositoryImpl_List(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u1 := seedUser(t, repo, "9841000001", "a@example.com")
	seedUser(t, repo, "9841000002", "b@example.com")
	u3 := seedUser(t, repo, "9841000003", "c@example.com")
	u3.FirstName = "Sita"
	u3.BloodGroup = "B+"
	if err := repo.Update(ctx, u3); err != nil {
		t.Fatalf("update: %v", err)
	}

	t.Run("pagination", func(t *testing.T) {
		page, err := repo.List(ctx, domain.UserFilter{Page: 1, Limit: 2}, nil)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if page.Total != 3 || len(page.Users) != 2 || page.TotalPages != 2 {
			t.Errorf("unexpected page total=%d users=%d totalPages=%d", page.Total, len(page.Users), page.TotalPages)
		}
	})

	t.Run("free text search", func(t *testing.T) {
		page, err := repo.List(ctx, domain.UserFilter{Search: "Sita"}, nil)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if page.Total != 1 || page.Users[0].Mobile != "9841000003" {
			t.Errorf("unexpected search result %+v", page)
		}
	})

	t.Run("blood group filter", func(t *testing.T) {
		page, err := repo.List(ctx, domain.UserFilter{BloodGroup: "B+"}, nil)
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if page.Total != 1 {
			t.Errorf("expected 1 match, got %d", page.Total)
		}
	})

	t.Run("role member id set", func(t *testing.T) {
		page, err := repo.List(ctx, domain.UserFilter{}, []uint{u1.ID, u3.ID})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if page.Total != 2 {
			t.Errorf("expected 2 members, got %d", page.Total)
		}
	})
}

func TestOTPRepositoryImpl(t *testing.T) {
	db := openTestDB(t)
	repo := NewOTPRepository(db)
	ctx := context.Background()

	otp := &domain.OTP{UserID: 1, Code: "123456", Purpose: domain.PurposeActivate}
	if err := repo.Create(ctx, otp); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.FindByCode(ctx, "123456", domain.PurposeActivate)
	if err != nil {
		t.Fatalf("FindByCode: %v", err)
	}
	if found.UserID != 1 {
		t.Errorf("unexpected otp %+v", found)
	}

	// Purpose scopes the lookup.
	_, err = repo.FindByCode(ctx, "123456", domain.PurposeReset)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("expected not found across purposes, got %v", err)
	}

	exists, err := repo.Exists(ctx, 1, "123456", domain.PurposeActivate)
	if err != nil || !exists {
		t.Errorf("expected the code to exist, got %v %v", exists, err)
	}

	if err := repo.Delete(ctx, otp.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = repo.FindByCode(ctx, "123456", domain.PurposeActivate)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("expected consumed code to resolve to nothing, got %v", err)
	}
}

func TestVerificationTokenRepositoryImpl(t *testing.T) {
	db := openTestDB(t)
	repo := NewVerificationTokenRepository(db)
	ctx := context.Background()

	token := &domain.VerificationToken{UserID: 2, Token: "deadbeef", Purpose: domain.PurposeReset}
	if err := repo.Create(ctx, token); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.FindByToken(ctx, "deadbeef", domain.PurposeReset)
	if err != nil {
		t.Fatalf("FindByToken: %v", err)
	}
	if found.UserID != 2 {
		t.Errorf("unexpected token %+v", found)
	}

	if err := repo.Delete(ctx, token.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = repo.FindByToken(ctx, "deadbeef", domain.PurposeReset)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestSessionRepositoryImpl(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	session := &domain.SessionToken{UserID: 5, Token: "tok"}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("one token per user", func(t *testing.T) {
		err := repo.Create(ctx, &domain.SessionToken{UserID: 5, Token: "second"})
		if domain.KindOf(err) != domain.KindConflict {
			t.Errorf("expected conflict, got %v", err)
		}
	})

	t.Run("find by token and user", func(t *testing.T) {
		byToken, err := repo.FindByToken(ctx, "tok")
		if err != nil || byToken.UserID != 5 {
			t.Errorf("FindByToken: %v %+v", err, byToken)
		}
		byUser, err := repo.FindByUser(ctx, 5)
		if err != nil || byUser.Token != "tok" {
			t.Errorf("FindByUser: %v %+v", err, byUser)
		}
	})

	t.Run("unknown token is unauthenticated", func(t *testing.T) {
		_, err := repo.FindByToken(ctx, "nope")
		if domain.KindOf(err) != domain.KindUnauthenticated {
			t.Errorf("expected unauthenticated, got %v", err)
		}
	})

	t.Run("delete by user is idempotent", func(t *testing.T) {
		if err := repo.DeleteByUser(ctx, 5); err != nil {
			t.Fatalf("DeleteByUser: %v", err)
		}
		if err := repo.DeleteByUser(ctx, 5); err != nil {
			t.Errorf("second DeleteByUser: %v", err)
		}
		_, err := repo.FindByUser(ctx, 5)
		if domain.KindOf(err) != domain.KindNotFound {
			t.Errorf("expected not found after delete, got %v", err)
		}
	})
}

func TestGeoRepositories(t *testing.T) {
	db := openTestDB(t)
	provinces := NewProvinceRepository(db)
	districts := NewDistrictRepository(db)
	cities := NewCityRepository(db)
	ctx := context.Background()

	province := &domain.Province{Name: "Bagmati"}
	if err := provinces.Create(ctx, province); err != nil {
		t.Fatalf("create province: %v", err)
	}

	t.Run("duplicate province name conflicts", func(t *testing.T) {
		err := provinces.Create(ctx, &domain.Province{Name: "Bagmati"})
		if domain.KindOf(err) != domain.KindConflict {
			t.Errorf("expected conflict, got %v", err)
		}
	})

	district := &domain.District{Name: "Kathmandu", ProvinceID: province.ID}
	if err := districts.Create(ctx, district); err != nil {
		t.Fatalf("create district: %v", err)
	}
	city := &domain.City{Name: "Kirtipur", DistrictID: district.ID}
	if err := cities.Create(ctx, city); err != nil {
		t.Fatalf("create city: %v", err)
	}

	t.Run("district list filters by province", func(t *testing.T) {
		other := &domain.Province{Name: "Gandaki"}
		if err := provinces.Create(ctx, other); err != nil {
			t.Fatalf("create province: %v", err)
		}
		if err := districts.Create(ctx, &domain.District{Name: "Kaski", ProvinceID: other.ID}); err != nil {
			t.Fatalf("create district: %v", err)
		}

		got, err := districts.List(ctx, "", province.ID)
		if err != nil {
			t.Fatalf("list districts: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Kathmandu" {
			t.Errorf("unexpected districts %+v", got)
		}
	})

	t.Run("city list filters by district and search", func(t *testing.T) {
		got, err := cities.List(ctx, "kirt", district.ID)
		if err != nil {
			t.Fatalf("list cities: %v", err)
		}
		if len(got) != 1 || got[0].Name != "Kirtipur" {
			t.Errorf("unexpected cities %+v", got)
		}
	})

	t.Run("missing province is not found", func(t *testing.T) {
		_, err := provinces.FindByID(ctx, 999)
		if domain.KindOf(err) != domain.KindNotFound {
			t.Errorf("expected not found, got %v", err)
		}
	})

	t.Run("update and delete", func(t *testing.T) {
		city.Name = "Tokha"
		if err := cities.Update(ctx, city); err != nil {
			t.Fatalf("update city: %v", err)
		}
		got, err := cities.FindByID(ctx, city.ID)
		if err != nil || got.Name != "Tokha" {
			t.Errorf("unexpected city %+v err=%v", got, err)
		}
		if err := cities.Delete(ctx, city.ID); err != nil {
			t.Fatalf("delete city: %v", err)
		}
		_, err = cities.FindByID(ctx, city.ID)
		if domain.KindOf(err) != domain.KindNotFound {
			t.Errorf("expected not found after delete, got %v", err)
		}
	})
}

func TestRBACRepositories(t *testing.T) {
	db := openTestDB(t)
	roles := NewRoleRepository(db)
	permissions := NewPermissionRepository(db)
	ctx := context.Background()

	for _, name := range []string{"doctor", "nurse"} {
		if err := roles.Create(ctx, &domain.Role{Name: name}); err != nil {
			t.Fatalf("create role %q: %v", name, err)
		}
	}
	if err := permissions.Create(ctx, &domain.Permission{Name: "view users"}); err != nil {
		t.Fatalf("create permission: %v", err)
	}

	found, err := roles.FindByNames(ctx, []string{"doctor", "nurse", "ghost"})
	if err != nil {
		t.Fatalf("FindByNames: %v", err)
	}
	if len(found) != 2 {
		t.Errorf("expected 2 roles, got %d", len(found))
	}

	all, err := roles.List(ctx)
	if err != nil || len(all) != 2 {
		t.Errorf("List: %v, got %d roles", err, len(all))
	}

	err = roles.Create(ctx, &domain.Role{Name: "doctor"})
	if domain.KindOf(err) != domain.KindConflict {
		t.Errorf("expected conflict for duplicate role, got %v", err)
	}
}

func TestHospitalUserRepositoryImpl(t *testing.T) {
	db := openTestDB(t)
	repo := NewHospitalUserRepository(db)
	ctx := context.Background()

	hu := &domain.HospitalUser{UserID: 3, HospitalID: 10}
	if err := repo.Create(ctx, hu); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.FindByUser(ctx, 3)
	if err != nil || found.HospitalID != 10 {
		t.Fatalf("FindByUser: %v %+v", err, found)
	}

	found.HospitalID = 11
	if err := repo.Update(ctx, found); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, err := repo.FindByUser(ctx, 3)
	if err != nil || again.HospitalID != 11 {
		t.Errorf("expected hospital 11, got %+v err=%v", again, err)
	}

	_, err = repo.FindByUser(ctx, 99)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestGormTxManager_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	userRepo := NewUserRepository(db)
	otpRepo := NewOTPRepository(db)
	tx := NewTxManager(db)
	ctx := context.Background()

	err := tx.InTx(ctx, func(ctx context.Context) error {
		user := &domain.User{
			FirstName: "Tx", LastName: "Test", WardNo: 1, DobAD: time.Now(),
			Mobile: "9849999999", Email: "tx@example.com", PasswordHash: "x",
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		if err := otpRepo.Create(ctx, &domain.OTP{UserID: user.ID, Code: "111111", Purpose: domain.PurposeActivate}); err != nil {
			return err
		}
		return domain.Internal("boom", nil)
	})
	if err == nil {
		t.Fatal("expected the transaction to fail")
	}

	_, err = userRepo.FindByMobile(ctx, "9849999999")
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("expected the user write to be rolled back, got %v", err)
	}
	_, err = otpRepo.FindByCode(ctx, "111111", domain.PurposeActivate)
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("expected the OTP write to be rolled back, got %v", err)
	}
}

func TestGormTxManager_CommitsOnSuccess(t *testing.T) {
	db := openTestDB(t)
	userRepo := NewUserRepository(db)
	tx := NewTxManager(db)
	ctx := context.Background()

	err := tx.InTx(ctx, func(ctx context.Context) error {
		return userRepo.Create(ctx, &domain.User{
			FirstName: "Ok", LastName: "Tx", WardNo: 1, DobAD: time.Now(),
			Mobile: "9848888888", Email: "ok@example.com", PasswordHash: "x",
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := userRepo.FindByMobile(ctx, "9848888888"); err != nil {
		t.Errorf("expected the committed user to be found, got %v", err)
	}
}
