package services

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// UserService covers administrative user management and the self-service
// profile operations.
type UserService struct {
	userRepo    domain.UserRepository
	sessionRepo domain.SessionRepository
	passwordSvc domain.PasswordService
	avatarSvc   domain.AvatarService
	assignments domain.RoleAssignments
	authz       domain.AuthzService
	tx          domain.TxManager
}

// NewUserService creates a new user service
func NewUserService(
	userRepo domain.UserRepository,
	sessionRepo domain.SessionRepository,
	passwordSvc domain.PasswordService,
	avatarSvc domain.AvatarService,
	assignments domain.RoleAssignments,
	authz domain.AuthzService,
	tx domain.TxManager,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		passwordSvc: passwordSvc,
		avatarSvc:   avatarSvc,
		assignments: assignments,
		authz:       authz,
		tx:          tx,
	}
}

// List returns a filtered, paginated page of users. Super admin only.
func (s *UserService) List(ctx context.Context, principal *domain.Principal, filter domain.UserFilter) (*domain.UserPage, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}

	var roleMembers []uint
	if filter.Role != "" {
		ids, err := s.assignments.UsersForRole(filter.Role)
		if err != nil {
			return nil, domain.Internal("failed to resolve role members", err)
		}
		if len(ids) == 0 {
			// No member matches; short-circuit to an empty page.
			return &domain.UserPage{Page: pageOr(filter.Page), Limit: limitOr(filter.Limit)}, nil
		}
		roleMembers = ids
	}

	page, err := s.userRepo.List(ctx, filter, roleMembers)
	if err != nil {
		return nil, domain.Internal("failed to list users", err)
	}
	return page, nil
}

// Get returns one user by id. Super admin only.
func (s *UserService) Get(ctx context.Context, principal *domain.Principal, id uint) (*domain.User, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	return s.findUser(ctx, id)
}

// Profile returns the caller's own record.
func (s *UserService) Profile(ctx context.Context, principal *domain.Principal) (*domain.User, error) {
	return s.findUser(ctx, principal.User.ID)
}

// Update applies an administrative update to any user. Super admin only.
func (s *UserService) Update(ctx context.Context, principal *domain.Principal, id uint, in *domain.UpdateUserInput) (*domain.User, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, id, in)
}

// UpdateProfile applies a self-service update to the caller's own record.
func (s *UserService) UpdateProfile(ctx context.Context, principal *domain.Principal, in *domain.UpdateUserInput) (*domain.User, error) {
	return s.applyUpdate(ctx, principal.User.ID, in)
}

// Delete removes a user and its session token. The super admin account
// cannot be deleted.
func (s *UserService) Delete(ctx context.Context, principal *domain.Principal, id uint) error {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return err
	}

	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	roles, err := s.assignments.RolesForUser(user.ID)
	if err != nil {
		return domain.Internal("failed to load roles", err)
	}
	for _, role := range roles {
		if role == domain.RoleSuperAdmin {
			return domain.Forbidden("the super admin can not be deleted")
		}
	}

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		if err := s.sessionRepo.DeleteByUser(ctx, user.ID); err != nil {
			return err
		}
		return s.userRepo.Delete(ctx, user.ID)
	})
	if err != nil {
		return wrapStoreErr("failed to delete user", err)
	}
	return nil
}

func (s *UserService) findUser(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.NotFound("unable to find the user")
		}
		return nil, domain.Internal("failed to look up user", err)
	}
	return user, nil
}

func (s *UserService) applyUpdate(ctx context.Context, id uint, in *domain.UpdateUserInput) (*domain.User, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Mobile != user.Mobile {
		if _, err := s.userRepo.FindByMobile(ctx, in.Mobile); err == nil {
			return nil, domain.Conflict("the mobile number has already been taken")
		} else if domain.KindOf(err) != domain.KindNotFound {
			return nil, domain.Internal("failed to check mobile uniqueness", err)
		}
	}
	if in.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil {
			return nil, domain.Conflict("the email has already been taken")
		} else if domain.KindOf(err) != domain.KindNotFound {
			return nil, domain.Internal("failed to check email uniqueness", err)
		}
	}

	age, err := normalizeAge(in.DobAD, in.Age)
	if err != nil {
		return nil, err
	}

	user.FirstName = in.FirstName
	user.MiddleName = in.MiddleName
	user.LastName = in.LastName
	user.NepName = in.NepName
	user.ProvinceID = in.ProvinceID
	user.DistrictID = in.DistrictID
	user.CityID = in.CityID
	user.WardNo = in.WardNo
	user.DobAD = in.DobAD
	user.DobBS = in.DobBS
	user.Mobile = in.Mobile
	user.Email = in.Email
	user.Age = age
	user.BloodGroup = in.BloodGroup
	user.Gender = in.Gender
	user.CapitalizeNames()

	if in.Password != "" {
		hashed, err := s.passwordSvc.Hash(in.Password)
		if err != nil {
			return nil, domain.Internal("failed to hash password", err)
		}
		user.PasswordHash = hashed
	}

	if in.Img != "" {
		img, err := s.avatarSvc.Store(ctx, in.Img, user.Mobile)
		if err != nil {
			return nil, err
		}
		user.Img = img
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, wrapStoreErr("failed to update user", err)
	}
	return user, nil
}

func pageOr(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func limitOr(limit int) int {
	if limit < 1 {
		return 10
	}
	return limit
}
