package services

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// HospitalService manages hospital associations. A user qualifies only
// when it already holds one of the hospital-member roles.
type HospitalService struct {
	hospitalRepo domain.HospitalUserRepository
	userRepo     domain.UserRepository
	assignments  domain.RoleAssignments
	authz        domain.AuthzService
}

// NewHospitalService creates a new hospital association service
func NewHospitalService(
	hospitalRepo domain.HospitalUserRepository,
	userRepo domain.UserRepository,
	assignments domain.RoleAssignments,
	authz domain.AuthzService,
) *HospitalService {
	return &HospitalService{
		hospitalRepo: hospitalRepo,
		userRepo:     userRepo,
		assignments:  assignments,
		authz:        authz,
	}
}

// Add associates a user with a hospital after the member-role pre-check.
func (s *HospitalService) Add(ctx context.Context, principal *domain.Principal, userID, hospitalID uint) (*domain.HospitalUser, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	if err := s.requireMemberRole(ctx, userID); err != nil {
		return nil, err
	}
	hu := &domain.HospitalUser{UserID: userID, HospitalID: hospitalID}
	if err := s.hospitalRepo.Create(ctx, hu); err != nil {
		return nil, wrapStoreErr("failed to create hospital association", err)
	}
	return hu, nil
}

// Show returns the hospital association for a user.
func (s *HospitalService) Show(ctx context.Context, principal *domain.Principal, userID uint) (*domain.HospitalUser, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	hu, err := s.hospitalRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, wrapStoreErr("failed to look up hospital association", err)
	}
	return hu, nil
}

// Update moves a user's association to another hospital.
func (s *HospitalService) Update(ctx context.Context, principal *domain.Principal, userID, hospitalID uint) (*domain.HospitalUser, error) {
	if err := s.authz.RequireAnyRole(principal, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	hu, err := s.hospitalRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, wrapStoreErr("failed to look up hospital association", err)
	}
	hu.HospitalID = hospitalID
	if err := s.hospitalRepo.Update(ctx, hu); err != nil {
		return nil, wrapStoreErr("failed to update hospital association", err)
	}
	return hu, nil
}

func (s *HospitalService) requireMemberRole(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return domain.NotFound("unable to find the user")
		}
		return domain.Internal("failed to look up user", err)
	}
	roles, err := s.assignments.RolesForUser(userID)
	if err != nil {
		return domain.Internal("failed to load roles", err)
	}
	for _, role := range roles {
		for _, member := range domain.HospitalMemberRoles {
			if role == member {
				return nil
			}
		}
	}
	return domain.ValidationError("the user does not hold a hospital member role")
}
