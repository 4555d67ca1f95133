package services

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// AuthzServiceImpl implements domain.AuthzService on top of the session
// store and the policy store.
type AuthzServiceImpl struct {
	sessionRepo domain.SessionRepository
	userRepo    domain.UserRepository
	assignments domain.RoleAssignments
}

// NewAuthzService creates a new authorization service
func NewAuthzService(
	sessionRepo domain.SessionRepository,
	userRepo domain.UserRepository,
	assignments domain.RoleAssignments,
) domain.AuthzService {
	return &AuthzServiceImpl{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		assignments: assignments,
	}
}

// Resolve implements domain.AuthzService. A token unknown to the session
// store is unauthorized regardless of how it was produced.
func (s *AuthzServiceImpl) Resolve(ctx context.Context, token string) (*domain.Principal, error) {
	session, err := s.sessionRepo.FindByToken(ctx, token)
	if err != nil {
		if domain.KindOf(err) == domain.KindUnauthenticated || domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.Unauthenticated("unauthorized")
		}
		return nil, domain.Internal("failed to look up session token", err)
	}

	user, err := s.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return nil, domain.Unauthenticated("unauthorized")
		}
		return nil, domain.Internal("failed to look up user", err)
	}

	roles, err := s.assignments.RolesForUser(user.ID)
	if err != nil {
		return nil, domain.Internal("failed to load roles", err)
	}

	return &domain.Principal{User: user, Roles: roles}, nil
}

// HasAnyRole implements domain.AuthzService
func (s *AuthzServiceImpl) HasAnyRole(principal *domain.Principal, roles ...string) bool {
	for _, role := range roles {
		if principal.HasRole(role) {
			return true
		}
	}
	return false
}

// HasPermission implements domain.AuthzService
func (s *AuthzServiceImpl) HasPermission(principal *domain.Principal, permission string) (bool, error) {
	ok, err := s.assignments.HasPermission(principal.User.ID, permission)
	if err != nil {
		return false, domain.Internal("failed to check permission", err)
	}
	return ok, nil
}

// RequireAnyRole implements domain.AuthzService
func (s *AuthzServiceImpl) RequireAnyRole(principal *domain.Principal, roles ...string) error {
	if !s.HasAnyRole(principal, roles...) {
		return domain.Forbidden("forbidden")
	}
	return nil
}
