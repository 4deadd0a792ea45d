package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "pulseadmin/internal/errors"
	"pulseadmin/internal/metrics"
	"pulseadmin/internal/model"
	"pulseadmin/internal/rbac"
	"pulseadmin/internal/repository"
)

// CreateUserInput carries the fields an administrator supplies when
// provisioning an account.
type CreateUserInput struct {
	Username       string
	Email          string
	Password       string
	Role           string
	OrganizationID *uint
	Bio            string
}

// UpdateUserInput carries the mutable account fields. Role is deliberately
// absent; it only changes through ChangeRole.
type UpdateUserInput struct {
	Email    *string
	IsActive *bool
	Bio      *string
}

// UserService exposes user management operations. Every method takes the
// caller's Principal and performs its own permission and tenant checks.
type UserService interface {
	List(ctx context.Context, p *rbac.Principal) ([]model.User, error)
	Get(ctx context.Context, p *rbac.Principal, id uint) (*model.User, error)
	Create(ctx context.Context, p *rbac.Principal, in CreateUserInput) (*model.User, error)
	Update(ctx context.Context, p *rbac.Principal, id uint, in UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, p *rbac.Principal, id uint) error
	ChangeRole(ctx context.Context, p *rbac.Principal, targetID uint, newRole string) (*model.User, error)
	Me(ctx context.Context, userID uint) (*model.User, error)
}

type userService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	orgs     repository.OrganizationRepository
	metrics  *metrics.Metrics
}

// NewUserService builds a UserService.
func NewUserService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	orgs repository.OrganizationRepository,
	m *metrics.Metrics,
) UserService {
	return &userService{users: users, profiles: profiles, orgs: orgs, metrics: m}
}

// List returns the users visible to the caller: everyone for superadmin,
// the caller's own organization for everyone else.
func (s *userService) List(ctx context.Context, p *rbac.Principal) ([]model.User, error) {
	if !rbac.CanManageUsers(p) {
		s.metrics.RecordDenial("manage_users")
		return nil, apperrors.ErrPermissionDenied
	}
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	candidates := make([]*model.User, len(all))
	for i := range all {
		candidates[i] = &all[i]
	}
	visible := rbac.VisibleTo(p, candidates)
	out := make([]model.User, len(visible))
	for i, u := range visible {
		out[i] = *u
	}
	return out, nil
}

func (s *userService) Get(ctx context.Context, p *rbac.Principal, id uint) (*model.User, error) {
	if !rbac.CanManageUsers(p) {
		s.metrics.RecordDenial("manage_users")
		return nil, apperrors.ErrPermissionDenied
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.CanObserve(p, user.OwningOrganization()) {
		return nil, apperrors.ErrTenantMismatch
	}
	return user, nil
}

// Create provisions an account inside a tenant. Non-superadmins can only
// provision into their own organization, and the organization's max_users
// quota is enforced here, never retroactively.
func (s *userService) Create(ctx context.Context, p *rbac.Principal, in CreateUserInput) (*model.User, error) {
	if !rbac.CanManageUsers(p) {
		s.metrics.RecordDenial("manage_users")
		return nil, apperrors.ErrPermissionDenied
	}

	orgID := in.OrganizationID
	if !rbac.IsSuperAdmin(p) {
		orgID = p.OrganizationID
	}

	role := in.Role
	if role == "" {
		role = string(rbac.RoleUser)
	}
	parsed, ok := rbac.ParseRole(role)
	if !ok {
		return nil, apperrors.ErrPrivilegeEscalation
	}
	if !rbac.CanChangeRole(p, parsed) {
		s.metrics.RecordDenial("role_change")
		return nil, apperrors.ErrPrivilegeEscalation
	}

	if orgID != nil {
		org, err := s.orgs.FindByID(ctx, *orgID)
		if err != nil {
			return nil, fmt.Errorf("find organization: %w", err)
		}
		count, err := s.profiles.CountByOrganization(ctx, org.ID)
		if err != nil {
			return nil, fmt.Errorf("count organization members: %w", err)
		}
		if count >= int64(org.MaxUsers) {
			return nil, apperrors.ErrOrganizationFull
		}
	}

	existing, err := s.users.FindByUsername(ctx, in.Username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashed),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	profile := &model.UserProfile{
		UserID:         user.ID,
		Role:           string(parsed),
		OrganizationID: orgID,
		Bio:            in.Bio,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	user.Profile = profile

	return user, nil
}

func (s *userService) Update(ctx context.Context, p *rbac.Principal, id uint, in UpdateUserInput) (*model.User, error) {
	if !rbac.CanManageUsers(p) {
		s.metrics.RecordDenial("manage_users")
		return nil, apperrors.ErrPermissionDenied
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rbac.CanMutate(p, user.OwningOrganization()) {
		return nil, apperrors.ErrTenantMismatch
	}

	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if in.Bio != nil && user.Profile != nil {
		user.Profile.Bio = *in.Bio
		if err := s.profiles.Update(ctx, user.Profile); err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, p *rbac.Principal, id uint) error {
	if !rbac.CanManageUsers(p) {
		s.metrics.RecordDenial("manage_users")
		return apperrors.ErrPermissionDenied
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !rbac.CanMutate(p, user.OwningOrganization()) {
		return apperrors.ErrTenantMismatch
	}
	return s.users.Delete(ctx, id)
}

// ChangeRole assigns newRole to the target user. The caller must be able to
// manage users, must outrank the role being granted (superadmin may grant
// anything), and must share the target's tenant unless superadmin.
func (s *userService) ChangeRole(ctx context.Context, p *rbac.Principal, targetID uint, newRole string) (*model.User, error) {
	if !rbac.CanManageUsers(p) {
		s.metrics.RecordDenial("manage_users")
		return nil, apperrors.ErrPermissionDenied
	}

	role, ok := rbac.ParseRole(newRole)
	if !ok {
		return nil, apperrors.ErrPrivilegeEscalation
	}
	if !rbac.CanChangeRole(p, role) {
		s.metrics.RecordDenial("role_change")
		return nil, apperrors.ErrPrivilegeEscalation
	}

	user, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if !rbac.CanMutate(p, user.OwningOrganization()) {
		return nil, apperrors.ErrTenantMismatch
	}
	if user.Profile == nil {
		return nil, apperrors.ErrNotFound
	}

	user.Profile.Role = string(role)
	if err := s.profiles.Update(ctx, user.Profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// Me returns the caller's own record with profile.
func (s *userService) Me(ctx context.Context, userID uint) (*model.User, error) {
	return s.users.FindByID(ctx, userID)
}
