package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pulseadmin/internal/auth"
	apperrors "pulseadmin/internal/errors"
	"pulseadmin/internal/metrics"
	"pulseadmin/internal/model"
	"pulseadmin/internal/rbac"
	"pulseadmin/internal/repository"
)

const bcryptCost = 10

// dummyHash is compared against when no account matches the identifier, so a
// miss costs the same as a wrong password and timing cannot reveal whether
// the account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Username         string
	Email            string
	Password         string
	Bio              string
	OrganizationSlug string
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Login(ctx context.Context, identifier, password string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
	ResolvePrincipal(ctx context.Context, userID uint) (*rbac.Principal, error)
}

type authService struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	orgs       repository.OrganizationRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	metrics    *metrics.Metrics
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	orgs repository.OrganizationRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	m *metrics.Metrics,
) AuthService {
	return &authService{
		users:      users,
		profiles:   profiles,
		orgs:       orgs,
		jwtService: jwtService,
		tokenStore: tokenStore,
		metrics:    m,
	}
}

// Register creates a new user with hashed password and a profile. When an
// organization slug is supplied the new profile joins that organization,
// subject to its max_users quota.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	existing, err := s.users.FindByUsername(ctx, in.Username)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	var orgID *uint
	if in.OrganizationSlug != "" {
		org, err := s.orgs.FindBySlug(ctx, in.OrganizationSlug)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, apperrors.ErrNotFound
			}
			return nil, fmt.Errorf("find organization: %w", err)
		}
		count, err := s.profiles.CountByOrganization(ctx, org.ID)
		if err != nil {
			return nil, fmt.Errorf("count organization members: %w", err)
		}
		if count >= int64(org.MaxUsers) {
			return nil, apperrors.ErrOrganizationFull
		}
		orgID = &org.ID
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	profile := &model.UserProfile{
		UserID:         user.ID,
		Role:           string(rbac.RoleUser),
		OrganizationID: orgID,
		Bio:            in.Bio,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	user.Profile = profile

	return user, nil
}

// Login authenticates an account by username or email and returns access and
// refresh tokens. Every failure mode maps to the same generic error so the
// caller cannot distinguish unknown identifier, wrong password and disabled
// account.
func (s *authService) Login(ctx context.Context, identifier, password string) (accessToken, refreshToken string, user *model.User, err error) {
	user = s.resolveAccount(ctx, identifier)
	if user == nil {
		// Burn a hash comparison anyway to keep timing flat.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		s.metrics.RecordLogin("failure")
		return "", "", nil, apperrors.ErrAuthenticationFailed
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.metrics.RecordLogin("failure")
		return "", "", nil, apperrors.ErrAuthenticationFailed
	}

	if !user.IsActive {
		s.metrics.RecordLogin("failure")
		return "", "", nil, apperrors.ErrAuthenticationFailed
	}

	accessToken, err = s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Username, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	s.metrics.RecordLogin("success")
	return accessToken, refreshToken, user, nil
}

// resolveAccount classifies the identifier and looks the account up. An
// identifier containing "@" is tried as an email first; a lookup that does
// not yield exactly one match falls through to the username path. The
// fallback is deliberate: an email-shaped string can still be someone's
// username.
func (s *authService) resolveAccount(ctx context.Context, identifier string) *model.User {
	if strings.Contains(identifier, "@") {
		matches, err := s.users.FindAllByEmail(ctx, identifier)
		if err == nil && len(matches) == 1 {
			return &matches[0]
		}
		// Zero matches or an ambiguous email: never guess between accounts.
	}
	user, err := s.users.FindByUsername(ctx, identifier)
	if err != nil {
		return nil
	}
	return user
}

// RefreshToken validates a refresh token and returns a new access token
// without re-running credential verification.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		s.metrics.RecordRefresh("failure")
		return "", apperrors.ErrTokenInvalid
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		s.metrics.RecordRefresh("failure")
		return "", apperrors.ErrTokenInvalid
	}

	storedUserID, storedUsername, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		s.metrics.RecordRefresh("failure")
		return "", apperrors.ErrTokenInvalid
	}

	if storedUserID != claims.UserID || storedUsername != claims.Username {
		s.metrics.RecordRefresh("failure")
		return "", apperrors.ErrTokenInvalid
	}

	accessToken, err = s.jwtService.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	s.metrics.RecordRefresh("success")
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return apperrors.ErrTokenInvalid
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}

// ResolvePrincipal builds the per-request Principal from the current account
// and profile records. A missing profile is not an error: the principal just
// carries no elevated role.
func (s *authService) ResolvePrincipal(ctx context.Context, userID uint) (*rbac.Principal, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	p := &rbac.Principal{
		UserID:      user.ID,
		Username:    user.Username,
		Email:       user.Email,
		IsActive:    user.IsActive,
		IsSuperuser: user.IsSuperuser,
		IsStaff:     user.IsStaff,
	}
	if user.Profile != nil {
		role, _ := rbac.ParseRole(user.Profile.Role)
		p.Role = role
		p.OrganizationID = user.Profile.OrganizationID
	}
	return p, nil
}
