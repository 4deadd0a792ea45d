package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"pulseadmin/internal/auth"
	apperrors "pulseadmin/internal/errors"
	"pulseadmin/internal/model"
	"pulseadmin/internal/rbac"
)

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func testUser(t *testing.T, password string) *model.User {
	return &model.User{
		ID:           1,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: hashPassword(t, password),
		IsActive:     true,
		Profile: &model.UserProfile{
			ID:     1,
			UserID: 1,
			Role:   string(rbac.RoleEditor),
		},
	}
}

func newAuthService(users *MockUserRepository, profiles *MockProfileRepository, orgs *MockOrganizationRepository, store *MockTokenStore) AuthService {
	return NewAuthService(users, profiles, orgs, auth.NewJWTService("test-secret"), store, nil)
}

func TestLoginByEmailAndUsernameYieldSamePrincipal(t *testing.T) {
	user := testUser(t, "secret123")

	users := new(MockUserRepository)
	store := new(MockTokenStore)
	users.On("FindAllByEmail", mock.Anything, "alice@example.com").Return([]model.User{*user}, nil)
	users.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	store.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), "alice", mock.Anything).Return(nil)

	svc := newAuthService(users, new(MockProfileRepository), new(MockOrganizationRepository), store)

	_, _, byEmail, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	assert.NoError(t, err)

	_, _, byUsername, err := svc.Login(context.Background(), "alice", "secret123")
	assert.NoError(t, err)

	assert.Equal(t, byEmail.ID, byUsername.ID)
	assert.Equal(t, byEmail.Username, byUsername.Username)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	user := testUser(t, "secret123")
	disabled := testUser(t, "secret123")
	disabled.IsActive = false

	tests := []struct {
		name       string
		identifier string
		password   string
		setup      func(users *MockUserRepository)
	}{
		{
			name:       "unknown username",
			identifier: "nobody",
			password:   "secret123",
			setup: func(users *MockUserRepository) {
				users.On("FindByUsername", mock.Anything, "nobody").Return(nil, gorm.ErrRecordNotFound)
			},
		},
		{
			name:       "unknown email",
			identifier: "nobody@example.com",
			password:   "secret123",
			setup: func(users *MockUserRepository) {
				users.On("FindAllByEmail", mock.Anything, "nobody@example.com").Return([]model.User{}, nil)
				users.On("FindByUsername", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
		},
		{
			name:       "wrong password",
			identifier: "alice",
			password:   "wrong-password",
			setup: func(users *MockUserRepository) {
				users.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
			},
		},
		{
			name:       "disabled account",
			identifier: "alice",
			password:   "secret123",
			setup: func(users *MockUserRepository) {
				users.On("FindByUsername", mock.Anything, "alice").Return(disabled, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setup(users)
			svc := newAuthService(users, new(MockProfileRepository), new(MockOrganizationRepository), new(MockTokenStore))

			access, refresh, u, err := svc.Login(context.Background(), tt.identifier, tt.password)
			assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
			assert.Empty(t, access)
			assert.Empty(t, refresh)
			assert.Nil(t, u)
		})
	}
}

func TestLoginAmbiguousEmailFallsBackToUsername(t *testing.T) {
	user := testUser(t, "secret123")
	user.Username = "bob@example.com"

	other := testUser(t, "other")
	other.ID = 2

	users := new(MockUserRepository)
	store := new(MockTokenStore)
	// Two accounts share the email: never guess between them.
	users.On("FindAllByEmail", mock.Anything, "bob@example.com").Return([]model.User{*user, *other}, nil)
	users.On("FindByUsername", mock.Anything, "bob@example.com").Return(user, nil)
	store.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), "bob@example.com", mock.Anything).Return(nil)

	svc := newAuthService(users, new(MockProfileRepository), new(MockOrganizationRepository), store)

	_, _, resolved, err := svc.Login(context.Background(), "bob@example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), resolved.ID)
}

func TestRefreshTokenIssuesNewAccessToken(t *testing.T) {
	user := testUser(t, "secret123")

	users := new(MockUserRepository)
	store := new(MockTokenStore)
	users.On("FindByUsername", mock.Anything, "alice").Return(user, nil)

	var storedTokenID string
	store.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), "alice", mock.Anything).
		Run(func(args mock.Arguments) {
			storedTokenID = args.String(1)
		}).Return(nil)

	svc := newAuthService(users, new(MockProfileRepository), new(MockOrganizationRepository), store)

	_, refreshToken, _, err := svc.Login(context.Background(), "alice", "secret123")
	assert.NoError(t, err)

	store.On("GetRefreshToken", mock.Anything, mock.MatchedBy(func(id string) bool {
		return id == storedTokenID
	})).Return(uint(1), "alice", nil)

	accessToken, err := svc.RefreshToken(context.Background(), refreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)
}

func TestRefreshTokenRejectsUnknownToken(t *testing.T) {
	svc := newAuthService(new(MockUserRepository), new(MockProfileRepository), new(MockOrganizationRepository), new(MockTokenStore))

	_, err := svc.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

// Disabling an account blocks new logins immediately, but a previously
// issued access token keeps verifying until it expires. That eventual
// consistency is a deliberate design choice, asserted here.
func TestDisabledAccountKeepsUnexpiredTokenValid(t *testing.T) {
	user := testUser(t, "secret123")

	users := new(MockUserRepository)
	store := new(MockTokenStore)
	users.On("FindByUsername", mock.Anything, "alice").Return(user, nil)
	store.On("StoreRefreshToken", mock.Anything, mock.Anything, uint(1), "alice", mock.Anything).Return(nil)

	jwtService := auth.NewJWTService("test-secret")
	svc := NewAuthService(users, new(MockProfileRepository), new(MockOrganizationRepository), jwtService, store, nil)

	accessToken, _, _, err := svc.Login(context.Background(), "alice", "secret123")
	assert.NoError(t, err)

	// Disable the account after the token was issued.
	user.IsActive = false

	_, _, _, err = svc.Login(context.Background(), "alice", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)

	claims, err := jwtService.ValidateToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
}

func TestResolvePrincipal(t *testing.T) {
	orgID := uintPtr(3)
	user := testUser(t, "secret123")
	user.Profile.OrganizationID = orgID

	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, uint(1)).Return(user, nil)

	svc := newAuthService(users, new(MockProfileRepository), new(MockOrganizationRepository), new(MockTokenStore))

	p, err := svc.ResolvePrincipal(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), p.UserID)
	assert.Equal(t, rbac.RoleEditor, p.Role)
	assert.Equal(t, orgID, p.OrganizationID)
}

func TestResolvePrincipalMissingProfile(t *testing.T) {
	user := testUser(t, "secret123")
	user.Profile = nil

	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, uint(1)).Return(user, nil)

	svc := newAuthService(users, new(MockProfileRepository), new(MockOrganizationRepository), new(MockTokenStore))

	// A missing profile is not an authentication error; it just carries no
	// elevated role.
	p, err := svc.ResolvePrincipal(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 0, p.Role.Rank())
	assert.False(t, rbac.IsAdminOrAbove(p))
	assert.True(t, rbac.IsUser(p))
}

func TestRegisterEnforcesOrganizationQuota(t *testing.T) {
	org := &model.Organization{ID: 5, Name: "Acme", Slug: "acme", MaxUsers: 2}

	users := new(MockUserRepository)
	profiles := new(MockProfileRepository)
	orgs := new(MockOrganizationRepository)
	users.On("FindByUsername", mock.Anything, "carol").Return(nil, gorm.ErrRecordNotFound)
	orgs.On("FindBySlug", mock.Anything, "acme").Return(org, nil)
	profiles.On("CountByOrganization", mock.Anything, uint(5)).Return(int64(2), nil)

	svc := newAuthService(users, profiles, orgs, new(MockTokenStore))

	_, err := svc.Register(context.Background(), RegisterInput{
		Username:         "carol",
		Email:            "carol@example.com",
		Password:         "secret123",
		OrganizationSlug: "acme",
	})
	assert.ErrorIs(t, err, apperrors.ErrOrganizationFull)
}
