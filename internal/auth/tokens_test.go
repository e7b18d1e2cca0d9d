package auth

import (
	"context"
	"testing"

	"ecommerce_api/internal/cache"
	"ecommerce_api/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// newTestService builds a TokenService over an in-memory database and store
func newTestService(t *testing.T) *TokenService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Customer{}))
	return NewTokenService(db, cache.NewMemoryStore(), testSecret)
}

// createUser inserts a user with a hashed password
func createUser(t *testing.T, db *gorm.DB, email, password string, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{
		Email:    email,
		Password: string(hash),
		Name:     "Test User",
		Role:     domain.RoleCustomer,
		IsActive: active,
	}
	require.NoError(t, db.Create(user).Error)
	if !active {
		// The model's default:true tag makes GORM skip a zero-value bool on
		// insert, so deactivation must be persisted explicitly
		require.NoError(t, db.Model(user).Update("is_active", false).Error)
		user.IsActive = false
	}
	return user
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createUser(t, svc.db, "user@example.com", "password123", true)

	// Correct credentials succeed and record the login time
	user, err := svc.Authenticate(ctx, "user@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)
	var stored domain.User
	require.NoError(t, svc.db.Where("email = ?", "user@example.com").First(&stored).Error)
	assert.NotNil(t, stored.LastLoginAt)

	// Wrong password is rejected
	_, err = svc.Authenticate(ctx, "user@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email is rejected
	_, err = svc.Authenticate(ctx, "ghost@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	svc := newTestService(t)
	createUser(t, svc.db, "inactive@example.com", "password123", false)

	_, err := svc.Authenticate(context.Background(), "inactive@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestIssueAndValidate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := createUser(t, svc.db, "user@example.com", "password123", true)

	token, err := svc.Issue(ctx, user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The issued token validates for its owner and nobody else
	assert.True(t, svc.Validate(ctx, token, user.ID))
	assert.False(t, svc.Validate(ctx, token, user.ID+1))
	assert.False(t, svc.Validate(ctx, "not-a-token", user.ID))

	// The signed claims carry the identity
	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, domain.RoleCustomer, claims.Role)

	// A different secret fails signature verification
	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}

func TestRevoke(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := createUser(t, svc.db, "user@example.com", "password123", true)

	first, err := svc.Issue(ctx, user)
	require.NoError(t, err)
	second, err := svc.Issue(ctx, user)
	require.NoError(t, err)

	// Revoking one token leaves the other valid
	require.NoError(t, svc.Revoke(ctx, first, user.ID))
	assert.False(t, svc.Validate(ctx, first, user.ID))
	assert.True(t, svc.Validate(ctx, second, user.ID))
}

func TestRevokeAll(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	alice := createUser(t, svc.db, "alice@example.com", "password123", true)
	bob := createUser(t, svc.db, "bob@example.com", "password123", true)

	a1, err := svc.Issue(ctx, alice)
	require.NoError(t, err)
	a2, err := svc.Issue(ctx, alice)
	require.NoError(t, err)
	b1, err := svc.Issue(ctx, bob)
	require.NoError(t, err)

	// Every one of alice's tokens dies, bob's survives
	require.NoError(t, svc.RevokeAll(ctx, alice.ID))
	assert.False(t, svc.Validate(ctx, a1, alice.ID))
	assert.False(t, svc.Validate(ctx, a2, alice.ID))
	assert.True(t, svc.Validate(ctx, b1, bob.ID))
}

func TestResolveUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := createUser(t, svc.db, "user@example.com", "password123", true)

	// An active account resolves with its current role
	resolved, err := svc.ResolveUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, resolved.Role)

	// A role change is visible on the next resolution
	require.NoError(t, svc.db.Model(&domain.User{}).Where("id = ?", user.ID).Update("role", domain.RoleSales).Error)
	resolved, err = svc.ResolveUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSales, resolved.Role)

	// Deactivated and missing accounts both fail to resolve
	require.NoError(t, svc.db.Model(&domain.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)
	_, err = svc.ResolveUser(ctx, user.ID)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.ResolveUser(ctx, user.ID+100)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshKeepsTokenValid(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := createUser(t, svc.db, "user@example.com", "password123", true)

	token, err := svc.Issue(ctx, user)
	require.NoError(t, err)
	require.NoError(t, svc.Refresh(ctx, token))
	assert.True(t, svc.Validate(ctx, token, user.ID))
}
