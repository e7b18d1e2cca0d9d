package auth

import (
	"context"       // Context for store operations
	"encoding/json" // Per-user token sets are stored as JSON arrays
	"errors"        // Sentinel errors
	"strconv"       // User IDs are stored as strings
	"time"          // Login timestamp

	"ecommerce_api/internal/cache"  // Injected key-value capability
	"ecommerce_api/internal/domain" // Importing domain models

	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Cache key prefixes for the token registry
const (
	tokenKeyPrefix   = "auth_token:"  // auth_token:<token> -> owning user id
	userTokensPrefix = "user_tokens:" // user_tokens:<userId> -> JSON array of tokens
)

// ErrInvalidCredentials is returned when the email/password pair does not match
// an active account
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenService issues signed tokens and mirrors their validity in the cache so
// they can be revoked before their signed expiry
type TokenService struct {
	db     *gorm.DB    // User lookups and last-login updates
	store  cache.Store // Token registry
	secret string      // HS256 signing secret
}

// NewTokenService wires the session component to its collaborators
func NewTokenService(db *gorm.DB, store cache.Store, secret string) *TokenService {
	return &TokenService{db: db, store: store, secret: secret}
}

// Authenticate looks up the user by email and compares the stored hash against
// the supplied password. Inactive accounts are rejected. Updates last_login_at
// on success.
func (s *TokenService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	var user domain.User // Fetch user from database
	if err := s.db.WithContext(ctx).Preload("Customer").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, ErrInvalidCredentials // Unknown email
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials // Deactivated account
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	// Record the login time
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).Update("last_login_at", now).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Issue signs a token for the user and records it in the cache: the token key
// maps to the owning user id, and the token is appended to the user's active
// token set. Both entries expire with the token itself.
func (s *TokenService) Issue(ctx context.Context, user *domain.User) (string, error) {
	token, err := GenerateJWT(user.ID, user.Email, user.Role, s.secret) // Sign the token
	if err != nil {
		return "", err
	}
	// Record the token's owner
	if err := s.store.Set(ctx, tokenKeyPrefix+token, strconv.FormatUint(uint64(user.ID), 10), TokenTTL); err != nil {
		return "", err
	}
	// Append to the user's active token set
	userKey := userTokensPrefix + strconv.FormatUint(uint64(user.ID), 10)
	var tokens []string
	if raw, found, err := s.store.Get(ctx, userKey); err == nil && found {
		_ = json.Unmarshal([]byte(raw), &tokens) // Ignore a corrupt set, start fresh
	}
	tokens = append(tokens, token)
	b, err := json.Marshal(tokens)
	if err != nil {
		return "", err
	}
	if err := s.store.Set(ctx, userKey, string(b), TokenTTL); err != nil {
		return "", err
	}
	return token, nil
}

// ResolveUser loads a token owner's current record. Deleted and deactivated
// accounts resolve to an error, so a live token stops working the moment its
// user does.
func (s *TokenService) ResolveUser(ctx context.Context, userID uint) (*domain.User, error) {
	var user domain.User // Fetch user from database
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, ErrInvalidCredentials // Account no longer exists
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials // Deactivated account
	}
	return &user, nil
}

// Validate checks the cache for the token's recorded owner and compares it to
// the claimed user id. Cache errors and misses both read as invalid.
func (s *TokenService) Validate(ctx context.Context, token string, userID uint) bool {
	stored, found, err := s.store.Get(ctx, tokenKeyPrefix+token)
	if err != nil || !found {
		return false // Fail closed on cache miss or unavailability
	}
	return stored == strconv.FormatUint(uint64(userID), 10)
}

// Refresh resets the cache-side expiry of a tracked token. The signed expiry
// claim is untouched, so the token still dies at its original window even when
// the cache entry has been extended.
func (s *TokenService) Refresh(ctx context.Context, token string) error {
	return s.store.Expire(ctx, tokenKeyPrefix+token, TokenTTL)
}

// Revoke removes the token's cache entry and drops it from the user's active
// token set. The set is deleted when it empties.
func (s *TokenService) Revoke(ctx context.Context, token string, userID uint) error {
	if err := s.store.Del(ctx, tokenKeyPrefix+token); err != nil {
		return err
	}
	userKey := userTokensPrefix + strconv.FormatUint(uint64(userID), 10)
	raw, found, err := s.store.Get(ctx, userKey)
	if err != nil || !found {
		return err // Nothing tracked for this user
	}
	var tokens []string
	_ = json.Unmarshal([]byte(raw), &tokens)
	// Keep every token except the revoked one
	remaining := tokens[:0]
	for _, t := range tokens {
		if t != token {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == 0 {
		return s.store.Del(ctx, userKey) // Last token gone, drop the set
	}
	b, err := json.Marshal(remaining)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, userKey, string(b), TokenTTL)
}

// RevokeAll scans the tracked tokens, removes every one owned by the user and
// clears the per-user set. Other users' tokens are left untouched.
func (s *TokenService) RevokeAll(ctx context.Context, userID uint) error {
	keys, err := s.store.Keys(ctx, tokenKeyPrefix+"*")
	if err != nil {
		return err
	}
	want := strconv.FormatUint(uint64(userID), 10)
	for _, key := range keys {
		owner, found, err := s.store.Get(ctx, key)
		if err != nil || !found {
			continue // Expired between scan and read
		}
		if owner == want {
			if err := s.store.Del(ctx, key); err != nil {
				return err
			}
		}
	}
	return s.store.Del(ctx, userTokensPrefix+want)
}
