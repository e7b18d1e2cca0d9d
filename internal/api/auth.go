package api

import (
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"ecommerce_api/internal/auth"       // Credential and session component
	"ecommerce_api/internal/domain"     // Importing domain models
	"ecommerce_api/internal/middleware" // Context keys set by the auth middleware

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`           // Display name must be provided
	Email    string `json:"email" binding:"required,email"`    // Login email must be provided
	Password string `json:"password" binding:"required,min=6"` // Password of at least 6 characters
	Phone    string `json:"phone"`                             // Optional contact phone
	Role     string `json:"role"`                              // Optional role, defaults to customer
	Address  string `json:"address"`                           // Optional shipping address
	City     string `json:"city"`                              // Optional city
	State    string `json:"state"`                             // Optional state
	ZipCode  string `json:"zip_code"`                          // Optional postal code
	Country  string `json:"country"`                           // Optional country, defaults to USA
}

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterHandler creates a user and, for the customer role, its customer profile
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Default and validate the role
		role := req.Role
		if role == "" {
			role = domain.RoleCustomer // Default to customer
		}
		if !domain.ValidRole(role) {
			// Unknown role, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}
		email := strings.ToLower(req.Email) // Emails compare case-insensitively
		// Duplicate emails are a conflict, checked up front for a clean status code
		var existing domain.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}
		// Hash the password
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{
			Name:     req.Name,     // Display name
			Email:    email,        // Normalized email
			Password: string(hash), // Hashed password
			Phone:    req.Phone,    // Contact phone
			Role:     role,         // Validated role
			IsActive: true,         // Accounts start active
		}
		// Create the user and, when needed, the customer profile in one transaction
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err // Return error to rollback
			}
			// Customers get a profile holding their shipping fields
			if user.Role == domain.RoleCustomer {
				country := req.Country
				if country == "" {
					country = "USA" // Default country
				}
				customer := domain.Customer{
					UserID:  user.ID,     // One-to-one with the new user
					Address: req.Address, // Shipping address
					City:    req.City,    // City
					State:   req.State,   // State
					ZipCode: req.ZipCode, // Postal code
					Country: country,     // Country
				}
				if err := tx.Create(&customer).Error; err != nil {
					return err // Return error to rollback
				}
				user.Customer = &customer
			}
			return nil // Commit transaction
		})
		if err != nil {
			// A concurrent insert can still hit the unique index
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"email": email,       // Attempted email
				"error": err.Error(), // Error message
			}).Error("Registration failed") // Log registration failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		// Return the created user, password omitted by the model's json tags
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
	}
}

// LoginHandler authenticates a user, issues a tracked token and returns it
func LoginHandler(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Check the credentials and record the login time
		user, err := tokens.Authenticate(c.Request.Context(), strings.ToLower(req.Email), req.Password)
		if err != nil {
			// Wrong password, unknown email and inactive accounts all look the same
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Sign the token and mirror its validity in the cache
		token, err := tokens.Issue(c.Request.Context(), user)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // User ID
				"error":   err.Error(), // Error message
			}).Error("Token issue failed") // Log issue failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,   // User ID
			"role":    user.Role, // Role carried by the token
		}).Info("User logged in") // Log successful login
		c.JSON(http.StatusOK, gin.H{
			"access_token": token, // Bearer token for subsequent requests
			"user": gin.H{
				"id":    user.ID,    // User ID
				"email": user.Email, // Login email
				"name":  user.Name,  // Display name
				"role":  user.Role,  // Role
			},
		})
	}
}

// LogoutHandler revokes the presented token
func LogoutHandler(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.ContextUserID)     // Authenticated user id
		token := c.GetString(middleware.ContextToken)     // Raw bearer token
		if err := tokens.Revoke(c.Request.Context(), token, userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}

// LogoutAllHandler revokes every token issued to the authenticated user
func LogoutAllHandler(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.ContextUserID) // Authenticated user id
		if err := tokens.RevokeAll(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": userID}).Info("All sessions revoked") // Log bulk revocation
		c.JSON(http.StatusOK, gin.H{"message": "Logged out from all devices successfully"})
	}
}

// RefreshHandler slides the cache-side validity window of the presented token.
// The signed expiry claim is not reissued, so the token still expires at its
// original window regardless of the extended cache TTL.
func RefreshHandler(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetString(middleware.ContextToken) // Raw bearer token
		if err := tokens.Refresh(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Token refreshed successfully"})
	}
}

// ProfileHandler returns the authenticated user's record
func ProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(middleware.ContextUserID) // Authenticated user id
		var user domain.User                          // Fetch user from database
		if err := db.Preload("Customer").First(&user, userID).Error; err != nil {
			// If user not found, return not found
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user}) // Password is excluded by json tags
	}
}
