package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"referral-app-server/internal/access"
	"referral-app-server/internal/config"
	"referral-app-server/internal/models"
	"referral-app-server/internal/utils"
)

// AuthMiddleware creates a middleware for JWT authentication.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		tokenString := parts[1]
		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret)
		if err != nil {
			utils.Unauthorized(c, "Invalid token: "+err.Error())
			c.Abort()
			return
		}

		// Set user information in context for downstream handlers
		c.Set("userID", claims.UserID)

		c.Next()
	}
}

// ScopeMiddleware loads the caller's profile row and resolves it into the
// data-access scope every handler filters by. It should be used *after*
// AuthMiddleware. A profile whose role or company linkage is invalid is
// rejected here, before any handler runs.
func ScopeMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			utils.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		var profile models.UserProfile
		if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				utils.Forbidden(c, "User profile not found")
			} else {
				utils.InternalServerError(c, "Database error loading profile: "+err.Error())
			}
			c.Abort()
			return
		}

		scope, err := access.Resolve(&profile)
		if err != nil {
			utils.Forbidden(c, "Profile not authorized: "+err.Error())
			c.Abort()
			return
		}

		c.Set("profile", &profile)
		c.Set("scope", scope)

		c.Next()
	}
}

// RoleAuthMiddleware creates a middleware for role-based authorization.
// It should be used *after* ScopeMiddleware.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, exists := GetScopeFromContext(c)
		if !exists {
			utils.InternalServerError(c, "Scope not found in context. ScopeMiddleware might be missing.")
			c.Abort()
			return
		}

		isAllowed := false
		for _, allowedRole := range allowedRoles {
			if scope.Role == allowedRole {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			utils.Forbidden(c, "You do not have permission to access this resource.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// Helper function to get user ID from context
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", false
	}
	idStr, ok := userID.(string)
	return idStr, ok
}

// GetProfileFromContext returns the caller's profile loaded by ScopeMiddleware.
func GetProfileFromContext(c *gin.Context) (*models.UserProfile, bool) {
	value, exists := c.Get("profile")
	if !exists {
		return nil, false
	}
	profile, ok := value.(*models.UserProfile)
	return profile, ok
}

// GetScopeFromContext returns the data-access scope resolved by ScopeMiddleware.
func GetScopeFromContext(c *gin.Context) (access.Scope, bool) {
	value, exists := c.Get("scope")
	if !exists {
		return access.Scope{}, false
	}
	scope, ok := value.(access.Scope)
	return scope, ok
}
