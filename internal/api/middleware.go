package api

import (
	keycloakauth "github.com/JorgeSaicoski/keycloak-auth"
	"github.com/JorgeSaicoski/microservice-commons/responses"
	"github.com/codeedex/hr-office/internal/apperr"
	"github.com/codeedex/hr-office/internal/auth"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware protects the back-office routes used by the admin panel.
func AuthMiddleware() gin.HandlerFunc {
	config := keycloakauth.DefaultConfig()
	config.LoadFromEnv() // Loads KEYCLOAK_URL and KEYCLOAK_REALM

	config.SkipPaths = []string{"/health"}
	config.RequiredClaims = []string{"sub", "preferred_username"}

	tokenAuth := keycloakauth.SimpleAuthMiddleware(config)

	return func(c *gin.Context) {
		// If the upstream gateway already authenticated the user and
		// provided the ID, trust that header and skip JWT validation.
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set("userID", userID)
			c.Next()
			return
		}

		// Fallback to standard JWT based authentication.
		tokenAuth(c)
	}
}

// EmployeeAuthMiddleware protects the mobile-app routes. It validates the
// employee token issued at login and stores the employee code in the
// context.
func EmployeeAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			responses.Unauthorized(c, "Missing or malformed Authorization header")
			c.Abort()
			return
		}

		claims, err := auth.VerifyEmployeeToken(header[len(prefix):])
		if err != nil {
			responses.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("employeeID", claims.EmployeeID)
		c.Set("employeeEmail", claims.Email)
		c.Next()
	}
}

// EmployeeCode returns the employee code set by EmployeeAuthMiddleware.
func EmployeeCode(c *gin.Context) (string, bool) {
	code, exists := c.Get("employeeID")
	if !exists {
		return "", false
	}
	s, ok := code.(string)
	return s, ok && s != ""
}

// HandleError maps a service error to the matching HTTP response.
func HandleError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		responses.BadRequest(c, err.Error())
	case apperr.IsDuplicate(err):
		responses.Conflict(c, err.Error())
	case apperr.IsNotFound(err):
		responses.NotFound(c, err.Error())
	default:
		responses.InternalError(c, err.Error())
	}
}
