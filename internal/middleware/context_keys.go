package middleware

import (
	"github.com/SscSPs/time_clock_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated subject (worker id).
const userIDKey = contextKey("userID")

// kioskCompanyKey holds the company a kiosk terminal token is bound to.
const kioskCompanyKey = contextKey("kioskCompanyID")

// authMethodKey records which middleware authenticated the request.
const authMethodKey = "authMethod"

// Values stored under authMethodKey.
const (
	AuthMethodJWT   = "jwt"
	AuthMethodKiosk = "kiosk_token"
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v, ok := c.Request.Context().Value(userIDKey).(string); ok && v != "" {
			return v, true
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetKioskCompanyFromContext returns the company of the kiosk token that authenticated the request.
func GetKioskCompanyFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(string(kioskCompanyKey))
	if !exists {
		return "", false
	}
	companyID, ok := v.(string)
	return companyID, ok && companyID != ""
}

// GetActorFromContext builds the clock actor for the request. ok is false when
// neither a bearer token nor a kiosk token authenticated it.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	userID, hasUser := GetUserIDFromContext(c)
	kioskCompany, isKiosk := GetKioskCompanyFromContext(c)
	if !hasUser && !isKiosk {
		return domain.Actor{}, false
	}
	return domain.Actor{SubjectID: userID, KioskCompanyID: kioskCompany}, true
}
