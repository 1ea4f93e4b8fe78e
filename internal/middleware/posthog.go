package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/time_clock_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health": true,
}

// PosthogMiddleware tracks successful API calls with PostHog. The distinct id
// is the worker, or the kiosk company for terminal requests.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip if PostHog is not initialized or path is in skip list
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		// Process request first
		c.Next()

		// Skip if there was an error processing the request
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Worker or kiosk company, set by the auth middlewares
		distinctID, ok := distinctIDFromContext(c)
		if !ok {
			// Nobody authenticated, can't track event
			return
		}

		// Create event name from route path (e.g., "/api/v1/clock" -> "api_v1_clock")
		eventName := strings.TrimPrefix(c.FullPath(), "/")
		eventName = strings.ReplaceAll(eventName, "/", "_")
		// Skip if event name is empty (e.g., for 404s)
		if eventName == "" {
			return
		}

		// Prepare event properties
		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
		}
		if method, exists := c.Get(authMethodKey); exists {
			props["auth_method"] = method
		}
		// Add route parameters if any
		if len(c.Params) > 0 {
			params := make(map[string]string)
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		// Send event to PostHog
		posthogClient.Enqueue(distinctID, eventName, props)
	}
}

// PosthogEvent sends a custom event from a handler.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if posthogClient == nil || !posthogClient.IsInitialized() {
		return
	}

	distinctID, ok := distinctIDFromContext(c)
	if !ok {
		return
	}

	// Ensure properties is not nil
	if properties == nil {
		properties = make(map[string]any)
	}

	// Add request context
	properties["method"] = c.Request.Method
	properties["path"] = c.Request.URL.Path

	// Send custom event
	posthogClient.Enqueue(distinctID, eventName, properties)
}

func distinctIDFromContext(c *gin.Context) (string, bool) {
	if userID, ok := GetUserIDFromContext(c); ok {
		return userID, true
	}
	if companyID, ok := GetKioskCompanyFromContext(c); ok {
		return "kiosk:" + companyID, true
	}
	return "", false
}
