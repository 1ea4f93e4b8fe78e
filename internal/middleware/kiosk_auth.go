package middleware

import (
	"log/slog"

	"github.com/SscSPs/time_clock_app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// KioskTokenAuth authenticates shared clock terminals through the x-api-key header.
// A valid token binds the request to the token's company and marks it as kiosk mode.
// Requests without a key, or with an unusable one, fall through to bearer auth.
func KioskTokenAuth(tokenSvc services.KioskTokenSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawKey := c.GetHeader("x-api-key")
		if rawKey == "" {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())
		token, err := tokenSvc.ValidateKioskToken(c.Request.Context(), rawKey)
		if err != nil {
			logger.Warn("Kiosk token rejected", slog.String("error", err.Error()))
			c.Next()
			return
		}

		enrichedLogger := logger.With(
			slog.String("kiosk_token_id", token.TokenID),
			slog.String("company_id", token.CompanyID),
		)
		c.Request = c.Request.WithContext(WithLogger(c.Request.Context(), enrichedLogger))
		c.Set(string(loggerKey), enrichedLogger)
		c.Set(string(kioskCompanyKey), token.CompanyID)
		c.Set(authMethodKey, AuthMethodKiosk)
		c.Next()
	}
}
