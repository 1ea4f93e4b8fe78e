package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/time_clock_app/internal/core/ports/services"
	"github.com/SscSPs/time_clock_app/internal/dto"
	"github.com/SscSPs/time_clock_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// KioskTokenHandler handles HTTP requests for kiosk terminal tokens
type KioskTokenHandler struct {
	tokenSvc services.KioskTokenSvc
}

// NewKioskTokenHandler creates a new KioskTokenHandler
func NewKioskTokenHandler(tokenSvc services.KioskTokenSvc) *KioskTokenHandler {
	return &KioskTokenHandler{tokenSvc: tokenSvc}
}

// RegisterKioskTokenRoutes registers the kiosk token routes of a company
func RegisterKioskTokenRoutes(router *gin.RouterGroup, tokenSvc services.KioskTokenSvc) {
	handler := NewKioskTokenHandler(tokenSvc)

	tokensGroup := router.Group("/companies/:company_id/kiosk-tokens")
	{
		tokensGroup.POST("", handler.CreateToken)
		tokensGroup.GET("", handler.ListTokens)
		tokensGroup.DELETE("/:token_id", handler.RevokeToken)
	}
}

// CreateToken handles issuing a kiosk token
// @Summary Issue a kiosk terminal token
// @Description Issues a token for a shared clock terminal of the company. The token is shown only once.
// @Description Terminals send it as `x-api-key: <token>` and must then provide worker_id in clock requests.
// @Tags kiosk
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param company_id path string true "Company ID"
// @Param request body dto.CreateKioskTokenRequest true "Token details"
// @Success 201 {object} dto.CreateKioskTokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{company_id}/kiosk-tokens [post]
func (h *KioskTokenHandler) CreateToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthenticated(c, logger)
		return
	}
	companyID, ok := uuidParam(c, logger, "company_id")
	if !ok {
		return
	}

	var req dto.CreateKioskTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	tokenStr, token, err := h.tokenSvc.CreateKioskToken(c.Request.Context(), creatorUserID, companyID, req.Name, req.ExpiresIn())
	if err != nil {
		respondError(c, logger, err)
		return
	}

	logger.Info("Kiosk token issued", slog.String("company_id", companyID), slog.String("token_id", token.TokenID))
	c.JSON(http.StatusCreated, dto.CreateKioskTokenResponse{
		TokenString: tokenStr,
		Details:     dto.ToKioskTokenResponse(*token),
	})
}

// ListTokens handles listing the kiosk tokens of a company
// @Summary List kiosk tokens
// @Description Lists token metadata of the company's terminals, never the token values.
// @Tags kiosk
// @Produce json
// @Security BearerAuth
// @Param company_id path string true "Company ID"
// @Success 200 {object} dto.ListKioskTokensResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{company_id}/kiosk-tokens [get]
func (h *KioskTokenHandler) ListTokens(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthenticated(c, logger)
		return
	}

	companyID, ok := uuidParam(c, logger, "company_id")
	if !ok {
		return
	}

	tokens, err := h.tokenSvc.ListKioskTokens(c.Request.Context(), userID, companyID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToKioskTokenResponseList(tokens))
}

// RevokeToken handles revoking a kiosk token
// @Summary Revoke a kiosk token
// @Description Revokes a terminal token. The terminal is rejected from then on.
// @Tags kiosk
// @Produce json
// @Security BearerAuth
// @Param company_id path string true "Company ID"
// @Param token_id path string true "Token ID (UUID format)" format(uuid)
// @Success 204 "Token revoked successfully"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{company_id}/kiosk-tokens/{token_id} [delete]
func (h *KioskTokenHandler) RevokeToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		respondUnauthenticated(c, logger)
		return
	}

	companyID, ok := uuidParam(c, logger, "company_id")
	if !ok {
		return
	}
	tokenID, ok := uuidParam(c, logger, "token_id")
	if !ok {
		return
	}

	if err := h.tokenSvc.RevokeKioskToken(c.Request.Context(), userID, companyID, tokenID); err != nil {
		respondError(c, logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
