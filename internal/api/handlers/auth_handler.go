package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"billingform/internal/pkg/errors"
	"billingform/internal/platform/auth"
)

type AuthHandler struct {
	clients  *auth.ClientStore
	tokenSvc *auth.TokenService
}

func NewAuthHandler(clients *auth.ClientStore, tokenSvc *auth.TokenService) *AuthHandler {
	return &AuthHandler{clients: clients, tokenSvc: tokenSvc}
}

// Token exchanges client credentials for a short-lived access token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
	}
	if err := decodeJSON(r, &req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if err := h.clients.Authenticate(req.ClientID, req.ClientSecret); err != nil {
		log.Warn().Str("client_id", req.ClientID).Msg("client authentication failed")
		errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Invalid client credentials", nil)
		return
	}

	token, expires, err := h.tokenSvc.GenerateAccessToken(req.ClientID)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate access token")
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to generate token", nil)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   expires.Unix(),
	})
}
