package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"campaign-server/internal/auth"
	"campaign-server/internal/middleware"
	"campaign-server/internal/shared/config"
	"campaign-server/internal/shared/cookies"
	"campaign-server/internal/shared/errors"
	"campaign-server/internal/shared/response"
)

type AuthHandler struct {
	service *auth.Service
	logger  *slog.Logger
}

func NewAuthHandler(service *auth.Service, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With("handler", "auth"),
	}
}

// Login starts the login flow by redirecting to the identity provider.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("operation", "login", "remote_addr", r.RemoteAddr)

	url, err := h.service.BeginLogin(r.UserAgent())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	logger.Debug("Redirecting to identity provider")
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// Callback completes the login flow, sets the session cookie and sends the
// browser back to the frontend.
func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("operation", "callback", "remote_addr", r.RemoteAddr)
	cfg := config.GlobalConfig

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		logger.Warn("Authorization denied at provider", "provider_error", errParam)
		h.redirectWithError(w, r, "login_denied")
		return
	}

	code := r.URL.Query().Get("code")
	state := r.URL.Query().Get("state")
	if code == "" {
		logger.Error("Callback missing authorization code")
		h.redirectWithError(w, r, "login_error")
		return
	}

	token, user, err := h.service.CompleteLogin(r.Context(), state, code, r.UserAgent())
	if err != nil {
		logger.Error("Login failed", "error", err)
		h.redirectWithError(w, r, "login_error")
		return
	}

	cookies.SetAuthCookie(w, token)

	logger.Info("Login successful", "user_id", user.ID)
	http.Redirect(w, r, fmt.Sprintf("%s/auth/callback?success=true", cfg.Frontend.URL), http.StatusTemporaryRedirect)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookies.ClearAuthCookie(w)
	response.Success(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated user's account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("operation", "me")

	claims := middleware.GetUserFromContext(r)
	if claims == nil {
		response.Error(w, r, logger, errors.Unauthorized("authentication required"))
		return
	}

	user, err := h.service.GetUser(r.Context(), claims.UserID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, user)
}

func (h *AuthHandler) redirectWithError(w http.ResponseWriter, r *http.Request, code string) {
	cfg := config.GlobalConfig
	http.Redirect(w, r, fmt.Sprintf("%s/auth/callback?error=%s", cfg.Frontend.URL, code), http.StatusTemporaryRedirect)
}
