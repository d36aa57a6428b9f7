package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/taskana/taskana/application/port/inbound"
	"github.com/taskana/taskana/domain/entity"
	"github.com/taskana/taskana/infrastructure/http/response"
	"github.com/taskana/taskana/infrastructure/http/validator"
	"github.com/taskana/taskana/pkg/apperror"
)

const (
	refreshCookieName   = "jwt"
	refreshCookieMaxAge = 60 * 60 * 24

	// Role codes the frontend keys its views on. They exist only on the
	// wire; internally the admin flag is a plain boolean.
	roleAdmin    = 1990
	roleEmployee = 2022
)

type AuthHandler struct {
	authUseCase inbound.AuthUseCase
}

func NewAuthHandler(authUseCase inbound.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

type sessionResponse struct {
	Role  int          `json:"role"`
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

type refreshResponse struct {
	IsAdmin bool         `json:"isAdmin"`
	Token   string       `json:"token"`
	User    *entity.User `json:"user"`
}

func roleCode(isAdmin bool) int {
	if isAdmin {
		return roleAdmin
	}
	return roleEmployee
}

func setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   refreshCookieMaxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req inbound.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if violations := validator.ValidateLogin(req); len(violations) > 0 {
		response.WriteError(w, apperror.Validation(violations))
		return
	}

	req.ClientIP = clientIP(r)

	result, err := h.authUseCase.Login(r.Context(), req)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	setRefreshCookie(w, result.RefreshToken)
	response.WriteJSON(w, http.StatusOK, sessionResponse{
		Role:  roleCode(result.User.IsAdmin),
		User:  result.User,
		Token: result.AccessToken,
	})
}

// Register creates a regular account. Self-registration can never mint an
// admin; that path exists only behind the admin-guarded user management
// endpoint.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req inbound.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	req.IsAdmin = false

	if violations := validator.ValidateRegister(req); len(violations) > 0 {
		response.WriteError(w, apperror.Validation(violations))
		return
	}

	result, err := h.authUseCase.Register(r.Context(), req)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	setRefreshCookie(w, result.RefreshToken)
	response.WriteJSON(w, http.StatusCreated, sessionResponse{
		Role:  roleCode(result.User.IsAdmin),
		User:  result.User,
		Token: result.AccessToken,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		response.Unauthorized(w, "")
		return
	}

	result, err := h.authUseCase.Refresh(r.Context(), cookie.Value)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusAccepted, refreshResponse{
		IsAdmin: result.User.IsAdmin,
		Token:   result.AccessToken,
		User:    result.User,
	})
}

// Logout is idempotent from the client's view: no cookie means nothing to do.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	empNumber, err := h.authUseCase.Logout(r.Context(), cookie.Value)
	if err != nil {
		response.WriteError(w, err)
		return
	}

	clearRefreshCookie(w)
	response.WriteJSON(w, http.StatusOK, map[string]string{
		"Message": fmt.Sprintf("User number %d logged out successfully!", empNumber),
	})
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
