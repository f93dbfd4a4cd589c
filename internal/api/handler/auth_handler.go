package handler

import (
	"encoding/json"
	"net/http"
	"workout_api/internal/api/middleware"
	"workout_api/internal/app/service"
	"workout_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes mounts the public routes; logout sits behind the auth guard.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator(h.authService))
		authed.Post("/logout", h.logout)
	})
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithAppError(w, r, common.NewFieldError("body", "must be a JSON object with email and password"))
		return
	}

	resp, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithAppError(w, r, common.NewFieldError("body", "must be a JSON object with email and password"))
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing session context")
		return
	}
	if err := h.authService.Logout(r.Context(), session); err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
