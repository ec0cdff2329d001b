package http

import (
	"net/http"

	"skillswap-backend/internal/service"
	"skillswap-backend/internal/validation"
)

type AuthHandler struct {
	authSvc service.AuthService
}

func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type signupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type tokenResponse struct {
	User         any    `json:"user,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if details := validation.Struct(req); details != nil {
		ValidationError(w, details)
		return
	}

	user, access, refresh, err := h.authSvc.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusCreated, "account created", tokenResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if details := validation.Struct(req); details != nil {
		ValidationError(w, details)
		return
	}

	user, access, refresh, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		// Do not reveal whether the email exists.
		Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	JSON(w, http.StatusOK, "logged in", tokenResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if details := validation.Struct(req); details != nil {
		ValidationError(w, details)
		return
	}

	access, refresh, err := h.authSvc.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "token refreshed", tokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}
