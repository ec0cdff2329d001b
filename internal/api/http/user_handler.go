package http

import (
	"net/http"

	"skillswap-backend/internal/service"
	"skillswap-backend/internal/validation"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

type updateProfileRequest struct {
	Name      string `json:"name" validate:"omitempty,min=2,max=100"`
	Bio       string `json:"bio" validate:"max=2000"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url"`
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := h.userSvc.GetProfile(r.Context(), actorID)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "profile", user)
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if details := validation.Struct(req); details != nil {
		ValidationError(w, details)
		return
	}

	user, err := h.userSvc.UpdateProfile(r.Context(), actorID, req.Name, req.Bio, req.AvatarURL)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "profile updated", user)
}
