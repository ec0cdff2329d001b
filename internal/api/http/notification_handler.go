package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"skillswap-backend/internal/service"
)

type NotificationHandler struct {
	noteSvc service.NotificationService
}

func NewNotificationHandler(noteSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{noteSvc: noteSvc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	page, pageSize := pagination(r)
	notes, total, err := h.noteSvc.GetNotifications(r.Context(), actorID, page, pageSize)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "notifications", map[string]any{
		"notifications": notes,
		"total":         total,
	})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	noteID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := h.noteSvc.MarkAsRead(r.Context(), actorID, int32(noteID)); err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "notification marked read", nil)
}
