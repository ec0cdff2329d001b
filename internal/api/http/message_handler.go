package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"skillswap-backend/internal/service"
	"skillswap-backend/internal/validation"
)

type MessageHandler struct {
	msgSvc service.MessageService
}

func NewMessageHandler(msgSvc service.MessageService) *MessageHandler {
	return &MessageHandler{msgSvc: msgSvc}
}

type sendMessageRequest struct {
	RecipientID int32  `json:"recipient_id" validate:"required,gt=0"`
	Body        string `json:"body" validate:"required,max=4000"`
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req sendMessageRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if details := validation.Struct(req); details != nil {
		ValidationError(w, details)
		return
	}

	msg, err := h.msgSvc.SendChatMessage(r.Context(), actorID, req.RecipientID, req.Body)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusCreated, "message sent", msg)
}

func (h *MessageHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	convos, err := h.msgSvc.ListConversations(r.Context(), actorID)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "conversations", convos)
}

func (h *MessageHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	partnerID, err := strconv.ParseInt(mux.Vars(r)["partnerId"], 10, 32)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid partner id")
		return
	}

	msgs, err := h.msgSvc.GetConversation(r.Context(), actorID, int32(partnerID))
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "messages", msgs)
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	messageID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid message id")
		return
	}

	msg, err := h.msgSvc.MarkRead(r.Context(), actorID, int32(messageID))
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "message marked read", msg)
}

func (h *MessageHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	count, err := h.msgSvc.UnreadCount(r.Context(), actorID)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "unread count", map[string]int32{"unread_count": count})
}
