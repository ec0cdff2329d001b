package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/service"
	"skillswap-backend/internal/validation"
)

type ExchangeHandler struct {
	exchangeSvc service.ExchangeService
}

func NewExchangeHandler(exchangeSvc service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeSvc: exchangeSvc}
}

type createProposalRequest struct {
	RecipientID      int32  `json:"recipient_id" validate:"required,gt=0"`
	RequestedSkillID int32  `json:"requested_skill_id" validate:"required,gt=0"`
	OfferedSkillID   int32  `json:"offered_skill_id" validate:"required,gt=0"`
	Note             string `json:"note" validate:"max=1000"`
}

type respondRequest struct {
	Decision string `json:"decision" validate:"required,oneof=accepted declined"`
}

func (h *ExchangeHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createProposalRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if details := validation.Struct(req); details != nil {
		ValidationError(w, details)
		return
	}

	msg, err := h.exchangeSvc.CreateProposal(r.Context(), actorID, req.RecipientID, req.RequestedSkillID, req.OfferedSkillID, req.Note)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusCreated, "proposal sent", msg)
}

func (h *ExchangeHandler) Respond(w http.ResponseWriter, r *http.Request) {
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

	var req respondRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if details := validation.Struct(req); details != nil {
		ValidationError(w, details)
		return
	}

	decision := domain.MessageStatusDeclined
	if strings.EqualFold(req.Decision, "accepted") {
		decision = domain.MessageStatusAccepted
	}

	msg, err := h.exchangeSvc.Respond(r.Context(), actorID, int32(messageID), decision)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "proposal "+strings.ToLower(string(msg.Status)), msg)
}
