package http

import (
	"net/http"

	"skillswap-backend/internal/service"
)

type LedgerHandler struct {
	ledgerSvc service.LedgerService
}

func NewLedgerHandler(ledgerSvc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	balance, err := h.ledgerSvc.GetBalance(r.Context(), actorID)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "balance", map[string]int32{"credits": balance})
}

func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	page, pageSize := pagination(r)
	entries, total, err := h.ledgerSvc.GetEntries(r.Context(), actorID, page, pageSize)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "ledger entries", map[string]any{
		"entries": entries,
		"total":   total,
	})
}
