package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Skill        *SkillHandler
	Message      *MessageHandler
	Exchange     *ExchangeHandler
	Ledger       *LedgerHandler
	Notification *NotificationHandler
}

// NewRouter wires all API routes. Everything under /api/v1 except auth
// requires a valid access token.
func NewRouter(h Handlers, authMw *AuthMiddleware) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/signup", h.Auth.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)

	// Protected routes
	protected := api.NewRoute().Subrouter()
	protected.Use(authMw.Handler)

	protected.HandleFunc("/users/me", h.User.GetMe).Methods(http.MethodGet)
	protected.HandleFunc("/users/me", h.User.UpdateMe).Methods(http.MethodPut)

	protected.HandleFunc("/users/me/skills", h.Skill.ListMine).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/skills", h.Skill.Add).Methods(http.MethodPost)
	protected.HandleFunc("/users/me/skills/{id:[0-9]+}", h.Skill.Remove).Methods(http.MethodDelete)
	protected.HandleFunc("/skills", h.Skill.Browse).Methods(http.MethodGet)

	protected.HandleFunc("/exchanges", h.Exchange.CreateProposal).Methods(http.MethodPost)
	protected.HandleFunc("/exchanges/{id:[0-9]+}/respond", h.Exchange.Respond).Methods(http.MethodPost)

	protected.HandleFunc("/conversations", h.Message.ListConversations).Methods(http.MethodGet)
	protected.HandleFunc("/conversations/{partnerId:[0-9]+}/messages", h.Message.GetConversation).Methods(http.MethodGet)
	protected.HandleFunc("/messages", h.Message.Send).Methods(http.MethodPost)
	protected.HandleFunc("/messages/{id:[0-9]+}/read", h.Message.MarkRead).Methods(http.MethodPost)
	protected.HandleFunc("/messages/unread-count", h.Message.UnreadCount).Methods(http.MethodGet)

	protected.HandleFunc("/ledger/balance", h.Ledger.GetBalance).Methods(http.MethodGet)
	protected.HandleFunc("/ledger/entries", h.Ledger.ListEntries).Methods(http.MethodGet)

	protected.HandleFunc("/notifications", h.Notification.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id:[0-9]+}/read", h.Notification.MarkRead).Methods(http.MethodPost)

	return r
}
