package domain

import "time"

type EntryType string

const (
	EntryTypeExchangeDebit EntryType = "EXCHANGE_DEBIT"
	EntryTypeReversal      EntryType = "REVERSAL"
	EntryTypeSignupGrant   EntryType = "SIGNUP_GRANT"
	EntryTypeAdjustment    EntryType = "ADJUSTMENT"
)

type LedgerEntry struct {
	ID               int32     `json:"id"`
	UserID           int32     `json:"user_id"`
	Amount           int32     `json:"amount"` // positive for credit, negative for debit
	Type             EntryType `json:"type"`
	RelatedMessageID *int32    `json:"related_message_id,omitempty"`
	Description      string    `json:"description"`
	CreatedOn        time.Time `json:"created_on"`
}
