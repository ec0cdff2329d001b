package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyResolved  = errors.New("proposal already resolved")
	ErrInvalidRecipient = errors.New("recipient does not exist")
	ErrEmailTaken       = errors.New("email already registered")
)

// InvalidProposalError reports a malformed exchange proposal: a missing skill
// reference, a skill that does not belong to the right party, or a
// non-positive rate.
type InvalidProposalError struct {
	Reason string
}

func (e *InvalidProposalError) Error() string {
	return fmt.Sprintf("invalid proposal: %s", e.Reason)
}

// InsufficientCreditsError reports which party could not cover their side of
// a settlement and by how much.
type InsufficientCreditsError struct {
	UserID    int32
	Required  int32
	Available int32
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("user %d has insufficient credits: required %d, available %d",
		e.UserID, e.Required, e.Available)
}

// SettlementError wraps a failure during the two-leg credit transfer after
// the compensating rollback has been applied.
type SettlementError struct {
	MessageID int32
	Err       error
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement failed for message %d: %v", e.MessageID, e.Err)
}

func (e *SettlementError) Unwrap() error { return e.Err }
