package service

import (
	"context"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/repository"
)

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

func (s *ledgerService) GetBalance(ctx context.Context, userID int32) (int32, error) {
	return s.ledgerRepo.GetBalance(ctx, userID)
}

func (s *ledgerService) GetEntries(ctx context.Context, userID int32, page, pageSize int32) ([]domain.LedgerEntry, int32, error) {
	return s.ledgerRepo.ListEntries(ctx, userID, page, pageSize)
}
