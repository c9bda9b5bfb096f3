package services

import (
	"context"
	"fmt"
	"time"

	"github.com/finbook/finbook_app/internal/core/domain"
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
	"github.com/finbook/finbook_app/internal/dto"
)

// bankService provides business logic for banks.
type bankService struct {
	bankRepo portsrepo.BankRepositoryFacade
}

// NewBankService creates a new bank service.
func NewBankService(bankRepo portsrepo.BankRepositoryFacade) portssvc.BankSvcFacade {
	return &bankService{bankRepo: bankRepo}
}

var _ portssvc.BankSvcFacade = (*bankService)(nil)

func (s *bankService) CreateBank(ctx context.Context, req dto.CreateBankRequest) (*domain.Bank, error) {
	now := time.Now().UTC()
	bank := domain.Bank{
		Name: req.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.bankRepo.SaveBank(ctx, &bank); err != nil {
		return nil, fmt.Errorf("failed to create bank: %w", err)
	}
	return &bank, nil
}

func (s *bankService) GetBankByID(ctx context.Context, bankID int64) (*domain.Bank, error) {
	return s.bankRepo.FindBankByID(ctx, bankID)
}

func (s *bankService) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	return s.bankRepo.ListBanks(ctx)
}
