package services

import (
	portsrepo "github.com/finbook/finbook_app/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook_app/internal/core/ports/services"
)

// NewServiceContainer wires every service with its dependencies.
// baseCurrencyName/baseCurrencyCode configure the bootstrap base currency.
func NewServiceContainer(repos portsrepo.RepositoryProvider, baseCurrencyName, baseCurrencyCode string) *portssvc.ServiceContainer {
	commoditySvc := NewCommodityService(repos.CommodityRepo, repos.PriceRepo, baseCurrencyName, baseCurrencyCode)
	postingSvc := NewPostingService(repos.PostingRepo, repos.AccountRepo, commoditySvc)

	return &portssvc.ServiceContainer{
		Commodity:   commoditySvc,
		Price:       NewPriceService(repos.PriceRepo, repos.CommodityRepo),
		Bank:        NewBankService(repos.BankRepo),
		Account:     NewAccountService(repos.AccountRepo, repos.BankRepo, commoditySvc),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.PostingRepo, postingSvc, commoditySvc),
		Posting:     postingSvc,
	}
}
