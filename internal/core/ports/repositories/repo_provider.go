package repositories

// RepositoryProvider bundles every repository facade for injection into the
// service layer.
type RepositoryProvider struct {
	CommodityRepo   CommodityRepositoryFacade
	PriceRepo       PriceRepositoryFacade
	BankRepo        BankRepositoryFacade
	AccountRepo     AccountRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	PostingRepo     PostingRepositoryWithTx
}
