package services

// ServiceContainer aggregates every service facade for dependency injection
// into the handlers.
type ServiceContainer struct {
	Commodity   CommoditySvcFacade
	Price       PriceSvcFacade
	Bank        BankSvcFacade
	Account     AccountSvcFacade
	Transaction TransactionSvcFacade
	Posting     PostingSvcFacade
}
