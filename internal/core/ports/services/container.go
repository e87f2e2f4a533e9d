package services

// ServiceContainer bundles the engine services for route registration.
type ServiceContainer struct {
	Registry  AccountRegistrySvcFacade
	Journal   PersistedJournalSvcFacade
	Engine    AccountingEngineSvcFacade
	Suggester CategorySuggester
}
