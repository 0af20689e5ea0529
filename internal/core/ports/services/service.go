package services

// ServiceContainer holds instances of all the application services.
// It is built once at startup and injected into the handlers and the CLI.
type ServiceContainer struct {
	Posting   PostingSvcFacade
	Pending   PendingPaymentsSvc
	Closing   ClosingSvcFacade
	Reporting ReportingService
	Auth      AuthSvcFacade
}
