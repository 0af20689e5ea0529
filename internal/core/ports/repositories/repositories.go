package repositories

// RepositoryProvider holds every repository of one storage backend.
// Both the embedded and the client-server backends fill the same provider.
type RepositoryProvider struct {
	PostingRepo   PostingRepositoryFacade
	ClosingRepo   ClosingRepositoryFacade
	StaffUserRepo StaffUserRepository
}
