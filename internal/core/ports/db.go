package ports

import "github.com/sparkle-network/sparkled/internal/core/domain"

// RepoManager gives access to the repositories of a storage backend and owns
// the backend's lifecycle.
type RepoManager interface {
	// TradeRepository returns the repository where trades are persisted.
	TradeRepository() domain.TradeRepository
	// Close releases the resources held by the backend.
	Close()
}
