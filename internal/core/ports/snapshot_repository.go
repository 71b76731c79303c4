// internal/core/ports/snapshot_repository.go
package ports

import "github.com/ammerola/stock-tracker/internal/core/domain"

// SnapshotRepository defines the persistence port for a whole inventory.
// This interface is implemented by the JSON file adapter.
//
// Read returns a *domain.Error of kind not_found when the resource does not
// exist, parse when its content is malformed, and io for any other failure.
// Write returns kind io on failure.
type SnapshotRepository interface {
	Read(path string) (map[string]domain.ItemRecord, error)
	Write(path string, items map[string]domain.ItemRecord) error
}
