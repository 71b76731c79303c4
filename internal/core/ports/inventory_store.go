// internal/core/ports/inventory_store.go
package ports

import "github.com/ammerola/stock-tracker/internal/core/domain"

// InventoryStore defines the application port for the inventory.
// This interface is implemented by services.InventoryStore.
type InventoryStore interface {
	Add(name string, opts ...domain.RecordOption) error
	Remove(name string) bool
	Quantity(name string) int
	Load(path string) error
	Save(path string) error
	Report()
	LowStock(threshold int) []string
	Items() map[string]domain.ItemRecord
	Len() int
	String() string
}
