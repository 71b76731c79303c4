// internal/core/services/inventory.go
package services

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/core/ports"
)

// InventoryStore owns the in-memory name-keyed record set.
// It is not safe for concurrent use; callers serialize access.
type InventoryStore struct {
	items    map[string]domain.ItemRecord
	repo     ports.SnapshotRepository
	reporter ports.Reporter
}

// Statically assert that *InventoryStore implements the InventoryStore interface.
var _ ports.InventoryStore = (*InventoryStore)(nil)

// NewInventoryStore creates an empty inventory store
func NewInventoryStore(repo ports.SnapshotRepository, reporter ports.Reporter) *InventoryStore {
	if logger, ok := reporter.(*slog.Logger); ok {
		reporter = logger.With(slog.String("service", "inventory"))
	}
	return &InventoryStore{
		items:    make(map[string]domain.ItemRecord),
		repo:     repo,
		reporter: reporter,
	}
}

// Add inserts or replaces the record for name. A rejected record leaves the
// store unchanged; the returned error is also reported.
func (s *InventoryStore) Add(name string, opts ...domain.RecordOption) error {
	record := domain.NewItemRecord(opts...)

	if err := domain.ValidateItemName(name); err != nil {
		return s.reject(name, err)
	}
	if err := record.Validate(); err != nil {
		return s.reject(name, err)
	}

	s.items[name] = record

	s.reporter.Info("added item",
		slog.String("item", name),
		slog.Int("quantity", record.Quantity),
		slog.Any("tags", record.Tags))

	return nil
}

func (s *InventoryStore) reject(name string, err error) error {
	verr := domain.NewValidationError("add", name, err)
	s.reporter.Error("rejected item",
		slog.String("item", name),
		slog.String("error", err.Error()))
	return verr
}

// Remove deletes name and reports whether it was present
func (s *InventoryStore) Remove(name string) bool {
	if _, ok := s.items[name]; !ok {
		s.reporter.Warn("attempted to remove non-existent item",
			slog.String("item", name))
		return false
	}

	delete(s.items, name)
	s.reporter.Info("removed item", slog.String("item", name))

	return true
}

// Quantity returns the stored quantity for name, or 0 if absent
func (s *InventoryStore) Quantity(name string) int {
	return s.items[name].Quantity
}

// Load replaces the store contents with the snapshot at path. Any failure
// leaves the store empty; a missing file is a cold start and returns nil.
func (s *InventoryStore) Load(path string) error {
	items, err := s.repo.Read(path)
	if err != nil {
		s.items = make(map[string]domain.ItemRecord)

		switch domain.KindOf(err) {
		case domain.KindNotFound:
			s.reporter.Warn("inventory file not found, starting with empty inventory",
				slog.String("path", path))
			return nil
		case domain.KindParse:
			s.reporter.Error("invalid inventory file, starting with empty inventory",
				slog.String("path", path),
				slog.String("error", err.Error()))
		default:
			s.reporter.Error("failed to read inventory file, starting with empty inventory",
				slog.String("path", path),
				slog.String("error", err.Error()))
		}
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	if items == nil {
		items = make(map[string]domain.ItemRecord)
	}
	s.items = items

	s.reporter.Info("inventory loaded",
		slog.String("path", path),
		slog.Int("count", len(items)))

	return nil
}

// Save writes the whole store to path. The in-memory state is never touched.
func (s *InventoryStore) Save(path string) error {
	if err := s.repo.Write(path, s.items); err != nil {
		s.reporter.Error("failed to save inventory",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to save inventory: %w", err)
	}

	s.reporter.Info("inventory saved",
		slog.String("path", path),
		slog.Int("count", len(s.items)))

	return nil
}

// Report emits one informational event per item in name order
func (s *InventoryStore) Report() {
	if len(s.items) == 0 {
		s.reporter.Info("inventory is empty")
		return
	}

	s.reporter.Info("inventory contents", slog.Int("count", len(s.items)))
	for _, name := range s.Names() {
		record := s.items[name]
		s.reporter.Info("inventory item",
			slog.String("item", name),
			slog.Int("quantity", record.Quantity),
			slog.Any("tags", record.Tags))
	}
}

// LowStock returns the names, in ascending order, whose quantity is below threshold
func (s *InventoryStore) LowStock(threshold int) []string {
	low := []string{}
	for _, name := range s.Names() {
		if s.items[name].IsLow(threshold) {
			low = append(low, name)
		}
	}

	if len(low) > 0 {
		s.reporter.Warn("low stock items",
			slog.String("items", strings.Join(low, ", ")),
			slog.Int("threshold", threshold))
	} else {
		s.reporter.Info("all items are sufficiently stocked",
			slog.Int("threshold", threshold))
	}

	return low
}

// Names returns the item names in ascending order
func (s *InventoryStore) Names() []string {
	names := make([]string, 0, len(s.items))
	for name := range s.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Items returns a deep copy of the store contents
func (s *InventoryStore) Items() map[string]domain.ItemRecord {
	items := make(map[string]domain.ItemRecord, len(s.items))
	for name, record := range s.items {
		items[name] = record.Clone()
	}
	return items
}

// Len returns the number of items held
func (s *InventoryStore) Len() int {
	return len(s.items)
}

func (s *InventoryStore) String() string {
	return fmt.Sprintf("InventoryStore(%d items)", len(s.items))
}
