// internal/core/domain/inventory.go
package domain

import "fmt"

// Inventory defaults
const (
	DefaultQuantity          = 10
	DefaultLowStockThreshold = 5
	DefaultDataFile          = "stock.json"
)

// ItemRecord represents one inventory line
type ItemRecord struct {
	Quantity int      `json:"quantity"`
	Tags     []string `json:"tags"`
}

// RecordOption overrides a field of a new ItemRecord
type RecordOption func(*ItemRecord)

// WithQuantity sets the quantity on hand
func WithQuantity(quantity int) RecordOption {
	return func(r *ItemRecord) {
		r.Quantity = quantity
	}
}

// WithTags sets the record tags. The slice is copied; order and duplicates are kept.
func WithTags(tags ...string) RecordOption {
	return func(r *ItemRecord) {
		r.Tags = append(make([]string, 0, len(tags)), tags...)
	}
}

// NewItemRecord builds a record with the default quantity and no tags, then applies opts
func NewItemRecord(opts ...RecordOption) ItemRecord {
	record := ItemRecord{
		Quantity: DefaultQuantity,
		Tags:     []string{},
	}
	for _, opt := range opts {
		opt(&record)
	}
	if record.Tags == nil {
		record.Tags = []string{}
	}
	return record
}

// Validate performs domain validation on the record
func (r ItemRecord) Validate() error {
	if r.Quantity < 0 {
		return fmt.Errorf("quantity must be non-negative, got %d", r.Quantity)
	}
	return nil
}

// Clone returns a copy that shares no memory with r
func (r ItemRecord) Clone() ItemRecord {
	return ItemRecord{
		Quantity: r.Quantity,
		Tags:     append(make([]string, 0, len(r.Tags)), r.Tags...),
	}
}

// IsLow reports whether the quantity is strictly below threshold
func (r ItemRecord) IsLow(threshold int) bool {
	return r.Quantity < threshold
}

// ValidateItemName checks an item key
func ValidateItemName(name string) error {
	if name == "" {
		return fmt.Errorf("item name is required")
	}
	return nil
}
