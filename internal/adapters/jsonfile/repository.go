// Package jsonfile persists an inventory as one pretty-printed JSON document.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/internal/core/ports"
)

const (
	indent   = "    "
	filePerm = 0o644
)

// Repository reads and writes inventory snapshots on the local filesystem
type Repository struct{}

// Statically assert that *Repository implements the SnapshotRepository interface.
var _ ports.SnapshotRepository = (*Repository)(nil)

// NewRepository creates a JSON file snapshot repository
func NewRepository() *Repository {
	return &Repository{}
}

// wireRecord mirrors domain.ItemRecord with presence tracking for validation.
type wireRecord struct {
	Quantity *int       `json:"quantity"`
	Tags     *[]*string `json:"tags"`
}

// Read loads the snapshot at path
func (r *Repository) Read(path string) (map[string]domain.ItemRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewNotFoundError("load", path, err)
		}
		return nil, domain.NewIOError("load", path, err)
	}

	items, err := Decode(raw)
	if err != nil {
		return nil, domain.NewParseError("load", path, err)
	}
	return items, nil
}

// Write stores items at path, replacing any previous content
func (r *Repository) Write(path string, items map[string]domain.ItemRecord) error {
	raw, err := Encode(items)
	if err != nil {
		return domain.NewIOError("save", path, err)
	}
	if err := os.WriteFile(path, raw, filePerm); err != nil {
		return domain.NewIOError("save", path, err)
	}
	return nil
}

// Encode renders items as indented JSON with a trailing newline.
// encoding/json sorts the item keys.
func Encode(items map[string]domain.ItemRecord) ([]byte, error) {
	out := make(map[string]domain.ItemRecord, len(items))
	for name, record := range items {
		if record.Tags == nil {
			record.Tags = []string{}
		}
		out[name] = record
	}

	raw, err := json.MarshalIndent(out, "", indent)
	if err != nil {
		return nil, fmt.Errorf("marshal inventory: %w", err)
	}
	return append(raw, '\n'), nil
}

// Decode parses a snapshot document. Every record must carry a non-negative
// integer quantity and a list of string tags, and nothing else.
func Decode(raw []byte) (map[string]domain.ItemRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var wire map[string]*wireRecord
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("decode inventory: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("decode inventory: unexpected data after top-level object")
	}
	if wire == nil {
		return nil, fmt.Errorf("decode inventory: top-level value must be an object")
	}

	items := make(map[string]domain.ItemRecord, len(wire))
	for name, w := range wire {
		if err := domain.ValidateItemName(name); err != nil {
			return nil, err
		}
		if w == nil {
			return nil, fmt.Errorf("item %q: record must be an object", name)
		}
		if w.Quantity == nil {
			return nil, fmt.Errorf("item %q: quantity is required", name)
		}
		if w.Tags == nil || *w.Tags == nil {
			return nil, fmt.Errorf("item %q: tags are required", name)
		}

		tags := make([]string, 0, len(*w.Tags))
		for i, tag := range *w.Tags {
			if tag == nil {
				return nil, fmt.Errorf("item %q: tag %d must be a string", name, i)
			}
			tags = append(tags, *tag)
		}

		record := domain.ItemRecord{Quantity: *w.Quantity, Tags: tags}
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("item %q: %w", name, err)
		}
		items[name] = record
	}

	return items, nil
}
