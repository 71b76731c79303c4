package jsonfile_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stock-tracker/internal/adapters/jsonfile"
	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/test/helpers"
)

func TestRepository_WriteThenRead(t *testing.T) {
	repo := jsonfile.NewRepository()
	path := helpers.TempStockPath(t)

	items := helpers.StationeryInventory()
	items["Eraser"] = domain.ItemRecord{Quantity: 0, Tags: []string{"b", "a", "b"}}

	require.NoError(t, repo.Write(path, items))

	loaded, err := repo.Read(path)
	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func TestRepository_WriteFormat(t *testing.T) {
	repo := jsonfile.NewRepository()
	path := helpers.TempStockPath(t)

	require.NoError(t, repo.Write(path, map[string]domain.ItemRecord{
		"Pen":   {Quantity: 15, Tags: []string{"stationery"}},
		"Clips": {Quantity: 3},
	}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	expected := `{
    "Clips": {
        "quantity": 3,
        "tags": []
    },
    "Pen": {
        "quantity": 15,
        "tags": [
            "stationery"
        ]
    }
}
`
	assert.Equal(t, expected, string(raw))
}

func TestRepository_WriteEmpty(t *testing.T) {
	repo := jsonfile.NewRepository()
	path := helpers.TempStockPath(t)

	require.NoError(t, repo.Write(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(raw))

	loaded, err := repo.Read(path)
	require.NoError(t, err)
	assert.Empty(t, loaded)
	assert.NotNil(t, loaded)
}

func TestRepository_ReadMissingFile(t *testing.T) {
	repo := jsonfile.NewRepository()

	items, err := repo.Read(filepath.Join(t.TempDir(), "absent.json"))

	require.Error(t, err)
	assert.Nil(t, items)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRepository_ReadDirectoryIsIOError(t *testing.T) {
	repo := jsonfile.NewRepository()

	_, err := repo.Read(t.TempDir())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_WriteFailureIsIOError(t *testing.T) {
	repo := jsonfile.NewRepository()
	path := filepath.Join(t.TempDir(), "missing-dir", "stock.json")

	err := repo.Write(path, helpers.StationeryInventory())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.Equal(t, domain.KindIO, domain.KindOf(err))
}

func TestRepository_ReadMalformed(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		errorMsg string
	}{
		{name: "empty_file", content: ""},
		{name: "truncated_object", content: `{"Pen": {"quantity": 15, "tags": ["stat`},
		{name: "not_json", content: "quantity=15"},
		{name: "top_level_array", content: `[{"quantity": 1, "tags": []}]`},
		{name: "top_level_null", content: `null`, errorMsg: "must be an object"},
		{name: "trailing_data", content: `{} {}`, errorMsg: "unexpected data"},
		{name: "null_record", content: `{"Pen": null}`, errorMsg: "record must be an object"},
		{name: "missing_quantity", content: `{"Pen": {"tags": []}}`, errorMsg: "quantity is required"},
		{name: "missing_tags", content: `{"Pen": {"quantity": 1}}`, errorMsg: "tags are required"},
		{name: "null_tags", content: `{"Pen": {"quantity": 1, "tags": null}}`, errorMsg: "tags are required"},
		{name: "negative_quantity", content: `{"Pen": {"quantity": -2, "tags": []}}`, errorMsg: "non-negative"},
		{name: "fractional_quantity", content: `{"Pen": {"quantity": 1.5, "tags": []}}`},
		{name: "string_quantity", content: `{"Pen": {"quantity": "7", "tags": []}}`},
		{name: "non_string_tag", content: `{"Pen": {"quantity": 1, "tags": ["a", 2]}}`},
		{name: "null_tag_element", content: `{"Pen": {"quantity": 1, "tags": ["a", null]}}`, errorMsg: "tag 1 must be a string"},
		{name: "unknown_field", content: `{"Pen": {"quantity": 1, "tags": [], "price": 3}}`},
		{name: "empty_item_name", content: `{"": {"quantity": 1, "tags": []}}`, errorMsg: "item name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := jsonfile.NewRepository()
			path := helpers.CreateTempFile(t, []byte(tt.content), ".json")

			items, err := repo.Read(path)

			require.Error(t, err)
			assert.Nil(t, items)
			assert.ErrorIs(t, err, domain.ErrParse)
			if tt.errorMsg != "" {
				assert.Contains(t, err.Error(), tt.errorMsg)
			}
		})
	}
}

func TestDecode_AcceptsWhitespaceAndOrder(t *testing.T) {
	raw := []byte("\n  {\"B\": {\"tags\": [\"x\", \"x\"], \"quantity\": 0},\n \"A\": {\"quantity\": 4, \"tags\": []}}  \n\n")

	items, err := jsonfile.Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, map[string]domain.ItemRecord{
		"A": {Quantity: 4, Tags: []string{}},
		"B": {Quantity: 0, Tags: []string{"x", "x"}},
	}, items)
}

func TestEncode_IsValidJSONShape(t *testing.T) {
	raw, err := jsonfile.Encode(helpers.CreateTestRecords(5))
	require.NoError(t, err)

	var generic map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	require.Len(t, generic, 5)

	for name, record := range generic {
		assert.Len(t, record, 2, name)
		assert.Contains(t, record, "quantity")
		assert.Contains(t, record, "tags")
	}
}
