package sqlite

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

func TestExportJSONL(t *testing.T) {
	b := newTestBackend(t)
	_, err := b.SeedSampleData()
	require.NoError(t, err)
	mustBuyer(t, b, "Market Stall")

	dir := filepath.Join(t.TempDir(), "export")
	counts, err := b.ExportJSONL(dir)
	require.NoError(t, err)

	for _, table := range types.StandardTableNames {
		records, err := readJSONL(filepath.Join(dir, table+".jsonl"))
		require.NoError(t, err, table)
		assert.Len(t, records, counts[table], table)
	}
	assert.Equal(t, 3, counts[types.BuyersTable])

	records, err := readJSONL(filepath.Join(dir, types.MembershipsTable+".jsonl"))
	require.NoError(t, err)
	var m types.Membership
	require.NoError(t, json.Unmarshal(records[0], &m))
	assert.Equal(t, "Member", m.Role)
}

func TestExportJSONLEmptyStore(t *testing.T) {
	b := newTestBackend(t)
	dir := t.TempDir()

	counts, err := b.ExportJSONL(dir)
	require.NoError(t, err)
	for _, table := range types.StandardTableNames {
		assert.Zero(t, counts[table])
		info, err := os.Stat(filepath.Join(dir, table+".jsonl"))
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	}
}

func TestReadJSONL(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr error
	}{
		{name: "blank lines skipped", content: "{\"id\":1}\n\n  \n{\"id\":2}\n", want: []string{`{"id":1}`, `{"id":2}`}},
		{name: "empty file", content: ""},
		{name: "malformed line", content: "{\"id\":1}\nnot json\n", wantErr: types.ErrInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "rows.jsonl")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			records, err := readJSONL(path)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), "line 2")
				return
			}
			require.NoError(t, err)
			require.Len(t, records, len(tt.want))
			for i, w := range tt.want {
				assert.JSONEq(t, w, string(records[i]))
			}
		})
	}
}

func TestWriteJSONLReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.jsonl")
	require.NoError(t, writeJSONL(path, []json.RawMessage{json.RawMessage(`{"a":1}`), json.RawMessage(`{"a":2}`)}))
	require.NoError(t, writeJSONL(path, []json.RawMessage{json.RawMessage(`{"a":3}`)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":3}\n", string(data))

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".jsonl-*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}
