package sqlite

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

// exportSource reads one table and encodes its rows.
type exportSource struct {
	table string
	load  func(b *Backend) ([]json.RawMessage, error)
}

func exportOf[T any](table string, getAll func(b *Backend) ([]*T, error)) exportSource {
	return exportSource{table: table, load: func(b *Backend) ([]json.RawMessage, error) {
		rows, err := getAll(b)
		if err != nil {
			return nil, err
		}
		return marshalRecords(rows)
	}}
}

var exportSources = []exportSource{
	exportOf(types.ActivitiesTable, func(b *Backend) ([]*types.Activity, error) { return b.Activities().GetAll() }),
	exportOf(types.FarmersTable, func(b *Backend) ([]*types.Farmer, error) { return b.Farmers().GetAll() }),
	exportOf(types.BuyersTable, func(b *Backend) ([]*types.Buyer, error) { return b.Buyers().GetAll() }),
	exportOf(types.ProductTypesTable, func(b *Backend) ([]*types.ProductType, error) { return b.ProductTypes().GetAll() }),
	exportOf(types.SalesTable, func(b *Backend) ([]*types.Sale, error) { return b.Sales().GetAll() }),
	exportOf(types.FarmerActivitiesTable, func(b *Backend) ([]*types.FarmerActivity, error) {
		return b.FarmerActivities().GetAll()
	}),
	exportOf(types.CooperativesTable, func(b *Backend) ([]*types.Cooperative, error) { return b.Cooperatives().GetAll() }),
	exportOf(types.MembershipsTable, func(b *Backend) ([]*types.Membership, error) { return b.Memberships().GetAll() }),
}

// ExportJSONL writes every table to <dir>/<table>.jsonl, one row per line,
// and returns the number of rows written per table. Each file is replaced
// atomically.
func (b *Backend) ExportJSONL(dir string) (map[string]int, error) {
	if _, err := b.handle(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}

	counts := make(map[string]int, len(exportSources))
	for _, src := range exportSources {
		records, err := src.load(b)
		if err != nil {
			return nil, fmt.Errorf("exporting %s: %w", src.table, err)
		}
		if err := writeJSONL(filepath.Join(dir, src.table+".jsonl"), records); err != nil {
			return nil, fmt.Errorf("exporting %s: %w", src.table, err)
		}
		counts[src.table] = len(records)
	}
	b.log.Info("export complete", zap.String("dir", dir), zap.Any("rows", counts))
	return counts, nil
}
