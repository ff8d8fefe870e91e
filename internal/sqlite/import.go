package sqlite

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

// importer carries the ID remapping between exported rows and the rows
// created for them.
type importer struct {
	dir    string
	ids    map[string]map[int64]int64 // table -> exported ID -> new ID
	counts map[string]int
}

// ref maps an exported reference to the ID of the imported row.
func (im *importer) ref(entity, field, table string, old int64) (int64, error) {
	id, ok := im.ids[table][old]
	if !ok {
		return 0, &types.ReferenceError{Entity: entity, Field: field, ID: old}
	}
	return id, nil
}

func (im *importer) optionalRef(entity, field, table string, old *int64) (*int64, error) {
	if old == nil {
		return nil, nil
	}
	id, err := im.ref(entity, field, table, *old)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// importTable decodes <table>.jsonl and hands each row to create. Rows with
// an exported ID are recorded so later tables can remap references to them.
// A missing file imports nothing.
func importTable[T any](im *importer, table string, exportedID func(*T) int64, create func(*T) error) error {
	records, err := readJSONL(filepath.Join(im.dir, table+".jsonl"))
	if errors.Is(err, fs.ErrNotExist) {
		im.counts[table] = 0
		return nil
	}
	if err != nil {
		return err
	}

	ids := make(map[int64]int64, len(records))
	for i, rec := range records {
		var row T
		if err := json.Unmarshal(rec, &row); err != nil {
			return fmt.Errorf("%s record %d: %w: %v", table, i+1, types.ErrInvalidData, err)
		}
		var old int64
		if exportedID != nil {
			old = exportedID(&row)
		}
		if err := create(&row); err != nil {
			return fmt.Errorf("%s record %d: %w", table, i+1, err)
		}
		if exportedID != nil {
			ids[old] = exportedID(&row)
		}
	}
	im.ids[table] = ids
	im.counts[table] = len(records)
	return nil
}

// ImportJSONL loads the <table>.jsonl files written by ExportJSONL from dir
// into an empty store through the Create operations and returns the number
// of rows imported per table. Rows get new IDs and references are remapped
// to them. Rows imported before a failing row remain.
func (b *Backend) ImportJSONL(dir string) (map[string]int, error) {
	db, err := b.handle()
	if err != nil {
		return nil, err
	}
	for _, table := range types.StandardTableNames {
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		if n > 0 {
			return nil, fmt.Errorf("%s has %d rows: %w", table, n, types.ErrStoreNotEmpty)
		}
	}

	im := &importer{
		dir:    dir,
		ids:    make(map[string]map[int64]int64, len(types.StandardTableNames)),
		counts: make(map[string]int, len(types.StandardTableNames)),
	}

	steps := []func() error{
		func() error {
			return importTable(im, types.ActivitiesTable, func(a *types.Activity) int64 { return a.ID },
				func(a *types.Activity) error {
					a.ID = 0
					return b.Activities().Create(a)
				})
		},
		func() error {
			return importTable(im, types.BuyersTable, func(by *types.Buyer) int64 { return by.ID },
				func(by *types.Buyer) error {
					by.ID = 0
					return b.Buyers().Create(by)
				})
		},
		func() error {
			return importTable(im, types.ProductTypesTable, func(p *types.ProductType) int64 { return p.ID },
				func(p *types.ProductType) error {
					p.ID = 0
					return b.ProductTypes().Create(p)
				})
		},
		func() error {
			return importTable(im, types.CooperativesTable, func(c *types.Cooperative) int64 { return c.ID },
				func(c *types.Cooperative) error {
					c.ID = 0
					return b.Cooperatives().Create(c)
				})
		},
		func() error {
			return importTable(im, types.FarmersTable, func(f *types.Farmer) int64 { return f.ID },
				func(f *types.Farmer) error {
					var err error
					if f.ActivityID, err = im.optionalRef("farmer", "activity_id", types.ActivitiesTable, f.ActivityID); err != nil {
						return err
					}
					f.ID = 0
					return b.Farmers().Create(f)
				})
		},
		func() error {
			return importTable(im, types.SalesTable, func(s *types.Sale) int64 { return s.ID },
				func(s *types.Sale) error {
					var err error
					if s.FarmerID, err = im.ref("sale", "farmer_id", types.FarmersTable, s.FarmerID); err != nil {
						return err
					}
					if s.BuyerID, err = im.ref("sale", "buyer_id", types.BuyersTable, s.BuyerID); err != nil {
						return err
					}
					if s.ProductTypeID, err = im.optionalRef("sale", "product_type_id", types.ProductTypesTable, s.ProductTypeID); err != nil {
						return err
					}
					s.ID = 0
					return b.Sales().Create(s)
				})
		},
		func() error {
			return importTable(im, types.FarmerActivitiesTable, func(fa *types.FarmerActivity) int64 { return fa.ID },
				func(fa *types.FarmerActivity) error {
					var err error
					if fa.FarmerID, err = im.ref("farmer activity", "farmer_id", types.FarmersTable, fa.FarmerID); err != nil {
						return err
					}
					if fa.ActivityID, err = im.ref("farmer activity", "activity_id", types.ActivitiesTable, fa.ActivityID); err != nil {
						return err
					}
					fa.ID = 0
					return b.FarmerActivities().Create(fa)
				})
		},
		func() error {
			return importTable(im, types.MembershipsTable, nil,
				func(m *types.Membership) error {
					var err error
					if m.CooperativeID, err = im.ref("membership", "cooperative_id", types.CooperativesTable, m.CooperativeID); err != nil {
						return err
					}
					if m.FarmerID, err = im.ref("membership", "farmer_id", types.FarmersTable, m.FarmerID); err != nil {
						return err
					}
					return b.Memberships().Create(m)
				})
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, fmt.Errorf("importing: %w", err)
		}
	}

	b.log.Info("import complete", zap.String("dir", dir), zap.Any("rows", im.counts))
	return im.counts, nil
}
