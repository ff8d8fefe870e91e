package sqlite

import (
	"database/sql"
	"fmt"
)

// Schema DDL for all tables. Statements are idempotent so the schema can be
// applied on every Attach.
const (
	createActivities = `CREATE TABLE IF NOT EXISTS activities (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    description TEXT,
    start_date TEXT,
    end_date TEXT
);`

	createFarmers = `CREATE TABLE IF NOT EXISTS farmers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    farm_name TEXT,
    national_id TEXT NOT NULL UNIQUE,
    phone TEXT,
    email TEXT,
    address TEXT,
    activity_id INTEGER,
    registration_date TEXT NOT NULL,
    FOREIGN KEY (activity_id) REFERENCES activities(id)
);`

	createBuyers = `CREATE TABLE IF NOT EXISTS buyers (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    organization TEXT,
    contact_phone TEXT,
    contact_email TEXT,
    address TEXT,
    preferred_payment_method TEXT
);`

	createProductTypes = `CREATE TABLE IF NOT EXISTS product_types (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    category TEXT,
    typical_unit TEXT,
    description TEXT
);`

	createSales = `CREATE TABLE IF NOT EXISTS sales (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    farmer_id INTEGER NOT NULL,
    buyer_id INTEGER NOT NULL,
    product_type_id INTEGER,
    quantity REAL NOT NULL DEFAULT 0,
    price REAL NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    FOREIGN KEY (farmer_id) REFERENCES farmers(id),
    FOREIGN KEY (buyer_id) REFERENCES buyers(id),
    FOREIGN KEY (product_type_id) REFERENCES product_types(id)
);`

	createFarmerActivities = `CREATE TABLE IF NOT EXISTS farmer_activities (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    farmer_id INTEGER NOT NULL,
    activity_id INTEGER NOT NULL,
    joined_on TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'participant',
    progress_percent REAL NOT NULL DEFAULT 0,
    notes TEXT,
    last_updated TEXT NOT NULL,
    FOREIGN KEY (farmer_id) REFERENCES farmers(id),
    FOREIGN KEY (activity_id) REFERENCES activities(id)
);`

	createCooperatives = `CREATE TABLE IF NOT EXISTS cooperatives (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    description TEXT
);`

	createMemberships = `CREATE TABLE IF NOT EXISTS memberships (
    cooperative_id INTEGER NOT NULL,
    farmer_id INTEGER NOT NULL,
    joined_on TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'member',
    approved_by TEXT,
    notes TEXT,
    last_updated TEXT NOT NULL,
    PRIMARY KEY (cooperative_id, farmer_id),
    FOREIGN KEY (cooperative_id) REFERENCES cooperatives(id),
    FOREIGN KEY (farmer_id) REFERENCES farmers(id)
);`
)

// Index DDL for the foreign-key lookups used by cascades and list queries.
const (
	idxFarmersActivity          = `CREATE INDEX IF NOT EXISTS idx_farmers_activity ON farmers(activity_id);`
	idxSalesFarmer              = `CREATE INDEX IF NOT EXISTS idx_sales_farmer ON sales(farmer_id);`
	idxSalesBuyer               = `CREATE INDEX IF NOT EXISTS idx_sales_buyer ON sales(buyer_id);`
	idxSalesProductType         = `CREATE INDEX IF NOT EXISTS idx_sales_product_type ON sales(product_type_id);`
	idxFarmerActivitiesFarmer   = `CREATE INDEX IF NOT EXISTS idx_farmer_activities_farmer ON farmer_activities(farmer_id);`
	idxFarmerActivitiesActivity = `CREATE INDEX IF NOT EXISTS idx_farmer_activities_activity ON farmer_activities(activity_id);`
	idxMembershipsFarmer        = `CREATE INDEX IF NOT EXISTS idx_memberships_farmer ON memberships(farmer_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createActivities,
	createFarmers,
	createBuyers,
	createProductTypes,
	createSales,
	createFarmerActivities,
	createCooperatives,
	createMemberships,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxFarmersActivity,
	idxSalesFarmer,
	idxSalesBuyer,
	idxSalesProductType,
	idxFarmerActivitiesFarmer,
	idxFarmerActivitiesActivity,
	idxMembershipsFarmer,
}

// createSchema applies schemaDDL and indexDDL in one transaction.
func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning schema transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema: %w", err)
	}
	return nil
}
