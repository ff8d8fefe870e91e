package types

// Standard table names, in dependency order (referenced tables first).
const (
	ActivitiesTable       = "activities"
	FarmersTable          = "farmers"
	BuyersTable           = "buyers"
	ProductTypesTable     = "product_types"
	SalesTable            = "sales"
	FarmerActivitiesTable = "farmer_activities"
	CooperativesTable     = "cooperatives"
	MembershipsTable      = "memberships"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	ActivitiesTable,
	FarmersTable,
	BuyersTable,
	ProductTypesTable,
	SalesTable,
	FarmerActivitiesTable,
	CooperativesTable,
	MembershipsTable,
}
