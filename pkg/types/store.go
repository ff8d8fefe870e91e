package types

// Store is the storage handle. Callers attach it to a backend, use the table
// accessors, and detach when done. Table operations on a detached store
// return ErrStoreDetached.
type Store interface {
	// Attach opens the backend described by config and creates the schema
	// if it is absent. Returns ErrAlreadyAttached if already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	Activities() ActivityTable
	Farmers() FarmerTable
	Buyers() BuyerTable
	ProductTypes() ProductTypeTable
	Sales() SaleTable
	FarmerActivities() FarmerActivityTable
	Cooperatives() CooperativeTable
	Memberships() MembershipTable
}

// Lookup conventions shared by all tables:
//   - FindByID returns nil and no error when no row matches.
//   - GetAll and the List methods return rows in ascending ID order and an
//     empty slice when nothing matches.
//   - Create populates the ID and defaulted fields of the value passed in.
//   - Delete returns ErrNotFound when the row does not exist and removes
//     owned rows in the same unit of work.

// ActivityTable manages activities. Deleting an activity deletes the farmers
// registered under it (with their sales, links and memberships) and its
// farmer-activity links.
type ActivityTable interface {
	Create(a *Activity) error
	Update(a *Activity) error
	GetAll() ([]*Activity, error)
	FindByID(id int64) (*Activity, error)
	Delete(id int64) error
}

// FarmerTable manages farmers. Deleting a farmer deletes its sales,
// farmer-activity links and memberships.
type FarmerTable interface {
	Create(f *Farmer) error
	Update(f *Farmer) error
	GetAll() ([]*Farmer, error)
	FindByID(id int64) (*Farmer, error)
	// FindByName matches query as a case-insensitive substring of the name.
	FindByName(query string) ([]*Farmer, error)
	ListForActivity(activityID int64) ([]*Farmer, error)
	Delete(id int64) error
}

// BuyerTable manages buyers. Deleting a buyer deletes its sales.
type BuyerTable interface {
	Create(b *Buyer) error
	Update(b *Buyer) error
	GetAll() ([]*Buyer, error)
	FindByID(id int64) (*Buyer, error)
	Delete(id int64) error
}

// ProductTypeTable manages product types. Deleting a product type keeps its
// sales and clears their product reference.
type ProductTypeTable interface {
	Create(p *ProductType) error
	Update(p *ProductType) error
	GetAll() ([]*ProductType, error)
	FindByID(id int64) (*ProductType, error)
	Delete(id int64) error
}

// SaleTable manages sales. Create fails with a ReferenceError when the
// farmer, buyer or (if set) product type does not exist.
type SaleTable interface {
	Create(s *Sale) error
	GetAll() ([]*Sale, error)
	FindByID(id int64) (*Sale, error)
	ListForFarmer(farmerID int64) ([]*Sale, error)
	ListForBuyer(buyerID int64) ([]*Sale, error)
	ListForProductType(productTypeID int64) ([]*Sale, error)
	Delete(id int64) error
}

// FarmerActivityTable manages farmer-activity links.
type FarmerActivityTable interface {
	Create(fa *FarmerActivity) error
	GetAll() ([]*FarmerActivity, error)
	FindByID(id int64) (*FarmerActivity, error)
	ListForFarmer(farmerID int64) ([]*FarmerActivity, error)
	ListForActivity(activityID int64) ([]*FarmerActivity, error)
	// UpdateProgress sets the progress and, when notes is non-nil, the notes,
	// refreshing LastUpdated. Returns ErrNotFound for an unknown link.
	UpdateProgress(id int64, percent float64, notes *string) (*FarmerActivity, error)
	Delete(id int64) error
}

// CooperativeTable manages cooperatives. Deleting a cooperative deletes its
// memberships.
type CooperativeTable interface {
	Create(c *Cooperative) error
	Update(c *Cooperative) error
	GetAll() ([]*Cooperative, error)
	FindByID(id int64) (*Cooperative, error)
	Delete(id int64) error
}

// MembershipTable manages memberships keyed by (cooperativeID, farmerID).
// GetAll and the List methods order by cooperative ID, then farmer ID.
type MembershipTable interface {
	// Create fails with a UniquenessError when the pair already exists.
	Create(m *Membership) error

	// Ensure returns the membership for the pair, creating it with the given
	// role when absent. created is false when the membership already existed,
	// in which case it is returned unchanged. A uniqueness violation during
	// the insert is resolved by returning the row that won.
	Ensure(farmerID, cooperativeID int64, role string) (m *Membership, created bool, err error)

	Find(cooperativeID, farmerID int64) (*Membership, error)
	GetAll() ([]*Membership, error)
	ListForCooperative(cooperativeID int64) ([]*Membership, error)
	ListForFarmer(farmerID int64) ([]*Membership, error)
	Delete(cooperativeID, farmerID int64) error
}
