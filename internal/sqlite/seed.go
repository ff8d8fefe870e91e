package sqlite

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/smartfarm/pkg/types"
)

// sampleFarmer describes a farmer to seed and the rows that hang off it.
// Names refer to other sample rows and are resolved to IDs while seeding.
type sampleFarmer struct {
	farmer      types.Farmer
	activity    string // registered activity
	linkedTo    string // extra activity linked through FarmerActivity
	cooperative string
	role        string
	joined      time.Time
	sale        sampleSale
}

// sampleSale describes the farmer's sale to a named buyer.
type sampleSale struct {
	buyer    string
	product  string
	quantity float64
	price    float64
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

var sampleActivities = []types.Activity{
	{Name: "Maize Farming", Description: "Seasonal maize production.",
		StartDate: datePtr(2024, 1, 1), EndDate: datePtr(2024, 6, 30)},
	{Name: "Dairy Production", Description: "Daily milk production.",
		StartDate: datePtr(2024, 1, 1), EndDate: datePtr(2024, 12, 31)},
}

var sampleBuyers = []types.Buyer{
	{Name: "FreshMart", Organization: "FreshMart Ltd", ContactPhone: "0722000000",
		ContactEmail: "buy@freshmart.co.ke", Address: "Nairobi", PreferredPaymentMethod: "M-Pesa"},
	{Name: "AgroBuy", Organization: "AgroBuy Co.", ContactPhone: "0733000000",
		ContactEmail: "orders@agrobuy.com", Address: "Eldoret", PreferredPaymentMethod: "Bank Transfer"},
}

var sampleProductTypes = []types.ProductType{
	{Name: "Maize Grain", Category: "Cereal", TypicalUnit: "KG", Description: "Harvested maize grain"},
	{Name: "Fresh Milk", Category: "Dairy", TypicalUnit: "Litre", Description: "Raw fresh milk"},
}

var sampleCooperatives = []types.Cooperative{
	{Name: "Sunrise Farmers Coop"},
	{Name: "Green Valley Cooperative"},
}

var sampleFarmers = []sampleFarmer{
	{
		farmer: types.Farmer{Name: "John Doe", FarmName: "Green Valley Farm", NationalID: "12345678",
			Phone: "0712345678", Email: "john@example.com", Address: "Nakuru",
			RegistrationDate: date(2024, 2, 1)},
		activity:    "Maize Farming",
		linkedTo:    "Dairy Production",
		cooperative: "Sunrise Farmers Coop",
		role:        "Member",
		joined:      date(2024, 2, 15),
		sale:        sampleSale{buyer: "FreshMart", product: "Maize Grain", quantity: 200, price: 45000},
	},
	{
		farmer: types.Farmer{Name: "Mary Wanjiku", FarmName: "Sunrise Farm", NationalID: "87654321",
			Phone: "0798765432", Email: "mary@example.com", Address: "Nyeri",
			RegistrationDate: date(2024, 3, 1)},
		activity:    "Dairy Production",
		linkedTo:    "Maize Farming",
		cooperative: "Green Valley Cooperative",
		role:        "Chairperson",
		joined:      date(2024, 3, 20),
		sale:        sampleSale{buyer: "AgroBuy", product: "Fresh Milk", quantity: 500, price: 30000},
	},
}

// SeedSampleData loads the sample dataset through the regular create
// operations, referenced rows first. It does nothing and returns false when
// the store already holds activities.
func (b *Backend) SeedSampleData() (bool, error) {
	existing, err := b.Activities().GetAll()
	if err != nil {
		return false, fmt.Errorf("counting activities: %w", err)
	}
	if len(existing) > 0 {
		b.log.Debug("seed skipped; store is not empty", zap.Int("activities", len(existing)))
		return false, nil
	}

	activities := map[string]int64{}
	for _, a := range sampleActivities {
		a := a
		if err := b.Activities().Create(&a); err != nil {
			return false, fmt.Errorf("seeding activity %s: %w", a.Name, err)
		}
		activities[a.Name] = a.ID
	}

	buyers := map[string]int64{}
	for _, by := range sampleBuyers {
		by := by
		if err := b.Buyers().Create(&by); err != nil {
			return false, fmt.Errorf("seeding buyer %s: %w", by.Name, err)
		}
		buyers[by.Name] = by.ID
	}

	products := map[string]int64{}
	for _, p := range sampleProductTypes {
		p := p
		if err := b.ProductTypes().Create(&p); err != nil {
			return false, fmt.Errorf("seeding product type %s: %w", p.Name, err)
		}
		products[p.Name] = p.ID
	}

	coops := map[string]int64{}
	for _, c := range sampleCooperatives {
		c := c
		if err := b.Cooperatives().Create(&c); err != nil {
			return false, fmt.Errorf("seeding cooperative %s: %w", c.Name, err)
		}
		coops[c.Name] = c.ID
	}

	for _, sf := range sampleFarmers {
		f := sf.farmer
		activityID := activities[sf.activity]
		f.ActivityID = &activityID
		if err := b.Farmers().Create(&f); err != nil {
			return false, fmt.Errorf("seeding farmer %s: %w", f.Name, err)
		}

		productID := products[sf.sale.product]
		sale := types.Sale{
			FarmerID:      f.ID,
			BuyerID:       buyers[sf.sale.buyer],
			ProductTypeID: &productID,
			Quantity:      sf.sale.quantity,
			Price:         sf.sale.price,
		}
		if err := b.Sales().Create(&sale); err != nil {
			return false, fmt.Errorf("seeding sale for %s: %w", f.Name, err)
		}

		link := types.FarmerActivity{FarmerID: f.ID, ActivityID: activities[sf.linkedTo]}
		if err := b.FarmerActivities().Create(&link); err != nil {
			return false, fmt.Errorf("seeding activity link for %s: %w", f.Name, err)
		}

		m := types.Membership{
			CooperativeID: coops[sf.cooperative],
			FarmerID:      f.ID,
			Role:          sf.role,
			JoinedOn:      sf.joined,
		}
		if err := b.Memberships().Create(&m); err != nil {
			return false, fmt.Errorf("seeding membership for %s: %w", f.Name, err)
		}
	}

	b.log.Info("sample data seeded",
		zap.Int("activities", len(sampleActivities)),
		zap.Int("farmers", len(sampleFarmers)),
		zap.Int("buyers", len(sampleBuyers)),
		zap.Int("product_types", len(sampleProductTypes)),
		zap.Int("cooperatives", len(sampleCooperatives)))
	return true, nil
}
