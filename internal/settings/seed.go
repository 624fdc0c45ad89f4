package settings

import "time"

func SeedBusinesses(now time.Time) []Business {
	return []Business{
		{ID: 1, Name: "Main Shop", Description: "Downtown branch", IsActive: true, CreatedOn: now},
		{ID: 2, Name: "Kampala Outlet", Description: "Retail outlet", IsActive: true, CreatedOn: now},
		{ID: 3, Name: "Warehouse", Description: "Storage & dispatch", IsActive: false, CreatedOn: now},
	}
}

func SeedCategories() []ExpenditureCategory {
	return []ExpenditureCategory{
		{ID: 1, Name: "Rent", Description: "Monthly shop rent", IsActive: true},
		{ID: 2, Name: "Utilities", Description: "Electricity, water, internet", IsActive: true},
		{ID: 3, Name: "Transport", Description: "Delivery and supply transport", IsActive: true},
		{ID: 4, Name: "Miscellaneous", Description: "Other expenses", IsActive: false},
	}
}

func Users() []User {
	return []User{
		{ID: 1, Username: "admin", Email: "admin@anacreon.app", Role: "Admin", IsActive: true},
		{ID: 2, Username: "clerk", Email: "clerk@anacreon.app", Role: "Clerk", IsActive: true},
		{ID: 3, Username: "auditor", Email: "auditor@anacreon.app", Role: "Auditor", IsActive: false},
	}
}

func Integrations() []Integration {
	return []Integration{
		{ID: "webhooks", Name: "Webhooks", Status: "Connected"},
		{ID: "payments", Name: "Payments", Status: "Not configured"},
		{ID: "storage", Name: "Cloud Storage", Status: "Connected"},
	}
}

// Stores bundles the two mutable collections the UI and the HTTP service share.
type Stores struct {
	Businesses Store[Business]
	Categories Store[ExpenditureCategory]
}

func NewSeededStores() Stores {
	return Stores{
		Businesses: NewMemoryStore(SeedBusinesses(time.Now())),
		Categories: NewMemoryStore(SeedCategories()),
	}
}
