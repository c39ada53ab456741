package finance

import "slices"

// Role is the driver's employment context. It decides which categories and
// pay types are offered, never what may be stored.
type Role string

const (
	RoleCompany Role = "company"
	RoleOwner   Role = "owner"
)

func (r Role) Valid() bool {
	return r == RoleCompany || r == RoleOwner
}

type ExpenseCategory string

type PayType string

// CatalogEntry is one member of a closed enum together with the roles it is
// relevant to.
type CatalogEntry[T ~string] struct {
	Value T      `json:"value"`
	Label string `json:"label"`
	Roles []Role `json:"roles"`
}

func (e CatalogEntry[T]) AppliesTo(role Role) bool {
	return slices.Contains(e.Roles, role)
}

var (
	bothRoles   = []Role{RoleCompany, RoleOwner}
	ownerOnly   = []Role{RoleOwner}
	companyOnly = []Role{RoleCompany}
)

var expenseCategories = []CatalogEntry[ExpenseCategory]{
	{"housing", "Housing", bothRoles},
	{"food", "Food", bothRoles},
	{"transportation", "Transportation", bothRoles},
	{"utilities", "Utilities", bothRoles},
	{"healthcare", "Healthcare", bothRoles},
	{"personal", "Personal", bothRoles},
	{"other", "Other", bothRoles},

	{"fuel", "Fuel", ownerOnly},
	{"maintenance", "Maintenance", ownerOnly},
	{"insurance", "Insurance", ownerOnly},
	{"tolls", "Tolls", ownerOnly},
	{"permits", "Permits", ownerOnly},
	{"truck_payment", "Truck Payment", ownerOnly},
	{"license_fees", "License Fees", ownerOnly},
	{"broker_fees", "Broker Fees", ownerOnly},
	{"parking_fees", "Parking Fees", ownerOnly},
	{"equipment", "Equipment", ownerOnly},
	{"eld_subscription", "ELD Subscription", ownerOnly},
	{"hazmat", "Hazmat", ownerOnly},
	{"business_services", "Business Services", ownerOnly},

	{"on_road_meals", "On-Road Meals", companyOnly},
	{"uniform", "Uniform", companyOnly},
	{"communication", "Communication", companyOnly},
	{"tools_equipment", "Tools & Equipment", companyOnly},
	{"education_training", "Education & Training", companyOnly},
	{"association_dues", "Association Dues", companyOnly},
	{"travel_to_terminal", "Travel to Terminal", companyOnly},
}

var payTypes = []CatalogEntry[PayType]{
	{"hourly", "Hourly Pay", bothRoles},
	{"per_mile", "Per Mile Pay", bothRoles},
	{"per_load", "Per Load Pay", bothRoles},
	{"percentage", "Percentage of Load", bothRoles},
	{"daily_rate", "Daily Rate", companyOnly},
	{"salary", "Salary", companyOnly},
	{"hazmat", "Hazmat Bonus", bothRoles},
	{"detention", "Detention Pay", bothRoles},
	{"layover", "Layover Pay", bothRoles},
	{"stop_pay", "Stop Pay", bothRoles},
	{"accessorial", "Accessorial Pay", ownerOnly},
	{"performance", "Performance Bonus", companyOnly},
	{"safety", "Safety Bonus", companyOnly},
	{"fuel_bonus", "Fuel Bonus", bothRoles},
	{"referral", "Referral Bonus", companyOnly},
	{"other", "Other", bothRoles},
}

// ExpenseCategories returns every known category.
func ExpenseCategories() []CatalogEntry[ExpenseCategory] {
	return slices.Clone(expenseCategories)
}

// PayTypes returns every known pay type.
func PayTypes() []CatalogEntry[PayType] {
	return slices.Clone(payTypes)
}

// CategoriesFor filters the category catalog by role. An empty role returns
// the full catalog.
func CategoriesFor(role Role) []CatalogEntry[ExpenseCategory] {
	return filterByRole(expenseCategories, role)
}

// PayTypesFor filters the pay type catalog by role. An empty role returns
// the full catalog.
func PayTypesFor(role Role) []CatalogEntry[PayType] {
	return filterByRole(payTypes, role)
}

func (c ExpenseCategory) Valid() bool {
	return slices.ContainsFunc(expenseCategories, func(e CatalogEntry[ExpenseCategory]) bool { return e.Value == c })
}

func (p PayType) Valid() bool {
	return slices.ContainsFunc(payTypes, func(e CatalogEntry[PayType]) bool { return e.Value == p })
}

func filterByRole[T ~string](entries []CatalogEntry[T], role Role) []CatalogEntry[T] {
	if role == "" {
		return slices.Clone(entries)
	}
	out := make([]CatalogEntry[T], 0, len(entries))
	for _, e := range entries {
		if e.AppliesTo(role) {
			out = append(out, e)
		}
	}
	return out
}
