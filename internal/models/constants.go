package models

// Necessity levels
const (
	NecessityHigh   Necessity = "high"
	NecessityMedium Necessity = "medium"
	NecessityLow    Necessity = "low"
)

// Categories
const (
	CategoryFood          Category = "food"
	CategoryBills         Category = "bills"
	CategoryHealth        Category = "health"
	CategoryHousing       Category = "housing"
	CategoryEducation     Category = "education"
	CategoryTransport     Category = "transport"
	CategoryClothing      Category = "clothing"
	CategoryInsurance     Category = "insurance"
	CategoryMaintenance   Category = "maintenance"
	CategoryEntertainment Category = "entertainment"
	CategoryHobbies       Category = "hobbies"
	CategoryDining        Category = "dining"
	CategoryShopping      Category = "shopping"
	CategoryTravel        Category = "travel"
	CategorySalary        Category = "salary"
	CategorySavings       Category = "savings"
	CategoryOther         Category = "other"
)

// Trend tiers, best first
const (
	TrendExceptional Trend = "exceptional"
	TrendExcellent   Trend = "excellent"
	TrendImproving   Trend = "improving"
	TrendStable      Trend = "stable"
	TrendModerate    Trend = "moderate"
	TrendConcerning  Trend = "concerning"
	TrendRisky       Trend = "risky"
	TrendCritical    Trend = "critical"
	TrendUnstable    Trend = "unstable"
)

// File permissions
const (
	PermissionDataFile  = 0600
	PermissionDirectory = 0750
	PermissionReport    = 0644
)
