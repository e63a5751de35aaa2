// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
)

// Category is the spending or income bucket a transaction belongs to.
type Category string

// categoryOrder is the fixed enumeration order. Breakdowns and reports
// iterate categories in this order.
var categoryOrder = []Category{
	CategoryFood,
	CategoryBills,
	CategoryHealth,
	CategoryHousing,
	CategoryEducation,
	CategoryTransport,
	CategoryClothing,
	CategoryInsurance,
	CategoryMaintenance,
	CategoryEntertainment,
	CategoryHobbies,
	CategoryDining,
	CategoryShopping,
	CategoryTravel,
	CategorySalary,
	CategorySavings,
	CategoryOther,
}

// Categories returns every known category in enumeration order.
// The returned slice is a copy and may be modified by the caller.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// IsValid reports whether c belongs to the category enumeration.
func (c Category) IsValid() bool {
	for _, known := range categoryOrder {
		if c == known {
			return true
		}
	}
	return false
}

// Index returns the position of c in the enumeration, or -1 if unknown.
func (c Category) Index() int {
	for i, known := range categoryOrder {
		if c == known {
			return i
		}
	}
	return -1
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory normalizes s and returns the matching category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return CategoryOther, fmt.Errorf("unknown category '%s'", s)
	}
	return c, nil
}
