package models

import (
	"fmt"
	"strings"
)

// Necessity classifies how essential an expense is.
type Necessity string

// IsValid reports whether n is one of high, medium or low.
func (n Necessity) IsValid() bool {
	switch n {
	case NecessityHigh, NecessityMedium, NecessityLow:
		return true
	default:
		return false
	}
}

// IsNecessary is true for high and medium necessity expenses.
func (n Necessity) IsNecessary() bool {
	return n == NecessityHigh || n == NecessityMedium
}

func (n Necessity) String() string {
	return string(n)
}

// ParseNecessity accepts high, medium, low or an empty string.
func ParseNecessity(s string) (Necessity, error) {
	n := Necessity(strings.ToLower(strings.TrimSpace(s)))
	if n == "" || n.IsValid() {
		return n, nil
	}
	return "", fmt.Errorf("unknown necessity '%s'", s)
}
