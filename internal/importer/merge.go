package importer

import "fjacquet/finanai/internal/models"

// Merge appends the imported transactions whose ID is not already present,
// keeping existing order first. It returns the merged slice and the number
// of transactions added.
func Merge(existing, imported []models.Transaction) ([]models.Transaction, int) {
	seen := make(map[string]struct{}, len(existing)+len(imported))
	merged := make([]models.Transaction, 0, len(existing)+len(imported))
	for _, t := range existing {
		seen[t.ID] = struct{}{}
		merged = append(merged, t)
	}

	added := 0
	for _, t := range imported {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		seen[t.ID] = struct{}{}
		merged = append(merged, t)
		added++
	}
	return merged, added
}
