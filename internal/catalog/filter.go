package catalog

import (
	"strings"

	"github.com/gatherhub/event-catalog-service/internal/domain"
)

// Filter computes the visible subset of a snapshot under the given criteria.
// It is pure: inputs are not mutated and identical inputs produce identical
// results.
//
// Category matches exactly after lowercasing both sides. The query is
// trimmed, lowercased, and matched as a substring of title, category,
// location or description. Both conditions must hold when both are active.
// With no active criteria the snapshot is returned unchanged.
func Filter(snapshot []domain.EventRecord, criteria domain.FilterCriteria) []domain.EventRecord {
	query := strings.ToLower(strings.TrimSpace(criteria.Query))

	var category string
	if criteria.Category != nil {
		category = strings.ToLower(*criteria.Category)
	}

	if query == "" && criteria.Category == nil {
		return snapshot
	}

	out := make([]domain.EventRecord, 0, len(snapshot))
	for _, record := range snapshot {
		if criteria.Category != nil && strings.ToLower(record.Category) != category {
			continue
		}
		if query != "" && !matchesQuery(record, query) {
			continue
		}
		out = append(out, record)
	}
	return out
}

func matchesQuery(record domain.EventRecord, query string) bool {
	return strings.Contains(strings.ToLower(record.Title), query) ||
		strings.Contains(strings.ToLower(record.Category), query) ||
		strings.Contains(strings.ToLower(record.Location), query) ||
		strings.Contains(strings.ToLower(record.Description), query)
}
