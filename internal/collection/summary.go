package collection

import (
	"github.com/gphunter1004/automation/internal/models"
	"github.com/gphunter1004/automation/internal/textutils"

	"github.com/shopspring/decimal"
)

// Summary counts the records of a collection by category.
type Summary struct {
	Total      int
	ByCategory map[models.CategoryCode]int
}

// ResultSummary counts result records by category and totals their amounts.
type ResultSummary struct {
	Summary
	Amount decimal.Decimal
}

// Summary returns category counts for a pending collection.
func (m *Manager) Summary(p Partition) Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Summary{ByCategory: make(map[models.CategoryCode]int)}
	for _, rec := range m.store.records(p) {
		s.Total++
		s.ByCategory[rec.Category]++
	}
	return s
}

// ResultSummary returns category counts and the amount total of the results.
func (m *Manager) ResultSummary() ResultSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := ResultSummary{
		Summary: Summary{ByCategory: make(map[models.CategoryCode]int)},
		Amount:  decimal.Zero,
	}
	for _, r := range m.store.results {
		s.Total++
		s.ByCategory[r.Category]++
		s.Amount = s.Amount.Add(textutils.ParseAmount(textutils.ResolveAmount(r.Amount, r.SupplyAmount, r.VATAmount)))
	}
	return s
}
