package repository

import "loan-catalog/domain"

var loans = [...]domain.LoanRecord{
	{ID: 1, Name: "HVAC loan", Amount: 10000},
	{ID: 2, Name: "Solar loan", Amount: 25000},
	{ID: 3, Name: "Battery loan", Amount: 15000},
	{ID: 4, Name: "Roofing loan", Amount: 20000},
}

// LoanCatalogMemory serves the catalog from the package-level literal.
// The literal is never written after init.
type LoanCatalogMemory struct{}

// NewLoanCatalogMemory creates the in-memory loan catalog.
func NewLoanCatalogMemory() *LoanCatalogMemory {
	return &LoanCatalogMemory{}
}

// All returns the records in catalog order. Each call gets its own copy.
func (c *LoanCatalogMemory) All() []domain.LoanRecord {
	out := make([]domain.LoanRecord, len(loans))
	copy(out, loans[:])
	return out
}

// ByID looks a record up by its id.
func (c *LoanCatalogMemory) ByID(id int) (domain.LoanRecord, bool) {
	for _, l := range loans {
		if l.ID == id {
			return l, true
		}
	}
	return domain.LoanRecord{}, false
}

func (c *LoanCatalogMemory) Len() int {
	return len(loans)
}
