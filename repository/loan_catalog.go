package repository

import "loan-catalog/domain"

// LoanCatalog exposes the fixed, ordered set of loan records.
type LoanCatalog interface {
	All() []domain.LoanRecord
	ByID(id int) (domain.LoanRecord, bool)
	Len() int
}
