package repository

import "loan-catalog/domain"

type LoanRepository interface {
	Save(input domain.LoanInput, result domain.LoanResult) error
}
