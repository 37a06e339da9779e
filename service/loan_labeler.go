package service

import "fmt"

// LoanLabeler formats display labels for loans. Name is a field so callers
// can swap it out.
type LoanLabeler struct {
	Name func(n string) string
}

func NewLoanLabeler() *LoanLabeler {
	return &LoanLabeler{
		Name: func(n string) string { return fmt.Sprintf("Loan name: %s", n) },
	}
}
