package domain

// LoanRecord is one entry of the loan catalog.
type LoanRecord struct {
	ID     int    `json:"id" validate:"gt=0"`
	Name   string `json:"name" validate:"required"`
	Amount int64  `json:"amount" validate:"gte=0"`
}

type LoanInput struct {
	Amount       float64 `json:"amount"`
	InterestRate float64 `json:"interest_rate"`
	TermMonths   int     `json:"term_months"`
}

type LoanResult struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
	TotalInterest  float64 `json:"total_interest"`
}

// QuoteRequest asks for a payment plan on a catalog loan.
type QuoteRequest struct {
	LoanID       int     `json:"id"`
	InterestRate float64 `json:"interest_rate"`
	TermMonths   int     `json:"term_months"`
}
