package service

import (
	"math"

	"github.com/pkg/errors"

	"loan-catalog/domain"
	"loan-catalog/logger"
	"loan-catalog/repository"
)

// roundTo2Decimals redondea un float64 a 2 decimales
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

type LoanService struct {
	repo    repository.LoanRepository
	catalog *CatalogService
	log     logger.Logger
}

// NewLoanService creates a LoanService that prices loans from catalog and
// records each calculation in repo.
func NewLoanService(
	repo repository.LoanRepository,
	catalog *CatalogService,
	log logger.Logger,
) *LoanService {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &LoanService{repo: repo, catalog: catalog, log: log}
}

// QuoteLoan prices the catalog loan with the given id at the given annual
// rate and term.
func (s *LoanService) QuoteLoan(req domain.QuoteRequest) (domain.LoanResult, error) {
	loan, err := s.catalog.FindByID(req.LoanID)
	if err != nil {
		return domain.LoanResult{}, err
	}

	return s.CalculateLoan(domain.LoanInput{
		Amount:       float64(loan.Amount),
		InterestRate: req.InterestRate,
		TermMonths:   req.TermMonths,
	})
}

// CalculateLoan calculates the amortized payment plan for input.
func (s *LoanService) CalculateLoan(
	input domain.LoanInput,
) (domain.LoanResult, error) {

	if input.Amount <= 0 {
		return domain.LoanResult{}, errors.Wrap(domain.ErrInvalidQuote, "amount must be positive")
	}
	if input.Amount > MaxLoanAmount {
		return domain.LoanResult{}, errors.Wrapf(domain.ErrInvalidQuote, "amount exceeds maximum of %.2f", MaxLoanAmount)
	}
	if input.InterestRate < 0 {
		return domain.LoanResult{}, errors.Wrap(domain.ErrInvalidQuote, "interest rate must not be negative")
	}
	if input.InterestRate > MaxInterestRate {
		return domain.LoanResult{}, errors.Wrapf(domain.ErrInvalidQuote, "interest rate exceeds maximum of %.2f%%", MaxInterestRate)
	}
	if input.TermMonths < MinTermMonths {
		return domain.LoanResult{}, errors.Wrap(domain.ErrInvalidQuote, "term must be at least one month")
	}
	if input.TermMonths > MaxTermMonths {
		return domain.LoanResult{}, errors.Wrapf(domain.ErrInvalidQuote, "term exceeds maximum of %d months", MaxTermMonths)
	}

	var cuota float64

	if input.InterestRate == 0 {
		cuota = input.Amount / float64(input.TermMonths)
	} else {
		tasaMensual := (input.InterestRate / 100) / 12
		n := float64(input.TermMonths)

		cuota = input.Amount * (tasaMensual /
			(1 - math.Pow(1+tasaMensual, -n)))
	}

	total := cuota * float64(input.TermMonths)
	intereses := total - input.Amount

	result := domain.LoanResult{
		MonthlyPayment: roundTo2Decimals(cuota),
		TotalPayment:   roundTo2Decimals(total),
		TotalInterest:  roundTo2Decimals(intereses),
	}

	// Guardar el resultado (no crítico si falla)
	if err := s.repo.Save(input, result); err != nil {
		s.log.WithError(err).Warn("failed to save loan calculation", nil)
	}

	return result, nil
}
