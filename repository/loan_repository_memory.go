package repository

import (
	"sync"

	"loan-catalog/domain"
)

// QuoteEntry is one saved loan calculation.
type QuoteEntry struct {
	Input  domain.LoanInput
	Result domain.LoanResult
}

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
type LoanRepositoryMemory struct {
	mu   sync.Mutex
	data []QuoteEntry
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		data: []QuoteEntry{},
	}
}

// Save stores the loan calculation in memory.
func (r *LoanRepositoryMemory) Save(
	input domain.LoanInput,
	result domain.LoanResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, QuoteEntry{Input: input, Result: result})
	return nil
}

// History returns the saved calculations, oldest first.
func (r *LoanRepositoryMemory) History() []QuoteEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]QuoteEntry, len(r.data))
	copy(out, r.data)
	return out
}
