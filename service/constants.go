package service

const (
	MaxLoanAmount   = 1_000_000_000.0
	MaxInterestRate = 1000.0 // % anual
	MaxTermMonths   = 600    // 50 años
	MinTermMonths   = 1

	// CatalogSize is the number of loans the catalog always holds.
	CatalogSize = 4

	snapshotCacheKey = "loan-catalog:snapshot"
)

var catalogNames = [CatalogSize]string{"HVAC loan", "Solar loan", "Battery loan", "Roofing loan"}

// CatalogNames returns the loan name sequence, in catalog order.
func CatalogNames() []string {
	out := make([]string, CatalogSize)
	copy(out, catalogNames[:])
	return out
}
