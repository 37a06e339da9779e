package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loan-catalog/logger"
)

// NewRouter wires the catalog and quote endpoints. Everything except
// /metrics goes through the rate limiter.
func NewRouter(
	catalog *CatalogHandler,
	loans *LoanHandler,
	limiter *RateLimiter,
	log logger.Logger,
) http.Handler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	mux := http.NewServeMux()

	route := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, InstrumentMiddleware(pattern, log, RateLimitMiddleware(limiter, h)))
	}

	route("/loans", catalog.ListLoans)
	route("/loans/snapshot", catalog.Snapshot)
	route("/loans/{id}", catalog.GetLoan)
	route("/loan/quote", loans.QuoteLoan)

	mux.Handle("/metrics", promhttp.Handler())

	return RequestIDMiddleware(mux)
}
