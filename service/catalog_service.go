package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"loan-catalog/deferred"
	"loan-catalog/domain"
	"loan-catalog/logger"
	"loan-catalog/metrics"
	"loan-catalog/repository"
)

type CatalogService struct {
	catalog  repository.LoanCatalog
	cache    repository.CacheRepository
	validate *validator.Validate
	log      logger.Logger
}

// NewCatalogService creates a CatalogService. cache may be nil.
func NewCatalogService(
	catalog repository.LoanCatalog,
	cache repository.CacheRepository,
	log logger.Logger,
) *CatalogService {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &CatalogService{
		catalog:  catalog,
		cache:    cache,
		validate: validator.New(),
		log:      log,
	}
}

// GetCatalog returns the loan records in catalog order.
func (s *CatalogService) GetCatalog() []domain.LoanRecord {
	return s.catalog.All()
}

// GetCatalogAsync delivers the catalog as a deferred value. It rejects with
// ctx.Err() when ctx is already done.
func (s *CatalogService) GetCatalogAsync(ctx context.Context) *deferred.Value[[]domain.LoanRecord] {
	return deferred.Go(func() ([]domain.LoanRecord, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return s.catalog.All(), nil
	})
}

func (s *CatalogService) Names() []string {
	all := s.catalog.All()
	names := make([]string, 0, len(all))
	for _, l := range all {
		names = append(names, l.Name)
	}
	return names
}

func (s *CatalogService) FindByID(id int) (domain.LoanRecord, error) {
	loan, ok := s.catalog.ByID(id)
	if !ok {
		return domain.LoanRecord{}, errors.Wrapf(domain.ErrLoanNotFound, "id %d", id)
	}
	return loan, nil
}

// Validate checks the catalog against its invariants: size, per-record
// fields, unique ids and names, and name order.
func (s *CatalogService) Validate() error {
	all := s.catalog.All()
	if len(all) != CatalogSize {
		return errors.Wrapf(domain.ErrInvalidCatalog, "expected %d loans, got %d", CatalogSize, len(all))
	}

	ids := make(map[int]bool, len(all))
	names := make(map[string]bool, len(all))
	for i, l := range all {
		if err := s.validate.Struct(l); err != nil {
			return errors.Wrapf(domain.ErrInvalidCatalog, "loan[%d]: %v", i, err)
		}
		if ids[l.ID] {
			return errors.Wrapf(domain.ErrInvalidCatalog, "duplicate id %d", l.ID)
		}
		if names[l.Name] {
			return errors.Wrapf(domain.ErrInvalidCatalog, "duplicate name %q", l.Name)
		}
		ids[l.ID] = true
		names[l.Name] = true

		if l.Name != catalogNames[i] {
			return errors.Wrapf(domain.ErrInvalidCatalog, "loan[%d]: expected %q, got %q", i, catalogNames[i], l.Name)
		}
	}
	return nil
}

// Snapshot returns the catalog as indented JSON. The encoded form is cached;
// cache failures are logged and do not fail the call.
func (s *CatalogService) Snapshot() ([]byte, error) {
	if s.cache != nil {
		if val, ok := s.cache.Get(snapshotCacheKey); ok {
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			return []byte(val), nil
		}
		metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	data, err := json.MarshalIndent(s.catalog.All(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode catalog snapshot")
	}

	if s.cache != nil {
		if err := s.cache.Set(snapshotCacheKey, string(data)); err != nil {
			s.log.WithError(err).Warn("failed to cache catalog snapshot", map[string]interface{}{
				"key": snapshotCacheKey,
			})
		}
	}
	return data, nil
}
