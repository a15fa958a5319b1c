package app

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"travel_assistant/internal/catalog"
	"travel_assistant/internal/domain"
)

const snapshotKey = "catalog:snapshot"

type CatalogService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{repo: r, cache: c, cacheTTL: ttl}
}

// Snapshot returns the full catalog (plans, FAQs, contact), served from cache when possible.
func (s *CatalogService) Snapshot(ctx context.Context) (domain.Catalog, error) {
	var out domain.Catalog
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, snapshotKey, &out); ok {
			return out, nil
		}
	}

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	faqs, err := s.repo.ListFAQs(ctx)
	if err != nil {
		return domain.Catalog{}, err
	}
	contact, err := s.repo.GetContact(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return domain.Catalog{}, err
	}

	// copy slices so callers can't mutate what we hand to the cache
	out = deepCopyCatalog(domain.Catalog{Plans: plans, FAQs: faqs, Contact: contact})

	if s.cache != nil {
		// optional size guard
		if b, _ := json.Marshal(out); len(b) < 1_000_000 {
			_ = s.cache.Set(ctx, snapshotKey, out, int(s.cacheTTL.Seconds()))
		}
	}
	return out, nil
}

// Invalidate drops the cached snapshot so the next read hits the repository.
func (s *CatalogService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, snapshotKey)
}

// SearchPlans filters visible plans by free text and/or city. With neither, all visible plans.
func (s *CatalogService) SearchPlans(ctx context.Context, q, city string) ([]domain.Plan, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	plans := catalog.VisiblePlans(snap.Plans)
	if city != "" {
		plans = catalog.PlansByCity(city, plans)
	}
	if q != "" {
		plans = catalog.FindPlansByFreeText(q, plans)
	}
	return plans, nil
}

func (s *CatalogService) Cities(ctx context.Context) ([]string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.UniqueCities(catalog.VisiblePlans(snap.Plans)), nil
}

// FAQs returns every FAQ, or only one category's when category is set.
func (s *CatalogService) FAQs(ctx context.Context, category string) ([]domain.FAQItem, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" {
		return snap.FAQs, nil
	}
	return catalog.FAQsByCategory(category, snap.FAQs), nil
}

func deepCopyCatalog(in domain.Catalog) domain.Catalog {
	out := domain.Catalog{Contact: in.Contact}
	if n := len(in.Plans); n > 0 {
		out.Plans = make([]domain.Plan, n)
		copy(out.Plans, in.Plans)
	}
	if n := len(in.FAQs); n > 0 {
		out.FAQs = make([]domain.FAQItem, n)
		copy(out.FAQs, in.FAQs)
	}
	return out
}
