package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"travel_assistant/internal/domain"
)

// SyncService copies the hosted content backend into the catalog repository.
type SyncService struct {
	content   domain.ContentClient
	repo      domain.CatalogRepository
	cache     domain.Cache
	extractor domain.PlanExtractor
}

// NewSyncService wires the sync pipeline. cache and extractor may be nil.
func NewSyncService(c domain.ContentClient, r domain.CatalogRepository, cache domain.Cache, x domain.PlanExtractor) *SyncService {
	return &SyncService{content: c, repo: r, cache: cache, extractor: x}
}

func (s *SyncService) PlanIDs(ctx context.Context) ([]int64, error) {
	return s.content.ListPlanIDs(ctx)
}

func (s *SyncService) SyncPlan(ctx context.Context, id int64) error {
	raw, err := s.content.GetPlan(ctx, id)
	if err != nil {
		if status, reason, ok := classifyMiss(err); ok {
			_ = s.repo.LogMiss(ctx, fmt.Sprintf("plan:%d", id), status, reason)
			s.invalidate(ctx)
			return nil
		}
		return err
	}

	pl := mapPlan(raw)
	if pl.ID == 0 {
		pl.ID = id
	}

	// Free-form offers pasted by admins: best-effort extraction, never fatal.
	if text, ok := planNeedsExtraction(pl, raw); ok && s.extractor != nil {
		draft, xerr := s.extractor.ExtractPlan(ctx, text)
		if xerr != nil {
			log.Warn().Int64("id", id).Err(xerr).Msg("plan extraction failed; keeping mapped fields")
		} else {
			pl = mergeDraft(pl, draft)
		}
	}

	if err := s.repo.UpsertPlan(ctx, pl); err != nil {
		return fmt.Errorf("upsert plan %d: %w", id, err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *SyncService) SyncFAQs(ctx context.Context) error {
	items, err := s.content.GetFAQs(ctx)
	if err != nil {
		if status, reason, ok := classifyMiss(err); ok {
			_ = s.repo.LogMiss(ctx, "faqs", status, reason)
			return nil
		}
		return err
	}
	for _, it := range items {
		f := mapFAQ(it)
		if f.Question == "" || f.Answer == "" {
			log.Warn().Int64("id", f.ID).Msg("skipping faq without question or answer")
			continue
		}
		if err := s.repo.UpsertFAQ(ctx, f); err != nil {
			return fmt.Errorf("upsert faq %d: %w", f.ID, err)
		}
	}
	s.invalidate(ctx)
	return nil
}

func (s *SyncService) SyncContact(ctx context.Context) error {
	raw, err := s.content.GetContact(ctx)
	if err != nil {
		if status, reason, ok := classifyMiss(err); ok {
			_ = s.repo.LogMiss(ctx, "contact", status, reason)
			return nil
		}
		return err
	}
	if err := s.repo.UpsertContact(ctx, mapContact(raw)); err != nil {
		return fmt.Errorf("upsert contact: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// classifyMiss maps 404/401/403 style errors onto a logged miss.
// Anything else is unexpected (network/5xx/JSON) and should bubble up.
func classifyMiss(err error) (int, string, bool) {
	low := strings.ToLower(err.Error())
	switch {
	case errors.Is(err, domain.ErrNotFound) || strings.Contains(low, "not found"):
		return 404, "not found", true
	case errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrUnauthorized) ||
		strings.Contains(low, "403") || strings.Contains(low, "forbidden") ||
		strings.Contains(low, "401") || strings.Contains(low, "unauthorized"):
		return 403, "inactive", true
	}
	return 0, "", false
}

// the snapshot is rebuilt from the repository on the next read
func (s *SyncService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, snapshotKey)
}
