package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

type CatalogRepository interface {
	// Write paths
	UpsertPlan(ctx context.Context, p Plan) error
	UpsertFAQ(ctx context.Context, f FAQItem) error
	UpsertContact(ctx context.Context, c ContactInfo) error
	LogMiss(ctx context.Context, resource string, status int, reason string) error

	// Read paths
	ListPlans(ctx context.Context) ([]Plan, error)
	ListFAQs(ctx context.Context) ([]FAQItem, error)
	GetContact(ctx context.Context) (ContactInfo, error)
}

// ContentClient reads the hosted content backend the admin screens write to.
type ContentClient interface {
	ListPlanIDs(ctx context.Context) ([]int64, error)
	GetPlan(ctx context.Context, id int64) (map[string]any, error)
	GetFAQs(ctx context.Context) ([]map[string]any, error)
	GetContact(ctx context.Context) (map[string]any, error)
}

// PlanExtractor turns free-form offer text into structured plan fields.
// Implementations may call an external text-generation service.
type PlanExtractor interface {
	ExtractPlan(ctx context.Context, text string) (PlanDraft, error)
}

// PlanDraft holds whatever an extractor managed to recover; zero values mean unknown.
type PlanDraft struct {
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	City          string   `json:"city"`
	Country       string   `json:"country"`
	Price         float64  `json:"price"`
	DurationDays  int      `json:"durationDays"`
	Regime        string   `json:"regime"`
	Includes      []string `json:"includes"`
	TravelerTypes []string `json:"travelerTypes"`
	Amenities     []string `json:"amenities"`
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// SessionStore keeps one JSON document per widget session, expiring after ttl.
type SessionStore interface {
	Load(ctx context.Context, id string, dst any) (bool, error)
	Save(ctx context.Context, id string, v any, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
