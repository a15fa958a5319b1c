package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"travel_assistant/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	plans   map[int64]domain.Plan
	faqs    []domain.FAQItem
	contact *domain.ContactInfo
	misses  map[string]int
	reads   int
	listErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{plans: map[int64]domain.Plan{}, misses: map[string]int{}}
}

func (f *fakeRepo) UpsertPlan(ctx context.Context, p domain.Plan) error {
	f.plans[p.ID] = p
	return nil
}
func (f *fakeRepo) UpsertFAQ(ctx context.Context, q domain.FAQItem) error {
	f.faqs = append(f.faqs, q)
	return nil
}
func (f *fakeRepo) UpsertContact(ctx context.Context, c domain.ContactInfo) error {
	f.contact = &c
	return nil
}
func (f *fakeRepo) LogMiss(ctx context.Context, resource string, status int, reason string) error {
	f.misses[resource] = status
	return nil
}
func (f *fakeRepo) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	f.reads++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Plan, 0, len(f.plans))
	for id := int64(1); len(out) < len(f.plans); id++ {
		if p, ok := f.plans[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}
func (f *fakeRepo) ListFAQs(ctx context.Context) ([]domain.FAQItem, error) { return f.faqs, nil }
func (f *fakeRepo) GetContact(ctx context.Context) (domain.ContactInfo, error) {
	if f.contact == nil {
		return domain.ContactInfo{}, domain.ErrNotFound
	}
	return *f.contact, nil
}

// fakeCache round-trips through JSON like the Redis adapter does.
type fakeCache struct {
	store map[string][]byte
	dels  int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	c.store[key] = b
	return err
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels++
	delete(c.store, key)
	return nil
}

type fakeSessions struct {
	docs map[string][]byte
	ttl  time.Duration
}

func newFakeSessions() *fakeSessions { return &fakeSessions{docs: map[string][]byte{}} }

func (s *fakeSessions) Load(ctx context.Context, id string, dst any) (bool, error) {
	b, ok := s.docs[id]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}
func (s *fakeSessions) Save(ctx context.Context, id string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	s.docs[id] = b
	s.ttl = ttl
	return err
}
func (s *fakeSessions) Delete(ctx context.Context, id string) error {
	delete(s.docs, id)
	return nil
}

type fakeContent struct {
	plans   map[int64]map[string]any
	faqs    []map[string]any
	contact map[string]any
	err     map[string]error
}

func (f *fakeContent) ListPlanIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	for id := range f.plans {
		ids = append(ids, id)
	}
	return ids, nil
}
func (f *fakeContent) GetPlan(ctx context.Context, id int64) (map[string]any, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
func (f *fakeContent) GetFAQs(ctx context.Context) ([]map[string]any, error) {
	return f.faqs, f.err["faqs"]
}
func (f *fakeContent) GetContact(ctx context.Context) (map[string]any, error) {
	return f.contact, f.err["contact"]
}

type fakeExtractor struct {
	draft domain.PlanDraft
	fail  bool
	calls int
}

func (x *fakeExtractor) ExtractPlan(ctx context.Context, text string) (domain.PlanDraft, error) {
	x.calls++
	if x.fail {
		return domain.PlanDraft{}, errors.New("quota exceeded")
	}
	return x.draft, nil
}
