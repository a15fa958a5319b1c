package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	redisad "travel_assistant/internal/adapters/redis"
	"travel_assistant/internal/domain"
	"travel_assistant/internal/flow"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestCache_SetGetDel(t *testing.T) {
	mr, c := newClient(t)
	cache := redisad.NewFromClient(c)
	ctx := context.Background()

	var miss domain.Catalog
	if ok, err := cache.Get(ctx, "catalog:snapshot", &miss); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	in := domain.Catalog{
		Plans:   []domain.Plan{{ID: 7, Title: "Cartagena Colonial", City: "Cartagena", Visible: true}},
		Contact: domain.ContactInfo{Phone: "573001234567"},
	}
	if err := cache.Set(ctx, "catalog:snapshot", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ttl := mr.TTL("catalog:snapshot"); ttl != 60*time.Second {
		t.Fatalf("ttl: %v", ttl)
	}

	var out domain.Catalog
	ok, err := cache.Get(ctx, "catalog:snapshot", &out)
	if !ok || err != nil {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(out.Plans) != 1 || out.Plans[0].City != "Cartagena" || out.Contact.Phone != "573001234567" {
		t.Fatalf("unexpected catalog: %+v", out)
	}

	if err := cache.Del(ctx, "catalog:snapshot"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if mr.Exists("catalog:snapshot") {
		t.Fatalf("key should be gone")
	}
}

func TestSessionStore_RoundTripAndExpiry(t *testing.T) {
	mr, c := newClient(t)
	store := redisad.NewSessionStore(c)
	ctx := context.Background()

	type session struct {
		ID      string       `json:"id"`
		Context flow.Context `json:"context"`
	}
	in := session{ID: "abc", Context: flow.Context{Step: flow.StepAskDates, Data: flow.Slots{Name: "Ana", Destination: "San Andrés"}}}
	if err := store.Save(ctx, "abc", in, 30*time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("session:abc") {
		t.Fatalf("expected prefixed key")
	}

	var out session
	ok, err := store.Load(ctx, "abc", &out)
	if !ok || err != nil {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if out.Context != in.Context {
		t.Fatalf("context mismatch: %+v", out.Context)
	}

	mr.FastForward(31 * time.Minute)
	if ok, _ := store.Load(ctx, "abc", &out); ok {
		t.Fatalf("session should have expired")
	}

	_ = store.Save(ctx, "xyz", in, time.Minute)
	if err := store.Delete(ctx, "xyz"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := store.Load(ctx, "xyz", &out); ok {
		t.Fatalf("session should be deleted")
	}
}
