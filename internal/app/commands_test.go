package app_test

import (
	"context"
	"errors"
	"testing"

	"travel_assistant/internal/app"
	"travel_assistant/internal/domain"
)

func TestSyncPlan_MapsAliasesAndInvalidates(t *testing.T) {
	content := &fakeContent{plans: map[int64]map[string]any{
		4: {
			"titulo":    "Santa Marta Mágica",
			"categoria": "Playa",
			"destino":   map[string]any{"ciudad": "Santa Marta", "pais": "Colombia"},
			"precio":    "$ 1.250.000",
			"duracion":  "4",
			"regimen":   "Todo Incluido",
			"incluye":   "Vuelos, Hotel, Traslados",
			"publicado": "si",
		},
	}}
	repo := newFakeRepo()
	cache := &fakeCache{}
	svc := app.NewSyncService(content, repo, cache, nil)

	if err := svc.SyncPlan(context.Background(), 4); err != nil {
		t.Fatalf("SyncPlan: %v", err)
	}
	p, ok := repo.plans[4]
	if !ok {
		t.Fatalf("plan not upserted")
	}
	if p.ID != 4 || p.City != "Santa Marta" || p.Country != "Colombia" || p.Title != "Santa Marta Mágica" {
		t.Fatalf("unexpected mapping: %+v", p)
	}
	if p.Price != 1250000 || p.PriceLabel != "$ 1.250.000" || p.DurationDays != 4 {
		t.Fatalf("unexpected price/duration: %+v", p)
	}
	if p.Regime != domain.RegimeAllInclusive || len(p.Includes) != 3 || !p.Visible {
		t.Fatalf("unexpected regime/includes/visibility: %+v", p)
	}
	if cache.dels != 1 {
		t.Fatalf("snapshot should be invalidated once, got %d", cache.dels)
	}
}

func TestSyncPlan_MissIsLoggedNotFatal(t *testing.T) {
	repo := newFakeRepo()
	svc := app.NewSyncService(&fakeContent{}, repo, nil, nil)

	if err := svc.SyncPlan(context.Background(), 9); err != nil {
		t.Fatalf("a missing plan must not fail the sync: %v", err)
	}
	if repo.misses["plan:9"] != 404 {
		t.Fatalf("expected logged miss, got %v", repo.misses)
	}
}

func TestSyncPlan_ExtractorFillsGaps(t *testing.T) {
	content := &fakeContent{plans: map[int64]map[string]any{
		5: {"id": 5.0, "texto": "Escápate 3 días a Cartagena con desayuno incluido por $900.000", "price": 900000.0},
	}}
	repo := newFakeRepo()
	x := &fakeExtractor{draft: domain.PlanDraft{
		Title: "Escapada a Cartagena", Category: "Ciudad", City: "Cartagena", Country: "Colombia",
		Price: 1, DurationDays: 3, Regime: "desayuno",
	}}
	svc := app.NewSyncService(content, repo, nil, x)

	if err := svc.SyncPlan(context.Background(), 5); err != nil {
		t.Fatalf("SyncPlan: %v", err)
	}
	p := repo.plans[5]
	if x.calls != 1 || p.City != "Cartagena" || p.Title != "Escapada a Cartagena" {
		t.Fatalf("extractor not applied: %+v", p)
	}
	if p.Price != 900000 || p.DurationDays != 3 || p.Regime != domain.RegimeBreakfast {
		t.Fatalf("mapped fields must win over the draft: %+v", p)
	}
}

func TestSyncPlan_ExtractorFailureKeepsMappedPlan(t *testing.T) {
	content := &fakeContent{plans: map[int64]map[string]any{
		6: {"id": 6.0, "title": "Oferta", "description": "Texto libre sin ciudad"},
	}}
	repo := newFakeRepo()
	svc := app.NewSyncService(content, repo, nil, &fakeExtractor{fail: true})

	if err := svc.SyncPlan(context.Background(), 6); err != nil {
		t.Fatalf("extractor failure must not fail the sync: %v", err)
	}
	if repo.plans[6].Title != "Oferta" {
		t.Fatalf("mapped plan should still be stored: %+v", repo.plans[6])
	}
}

func TestSyncFAQs_SkipsIncomplete(t *testing.T) {
	content := &fakeContent{faqs: []map[string]any{
		{"id": 1.0, "pregunta": "¿Puedo pagar a cuotas?", "respuesta": "Sí"},
		{"id": 2.0, "pregunta": "¿Sin respuesta?"},
		{"question": "¿Aceptan tarjeta?", "answer": "Todas", "category": "Pagos"},
	}}
	repo := newFakeRepo()
	svc := app.NewSyncService(content, repo, nil, nil)

	if err := svc.SyncFAQs(context.Background()); err != nil {
		t.Fatalf("SyncFAQs: %v", err)
	}
	if len(repo.faqs) != 2 {
		t.Fatalf("expected 2 faqs, got %+v", repo.faqs)
	}
	if repo.faqs[0].Category != "General" || repo.faqs[1].Category != "Pagos" {
		t.Fatalf("unexpected categories: %+v", repo.faqs)
	}
}

func TestSyncContact(t *testing.T) {
	content := &fakeContent{contact: map[string]any{"telefono": "+57 300 123 4567", "correo": "hola@viajes.co"}}
	repo := newFakeRepo()
	svc := app.NewSyncService(content, repo, nil, nil)

	if err := svc.SyncContact(context.Background()); err != nil {
		t.Fatalf("SyncContact: %v", err)
	}
	if repo.contact == nil || repo.contact.Phone != "+57 300 123 4567" || repo.contact.Email != "hola@viajes.co" {
		t.Fatalf("unexpected contact: %+v", repo.contact)
	}
}

func TestSyncContact_ForbiddenLogged_OtherErrorsBubble(t *testing.T) {
	repo := newFakeRepo()
	svc := app.NewSyncService(&fakeContent{err: map[string]error{"contact": domain.ErrForbidden}}, repo, nil, nil)
	if err := svc.SyncContact(context.Background()); err != nil {
		t.Fatalf("forbidden should be logged as a miss: %v", err)
	}
	if repo.misses["contact"] != 403 {
		t.Fatalf("expected 403 miss, got %v", repo.misses)
	}

	boom := errors.New("connection reset")
	svc = app.NewSyncService(&fakeContent{err: map[string]error{"faqs": boom}}, newFakeRepo(), nil, nil)
	if err := svc.SyncFAQs(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
}
