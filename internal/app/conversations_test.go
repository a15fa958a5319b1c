package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"travel_assistant/internal/app"
	"travel_assistant/internal/domain"
	"travel_assistant/internal/flow"
)

type stubCatalog struct {
	snap domain.Catalog
	err  error
}

func (s *stubCatalog) Snapshot(ctx context.Context) (domain.Catalog, error) { return s.snap, s.err }

func travelCatalog() domain.Catalog {
	return domain.Catalog{
		Plans: []domain.Plan{
			{ID: 1, Title: "San Andrés Todo Incluido", City: "San Andrés", Country: "Colombia", Category: "Playa", Visible: true},
		},
		Contact: domain.ContactInfo{Phone: "+57 300 123 4567"},
	}
}

func storedContext(t *testing.T, s *fakeSessions, id string) flow.Context {
	t.Helper()
	var sess app.Session
	if err := json.Unmarshal(s.docs[id], &sess); err != nil {
		t.Fatalf("decode stored session: %v", err)
	}
	return sess.Context
}

func TestConversation_FullJourneyPersistsBetweenTurns(t *testing.T) {
	sessions := newFakeSessions()
	svc := app.NewConversationService(&stubCatalog{snap: travelCatalog()}, sessions, flow.Config{}, 30*time.Minute)
	ctx := context.Background()

	id, welcome, err := svc.Open(ctx)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if id == "" || welcome.Text == "" || welcome.Text == flow.MsgNotInitialized {
		t.Fatalf("unexpected welcome: %q %+v", id, welcome)
	}
	if sessions.ttl != 30*time.Minute {
		t.Fatalf("session ttl not applied: %v", sessions.ttl)
	}

	steps := []struct {
		in   flow.Input
		want flow.Step
	}{
		{flow.Text("Me llamo Ana"), flow.StepAskDestination},
		{flow.Text("San Andrés"), flow.StepAskDates},
		{flow.Text("15 de octubre"), flow.StepAskPeople},
		{flow.Text("2 adultos"), flow.StepWaitingVideo},
	}
	for _, s := range steps {
		if _, err := svc.Turn(ctx, id, s.in); err != nil {
			t.Fatalf("turn: %v", err)
		}
		if got := storedContext(t, sessions, id).Step; got != s.want {
			t.Fatalf("after %#v: want %s, got %s", s.in, s.want, got)
		}
	}

	resp, err := svc.Turn(ctx, id, flow.Resume{})
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if !strings.HasPrefix(resp.WhatsAppLink, "https://wa.me/573001234567?text=") {
		t.Fatalf("unexpected handoff link %q", resp.WhatsAppLink)
	}
	final := storedContext(t, sessions, id)
	if final.Step != flow.StepCompleted || final.Data.Name != "Ana" {
		t.Fatalf("unexpected final context: %+v", final)
	}
}

func TestConversation_UnknownSession(t *testing.T) {
	svc := app.NewConversationService(&stubCatalog{snap: travelCatalog()}, newFakeSessions(), flow.Config{}, time.Minute)

	if _, err := svc.Turn(context.Background(), "nope", flow.Text("hola")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := svc.Reset(context.Background(), "nope"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestConversation_CatalogOutageThenRecoveryOnReset(t *testing.T) {
	src := &stubCatalog{err: errors.New("mysql down")}
	sessions := newFakeSessions()
	svc := app.NewConversationService(src, sessions, flow.Config{}, time.Minute)
	ctx := context.Background()

	id, welcome, err := svc.Open(ctx)
	if err != nil {
		t.Fatalf("open must not fail on catalog outage: %v", err)
	}
	if welcome.Text != flow.MsgNotInitialized {
		t.Fatalf("want not-initialized text, got %q", welcome.Text)
	}
	resp, _ := svc.Turn(ctx, id, flow.Text("Me llamo Ana"))
	if resp.Text != flow.MsgNotInitialized {
		t.Fatalf("uninitialized engine must answer with its fixed text, got %q", resp.Text)
	}

	src.snap, src.err = travelCatalog(), nil
	resp, err = svc.Reset(ctx, id)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if resp.Text == flow.MsgNotInitialized {
		t.Fatalf("reset should re-prime the catalog")
	}
	if got := storedContext(t, sessions, id).Step; got != flow.StepGreeting {
		t.Fatalf("reset should return to greeting, got %s", got)
	}
}

func TestConversation_RestartSignalAndClose(t *testing.T) {
	sessions := newFakeSessions()
	svc := app.NewConversationService(&stubCatalog{snap: travelCatalog()}, sessions, flow.Config{}, time.Minute)
	ctx := context.Background()

	id, _, _ := svc.Open(ctx)
	_, _ = svc.Turn(ctx, id, flow.Text("Soy Luis"))
	if _, err := svc.Turn(ctx, id, flow.Restart{}); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if c := storedContext(t, sessions, id); c.Step != flow.StepGreeting || c.Data.Name != "" {
		t.Fatalf("restart should clear the context, got %+v", c)
	}

	if err := svc.Close(ctx, id); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := svc.Turn(ctx, id, flow.Text("hola")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("closed session should be gone, got %v", err)
	}
}
