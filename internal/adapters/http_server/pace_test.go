package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"travel_assistant/internal/flow"
)

type countingConv struct{ turns int }

func (c *countingConv) Open(ctx context.Context) (string, flow.BotResponse, error) {
	return "s-1", flow.BotResponse{}, nil
}

func (c *countingConv) Turn(ctx context.Context, id string, in flow.Input) (flow.BotResponse, error) {
	c.turns++
	return flow.BotResponse{Text: "ok"}, nil
}

func (c *countingConv) Reset(ctx context.Context, id string) (flow.BotResponse, error) {
	return flow.BotResponse{}, nil
}

func (c *countingConv) Close(ctx context.Context, id string) error { return nil }

func turnRequestWith(ctx context.Context) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "s-1")
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return httptest.NewRequest(http.MethodPost, "/v1/sessions/s-1/turns", strings.NewReader(`{"text":"hola"}`)).WithContext(ctx)
}

func TestTurn_ClientGoneDuringPacingKeepsState(t *testing.T) {
	conv := &countingConv{}
	h := &Handlers{Conv: conv, ReplyDelay: time.Minute}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h.turn(httptest.NewRecorder(), turnRequestWith(ctx))

	if conv.turns != 0 {
		t.Fatalf("turn applied for a client that left: %d", conv.turns)
	}
}

func TestTurn_PacedReply(t *testing.T) {
	conv := &countingConv{}
	h := &Handlers{Conv: conv, ReplyDelay: 10 * time.Millisecond}

	rec := httptest.NewRecorder()
	start := time.Now()
	h.turn(rec, turnRequestWith(context.Background()))

	if rec.Code != http.StatusOK || conv.turns != 1 {
		t.Fatalf("unexpected: %d turns=%d", rec.Code, conv.turns)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Fatalf("reply was not paced")
	}
}
