package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"travel_assistant/internal/adapters/observability"
	"travel_assistant/internal/domain"
	"travel_assistant/internal/flow"
)

// Session is what a widget session persists between turns: the engine's
// Context plus the catalog snapshot it was opened with.
type Session struct {
	ID       string          `json:"id"`
	Context  flow.Context    `json:"context"`
	Catalog  *domain.Catalog `json:"catalog,omitempty"`
	OpenedAt time.Time       `json:"openedAt"`
}

// CatalogSource supplies the snapshot a new session is primed with.
type CatalogSource interface {
	Snapshot(ctx context.Context) (domain.Catalog, error)
}

type ConversationService struct {
	catalog  CatalogSource
	sessions domain.SessionStore
	engine   flow.Config
	ttl      time.Duration
	newID    func() string
}

func NewConversationService(c CatalogSource, s domain.SessionStore, cfg flow.Config, ttl time.Duration) *ConversationService {
	return &ConversationService{catalog: c, sessions: s, engine: cfg, ttl: ttl, newID: uuid.NewString}
}

// Open starts a session and returns its id with the welcome bubble.
func (s *ConversationService) Open(ctx context.Context) (string, flow.BotResponse, error) {
	sess := Session{ID: s.newID(), Context: flow.NewContext(), OpenedAt: time.Now().UTC()}
	s.prime(ctx, &sess)

	resp := s.engineFor(sess).Welcome()
	if err := s.sessions.Save(ctx, sess.ID, sess, s.ttl); err != nil {
		return "", flow.BotResponse{}, fmt.Errorf("save session: %w", err)
	}
	observability.ObserveSession("open")
	log.Info().Str("session", sess.ID).Bool("catalog", sess.Catalog != nil).Msg("session opened")
	return sess.ID, resp, nil
}

// Turn feeds one input through the session's engine and persists the new Context.
func (s *ConversationService) Turn(ctx context.Context, id string, in flow.Input) (flow.BotResponse, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return flow.BotResponse{}, err
	}
	from := sess.Context.Step

	e := s.engineFor(sess)
	resp := e.HandleTurn(in)
	sess.Context = e.Context()

	if err := s.sessions.Save(ctx, id, sess, s.ttl); err != nil {
		return flow.BotResponse{}, fmt.Errorf("save session: %w", err)
	}

	observability.ObserveTurn(string(from), string(sess.Context.Step), inputKind(in))
	if n := len(resp.RecommendedPlans); n > 0 {
		observability.ObserveCatalogMatches(n)
	}
	if resp.WhatsAppLink != "" {
		observability.ObserveHandoff()
		log.Info().Str("session", id).Str("destination", sess.Context.Data.Destination).Msg("conversation handed off")
	}
	log.Debug().
		Str("session", id).
		Str("from", string(from)).
		Str("to", string(sess.Context.Step)).
		Str("input", inputKind(in)).
		Msg("turn")
	return resp, nil
}

// Reset returns the session to its initial Context. A session opened while the
// catalog was unavailable gets another chance at a snapshot here.
func (s *ConversationService) Reset(ctx context.Context, id string) (flow.BotResponse, error) {
	sess, err := s.load(ctx, id)
	if err != nil {
		return flow.BotResponse{}, err
	}
	if sess.Catalog == nil {
		s.prime(ctx, &sess)
	}
	e := s.engineFor(sess)
	e.Reset()
	sess.Context = e.Context()
	if err := s.sessions.Save(ctx, id, sess, s.ttl); err != nil {
		return flow.BotResponse{}, fmt.Errorf("save session: %w", err)
	}
	observability.ObserveSession("reset")
	return e.Welcome(), nil
}

func (s *ConversationService) Close(ctx context.Context, id string) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	observability.ObserveSession("close")
	return nil
}

func (s *ConversationService) load(ctx context.Context, id string) (Session, error) {
	var sess Session
	ok, err := s.sessions.Load(ctx, id, &sess)
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return Session{}, domain.ErrNotFound
	}
	return sess, nil
}

func (s *ConversationService) prime(ctx context.Context, sess *Session) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		// the engine stays uninitialized and answers with its fixed error text
		log.Warn().Str("session", sess.ID).Err(err).Msg("catalog snapshot unavailable")
		return
	}
	sess.Catalog = &snap
}

func (s *ConversationService) engineFor(sess Session) *flow.Engine {
	e := flow.New(s.engine)
	if sess.Catalog != nil {
		e.Initialize(*sess.Catalog)
	}
	e.Restore(sess.Context)
	return e
}

func inputKind(in flow.Input) string {
	switch in.(type) {
	case flow.UserText:
		return "text"
	case flow.Resume:
		return "resume"
	case flow.Restart:
		return "restart"
	}
	return "unknown"
}
