// Package flow is the travel assistant's dialogue manager: a small deterministic
// state machine that collects name, destination, dates and party size, hands
// off to a human channel, and lets the visitor search the catalog or browse
// FAQs mid-conversation. It performs no I/O; callers own persistence and pacing.
package flow

import (
	"fmt"
	"strings"

	"travel_assistant/internal/catalog"
	"travel_assistant/internal/domain"
)

// Style selects how much the engine leans on explicit quick replies.
type Style int

const (
	// StyleFreeText asks open questions and relies on keyword and catalog matching.
	StyleFreeText Style = iota
	// StyleMenu attaches quick-reply options to every question and themes the
	// destination confirmation with its media cue.
	StyleMenu
)

func ParseStyle(s string) Style {
	if strings.EqualFold(strings.TrimSpace(s), "menu") {
		return StyleMenu
	}
	return StyleFreeText
}

type Config struct {
	Style            Style
	MessagingBaseURL string
	// FallbackPhone is used when the catalog snapshot carries no contact phone.
	FallbackPhone string
	// CityShortlist caps the destinations offered as quick replies.
	CityShortlist int
	Matcher       Matcher
}

// Engine drives one conversation. It is not safe for concurrent use; a widget
// serialises its turns.
type Engine struct {
	cfg     Config
	catalog *domain.Catalog
	state   Context
}

func New(cfg Config) *Engine {
	if cfg.MessagingBaseURL == "" {
		cfg.MessagingBaseURL = DefaultMessagingBaseURL
	}
	if cfg.CityShortlist <= 0 {
		cfg.CityShortlist = 6
	}
	if cfg.Matcher == nil {
		cfg.Matcher = DefaultMatcher()
	}
	return &Engine{cfg: cfg, state: NewContext()}
}

// Initialize primes the engine with the session's catalog snapshot.
func (e *Engine) Initialize(c domain.Catalog) { e.catalog = &c }

func (e *Engine) Initialized() bool { return e.catalog != nil }

// Reset returns the conversation to {GREETING, {}}.
func (e *Engine) Reset() { e.state = NewContext() }

func (e *Engine) Context() Context { return e.state }

// Restore resumes a conversation from a persisted Context. Unknown steps reset it.
func (e *Engine) Restore(c Context) {
	if !c.Step.Valid() {
		c = NewContext()
	}
	e.state = c
}

// Welcome is the opening bubble shown when the widget opens.
func (e *Engine) Welcome() BotResponse {
	if e.catalog == nil {
		return BotResponse{Text: MsgNotInitialized}
	}
	return BotResponse{Text: MsgWelcome}
}

// HandleTurn runs one turn. It always returns exactly one non-empty response.
func (e *Engine) HandleTurn(in Input) BotResponse {
	if e.catalog == nil {
		return BotResponse{Text: MsgNotInitialized}
	}
	switch v := in.(type) {
	case Restart:
		return e.restart()
	case Resume:
		if e.state.Step == StepWaitingVideo {
			return e.handoff()
		}
		return e.restate("")
	case UserText:
		return e.handleText(v.Text)
	}
	return e.restate(MsgClarify)
}

func (e *Engine) handleText(raw string) BotResponse {
	text := strings.TrimSpace(raw)
	// a tapped FAQ option wins over control words it may contain
	if r, ok := e.tappedFAQOption(text); ok {
		return r
	}

	intent := e.cfg.Matcher.Match(text)

	// global overrides, in priority order
	switch {
	case intent == IntentRestart:
		return e.restart()
	case intent == IntentCatalog:
		return e.showCatalog()
	case intent == IntentFAQ && !e.state.Step.inFAQ():
		return e.enterFAQ()
	}

	// GREETING falls back to the default name and WAITING_VIDEO hands off on any input
	if text == "" && e.state.Step != StepGreeting && e.state.Step != StepWaitingVideo {
		return e.restate(MsgClarify)
	}

	if e.state.Step.allowsCatalogSearch() {
		if plans := catalog.FindPlansByFreeText(text, e.catalog.Plans); len(plans) > 0 {
			return BotResponse{
				Text:             fmt.Sprintf("Encontré %s que coinciden con \"%s\". %s", countPlans(len(plans)), text, e.prompt()),
				RecommendedPlans: plans,
				ShowDatePicker:   e.state.Step == StepAskDates,
				Options:          e.options(),
			}
		}
	}

	switch e.state.Step {
	case StepGreeting:
		return e.captureName(text)
	case StepAskDestination:
		return e.captureDestination(text)
	case StepAskDates:
		return e.captureDates(text)
	case StepAskPeople:
		return e.capturePeople(text)
	case StepWaitingVideo:
		return e.handoff()
	case StepCompleted:
		return BotResponse{Text: MsgCompleted, Options: []string{optRestart, optCatalog}}
	case StepFAQCategory:
		return e.handleFAQCategory(text, intent)
	case StepFAQAnswer:
		return e.handleFAQAnswer(text, intent)
	}
	return e.restate(MsgClarify)
}

func (e *Engine) restart() BotResponse {
	e.Reset()
	return BotResponse{Text: MsgWelcomeBack}
}

func (e *Engine) showCatalog() BotResponse {
	plans := catalog.VisiblePlans(e.catalog.Plans)
	if len(plans) == 0 {
		return BotResponse{Text: MsgNoPlans + " " + e.prompt(), Options: e.options()}
	}
	return BotResponse{
		Text:             fmt.Sprintf("Este es nuestro catálogo completo: %s. %s", countPlans(len(plans)), e.prompt()),
		RecommendedPlans: plans,
		ShowDatePicker:   e.state.Step == StepAskDates,
		Options:          e.options(),
	}
}

func (e *Engine) captureName(text string) BotResponse {
	e.state.Data.Name = ExtractName(text)
	e.state.Step = StepAskDestination
	return BotResponse{
		Text:    fmt.Sprintf("¡Mucho gusto, %s! %s", e.state.Data.Name, promptDestination),
		Options: e.options(),
	}
}

func (e *Engine) captureDestination(text string) BotResponse {
	e.state.Data.Destination = text
	e.state.Step = StepAskDates

	resp := BotResponse{ShowDatePicker: true, Options: e.options()}
	if plans := catalog.FindPlansByFreeText(text, e.catalog.Plans); len(plans) > 0 {
		resp.Text = fmt.Sprintf("¡Excelente elección! Tenemos %s para %s. %s", countPlans(len(plans)), text, promptDates)
		resp.RecommendedPlans = plans
	} else {
		resp.Text = fmt.Sprintf("Aún no tenemos planes publicados para %s, pero un asesor puede armarte uno a la medida. %s", text, promptDates)
	}
	if e.cfg.Style == StyleMenu {
		resp.Media = MediaFor(text)
	}
	return resp
}

func (e *Engine) captureDates(text string) BotResponse {
	e.state.Data.Dates = text
	e.state.Step = StepAskPeople
	return BotResponse{
		Text:    fmt.Sprintf("Anotado: %s. %s", text, promptPeople),
		Options: e.options(),
	}
}

func (e *Engine) capturePeople(text string) BotResponse {
	e.state.Data.People = text
	e.state.Step = StepWaitingVideo
	return BotResponse{
		Text: fmt.Sprintf("¡Perfecto, %s! Dame un momento mientras preparo tu cotización para %s. Mientras tanto, mira este video.",
			orPlaceholder(e.state.Data.Name), orPlaceholder(e.state.Data.Destination)),
		Media: MediaFor(e.state.Data.Destination),
	}
}

func (e *Engine) handoff() BotResponse {
	phone := e.catalog.Contact.Phone
	if NormalizePhone(phone) == "" {
		phone = e.cfg.FallbackPhone
	}
	link := HandoffLink(e.cfg.MessagingBaseURL, phone, Summary(e.state.Data))
	e.state.Step = StepCompleted
	return BotResponse{
		Text:         fmt.Sprintf("¡Listo, %s! Un asesor continuará tu cotización por WhatsApp. Toca el enlace para enviarle tu resumen.", orPlaceholder(e.state.Data.Name)),
		WhatsAppLink: link,
		Options:      []string{optRestart, optCatalog},
	}
}

// restate repeats the current question, optionally prefixed by lead.
func (e *Engine) restate(lead string) BotResponse {
	text := e.prompt()
	if lead != "" {
		text = lead + " " + text
	}
	return BotResponse{
		Text:           text,
		Options:        e.options(),
		ShowDatePicker: e.state.Step == StepAskDates,
	}
}

// prompt is the pending question for the current step.
func (e *Engine) prompt() string {
	switch e.state.Step {
	case StepGreeting:
		return promptName
	case StepAskDestination:
		return promptDestination
	case StepAskDates:
		return promptDates
	case StepAskPeople:
		return promptPeople
	case StepWaitingVideo:
		return promptWaiting
	case StepCompleted:
		return MsgCompleted
	case StepFAQCategory:
		return promptFAQCategory
	case StepFAQAnswer:
		return promptFAQQuestion
	}
	return promptName
}

// options are the quick replies offered with the current question.
func (e *Engine) options() []string {
	switch e.state.Step {
	case StepAskDestination:
		opts := e.cityShortlist()
		if e.cfg.Style == StyleMenu && len(e.catalog.FAQs) > 0 {
			opts = append(opts, optFAQ)
		}
		return opts
	case StepAskDates:
		if e.cfg.Style == StyleMenu {
			return append([]string(nil), menuDateOptions...)
		}
	case StepAskPeople:
		if e.cfg.Style == StyleMenu {
			return append([]string(nil), menuPeopleOptions...)
		}
	case StepCompleted:
		return []string{optRestart, optCatalog}
	case StepFAQCategory:
		return append(catalog.FAQCategories(e.catalog.FAQs), optContinue)
	case StepFAQAnswer:
		return e.questionOptions()
	}
	return nil
}

func (e *Engine) cityShortlist() []string {
	cities := catalog.UniqueCities(catalog.VisiblePlans(e.catalog.Plans))
	if len(cities) > e.cfg.CityShortlist {
		cities = cities[:e.cfg.CityShortlist]
	}
	if len(cities) == 0 {
		return nil
	}
	return cities
}

func countPlans(n int) string {
	if n == 1 {
		return "1 plan"
	}
	return fmt.Sprintf("%d planes", n)
}
