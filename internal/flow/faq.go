package flow

import (
	"fmt"

	"travel_assistant/internal/catalog"
	"travel_assistant/internal/textnorm"
)

func (e *Engine) enterFAQ() BotResponse {
	cats := catalog.FAQCategories(e.catalog.FAQs)
	if len(cats) == 0 {
		return e.restate(MsgNoFAQs)
	}
	e.state.ReturnStep = e.state.Step
	e.state.FAQCategory = ""
	e.state.Step = StepFAQCategory
	return BotResponse{Text: promptFAQCategory, Options: e.options()}
}

func (e *Engine) handleFAQCategory(text string, intent Intent) BotResponse {
	if cat, ok := catalog.MatchCategory(text, e.catalog.FAQs); ok {
		return e.showQuestions(cat)
	}
	if intent == IntentContinue || intent == IntentBack {
		return e.leaveFAQ()
	}
	return e.restate(MsgChooseOption)
}

func (e *Engine) handleFAQAnswer(text string, intent Intent) BotResponse {
	faqs := catalog.FAQsByCategory(e.state.FAQCategory, e.catalog.FAQs)
	if len(faqs) == 0 {
		return e.showCategories()
	}
	switch intent {
	case IntentOtherQuestion:
		return e.showQuestions(e.state.FAQCategory)
	case IntentBack, IntentFAQ:
		return e.showCategories()
	case IntentContinue:
		return e.leaveFAQ()
	}
	if f, ok := catalog.FindFAQ(text, faqs); ok {
		return answer(f.Answer)
	}
	return e.restate(MsgChooseOption)
}

func answer(text string) BotResponse {
	return BotResponse{Text: text, Options: []string{optOtherQuestion, optCategories, optContinue}}
}

func (e *Engine) showCategories() BotResponse {
	e.state.Step = StepFAQCategory
	e.state.FAQCategory = ""
	return BotResponse{Text: promptFAQCategory, Options: e.options()}
}

func (e *Engine) showQuestions(category string) BotResponse {
	e.state.Step = StepFAQAnswer
	e.state.FAQCategory = category
	return BotResponse{
		Text:    fmt.Sprintf("Estas son las preguntas sobre %s. %s", category, promptFAQQuestion),
		Options: e.options(),
	}
}

func (e *Engine) questionOptions() []string {
	faqs := catalog.FAQsByCategory(e.state.FAQCategory, e.catalog.FAQs)
	opts := make([]string, 0, len(faqs)+1)
	for _, f := range faqs {
		opts = append(opts, f.Question)
	}
	return append(opts, optCategories)
}

func (e *Engine) leaveFAQ() BotResponse {
	back := e.state.ReturnStep
	if !back.Valid() || back.inFAQ() {
		back = StepGreeting
	}
	e.state.Step = back
	e.state.ReturnStep = ""
	e.state.FAQCategory = ""
	return e.restate("Sigamos.")
}

// tappedFAQOption answers text that is exactly one of the options the FAQ
// states offered.
func (e *Engine) tappedFAQOption(text string) (BotResponse, bool) {
	if text == "" {
		return BotResponse{}, false
	}
	switch e.state.Step {
	case StepFAQCategory:
		for _, c := range catalog.FAQCategories(e.catalog.FAQs) {
			if textnorm.Equal(c, text) {
				return e.showQuestions(c), true
			}
		}
	case StepFAQAnswer:
		for _, f := range catalog.FAQsByCategory(e.state.FAQCategory, e.catalog.FAQs) {
			if textnorm.Equal(f.Question, text) {
				return answer(f.Answer), true
			}
		}
	}
	return BotResponse{}, false
}
