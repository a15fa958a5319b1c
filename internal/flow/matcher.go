package flow

import (
	"strings"
	"unicode"

	"travel_assistant/internal/textnorm"
)

// Intent is a control meaning recognised in free text.
type Intent int

const (
	IntentNone Intent = iota
	IntentRestart
	IntentCatalog
	IntentFAQ
	IntentOtherQuestion
	IntentBack
	IntentContinue
)

// Matcher recognises control intents in user text. The engine only depends on
// this interface, so keyword matching can be swapped for a stricter grammar.
type Matcher interface {
	Match(text string) Intent
}

// KeywordMatcher matches whole-word phrases on normalized text.
// Intents are checked in ascending order, so lower values win ties.
type KeywordMatcher struct {
	order   []Intent
	phrases map[Intent][]string
}

func NewKeywordMatcher(table map[Intent][]string) *KeywordMatcher {
	m := &KeywordMatcher{phrases: make(map[Intent][]string, len(table))}
	for intent := IntentRestart; intent <= IntentContinue; intent++ {
		list, ok := table[intent]
		if !ok {
			continue
		}
		norm := make([]string, 0, len(list))
		for _, p := range list {
			if p = words(p); p != "" {
				norm = append(norm, p)
			}
		}
		m.order = append(m.order, intent)
		m.phrases[intent] = norm
	}
	return m
}

func DefaultMatcher() *KeywordMatcher {
	return NewKeywordMatcher(map[Intent][]string{
		IntentRestart:       {"reiniciar", "reinicio", "menu", "inicio", "empezar de nuevo", "volver a empezar"},
		IntentCatalog:       {"catalogo", "ver planes", "todos los planes", "ver todo", "ver todos"},
		IntentFAQ:           {"faq", "preguntas", "preguntas frecuentes"},
		IntentOtherQuestion: {"otra pregunta"},
		IntentBack:          {"volver", "atras", "categorias", "ver categorias"},
		IntentContinue:      {"continuar", "seguir", "salir"},
	})
}

func (m *KeywordMatcher) Match(text string) Intent {
	t := words(text)
	if t == "" {
		return IntentNone
	}
	padded := " " + t + " "
	for _, intent := range m.order {
		for _, p := range m.phrases[intent] {
			if strings.Contains(padded, " "+p+" ") {
				return intent
			}
		}
	}
	return IntentNone
}

// words normalizes s and collapses everything that is not a letter or digit
// into single spaces: "¡Menú!" -> "menu".
func words(s string) string {
	n := textnorm.Normalize(s)
	return strings.Join(strings.FieldsFunc(n, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}), " ")
}
