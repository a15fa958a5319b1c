package flow

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"travel_assistant/internal/textnorm"
)

// DefaultName labels a visitor whose name could not be extracted.
const DefaultName = "Viajero"

var (
	punctuation  = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)
	introduction = regexp.MustCompile(`(?:^|\s)(?:me llamo|mi nombre es|soy)\s+(\p{L}+)`)
)

var nameStopWords = map[string]struct{}{
	"hola": {}, "holi": {}, "buenas": {}, "buenos": {}, "buen": {}, "dia": {}, "dias": {},
	"tardes": {}, "noches": {}, "hey": {}, "hi": {}, "hello": {}, "saludos": {}, "oye": {},
	"que": {}, "tal": {}, "como": {}, "estas": {}, "esta": {}, "gracias": {}, "ok": {},
	"yo": {}, "me": {}, "mi": {}, "llamo": {}, "nombre": {}, "es": {}, "soy": {},
	"el": {}, "la": {}, "los": {}, "las": {}, "un": {}, "una": {}, "de": {}, "del": {},
	"y": {}, "a": {}, "senor": {}, "senora": {},
}

// ExtractName pulls a first name out of a greeting: "Hola, soy ana" -> "Ana".
// It looks for "me llamo X", "mi nombre es X" and "soy X" first, then falls back
// to the first token that is not a greeting word. Never returns "".
func ExtractName(text string) string {
	clean := strings.ToLower(punctuation.ReplaceAllString(text, " "))
	if m := introduction.FindStringSubmatch(clean); m != nil && !isStopWord(m[1]) {
		return capitalize(m[1])
	}
	for _, tok := range strings.Fields(clean) {
		if !isStopWord(tok) {
			return capitalize(tok)
		}
	}
	return DefaultName
}

func isStopWord(tok string) bool {
	_, ok := nameStopWords[textnorm.Normalize(tok)]
	return ok
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
