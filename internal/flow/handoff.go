package flow

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// DefaultMessagingBaseURL is the WhatsApp click-to-chat endpoint.
const DefaultMessagingBaseURL = "https://wa.me"

// Summary renders the collected slots for the human agent.
func Summary(d Slots) string {
	return fmt.Sprintf("Hola, soy %s. Me interesa viajar a %s. Fechas: %s. Viajeros: %s.",
		orPlaceholder(d.Name), orPlaceholder(d.Destination), orPlaceholder(d.Dates), orPlaceholder(d.People))
}

// HandoffLink builds <base>/<digits>?text=<summary>. Spaces are encoded as %20.
func HandoffLink(base, phone, text string) string {
	return strings.TrimRight(base, "/") + "/" + NormalizePhone(phone) + "?text=" + encodeComponent(text)
}

// NormalizePhone keeps only digits: "+57 (300) 123-4567" -> "573001234567".
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			return r
		}
		return -1
	}, phone)
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholderSlot
	}
	return s
}
