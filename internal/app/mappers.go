package app

import (
	"fmt"
	"strconv"
	"strings"

	"travel_assistant/internal/domain"
)

/********** alias registries (single source of truth) **********/

// The content backend grew out of a Spanish admin panel and a later English
// API, so most fields arrive under either name.
var planAliases = map[string][]string{
	"title":       {"title", "titulo", "name", "nombre"},
	"category":    {"category", "categoria", "type", "tipo"},
	"price_label": {"price_label", "priceLabel", "precio_texto"},
	"description": {"description", "descripcion", "details", "detalle"},
	"country":     {"country", "pais", "destination.country", "destino.pais"},
	"city":        {"city", "ciudad", "destination.city", "destino.ciudad"},
	"regime":      {"regime", "regimen", "board", "plan_alimentacion"},
	"departure":   {"departure_date", "departureDate", "fecha_salida", "dates.departure"},
	"return":      {"return_date", "returnDate", "fecha_regreso", "dates.return"},
	"raw_text":    {"raw_text", "rawText", "texto", "texto_libre"},
}

var faqAliases = map[string][]string{
	"question": {"question", "pregunta", "q"},
	"answer":   {"answer", "respuesta", "a"},
	"category": {"category", "categoria", "group"},
}

var contactAliases = map[string][]string{
	"phone":   {"phone", "telefono", "whatsapp", "whatsapp_number", "contact.phone"},
	"email":   {"email", "correo", "contact.email"},
	"address": {"address", "direccion", "contact.address"},
	"message": {"whatsapp_message", "whatsappMessage", "mensaje", "greeting"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path or "". Numbers are formatted.
func lookupStr(m map[string]any, path string) string {
	switch v := lookupAny(m, path).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "1.250.000" or "8,5").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			if f, ok := parseMoney(v); ok {
				return &f
			}
		}
	}
	return nil
}

// parseMoney reads "$ 1.250.000", "1250000" or "8,5". A dot followed by exactly
// three digits is read as a thousands separator.
func parseMoney(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return 0, false
	}
	parts := strings.Split(clean, ".")
	thousands := len(parts) > 1
	for _, p := range parts[1:] {
		if len(p) != 3 {
			thousands = false
		}
	}
	if thousands {
		clean = strings.Join(parts, "")
	}
	clean = strings.ReplaceAll(clean, ",", ".")
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// firstInt64Flexible: int64 from several paths (float64/int/string).
func firstInt64Flexible(m map[string]any, paths ...string) *int64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int64(v)
			return &x
		case int:
			x := int64(v)
			return &x
		case int64:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

// firstBoolFlexible: bool from several paths (bool/"true"/"si"/1).
func firstBoolFlexible(m map[string]any, paths ...string) *bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			b := v
			return &b
		case float64:
			b := v != 0
			return &b
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true", "1", "si", "sí", "yes":
				b := true
				return &b
			case "false", "0", "no":
				b := false
				return &b
			}
		}
	}
	return nil
}

// firstSliceStrings: accept []any with either strings or {url/src/name}, or a comma list.
func firstSliceStrings(m map[string]any, paths ...string) []string {
	for _, k := range paths {
		switch raw := lookupAny(m, k).(type) {
		case []any:
			out := make([]string, 0, len(raw))
			for _, it := range raw {
				switch t := it.(type) {
				case string:
					if t = strings.TrimSpace(t); t != "" {
						out = append(out, t)
					}
				case map[string]any:
					for _, key := range []string{"url", "src", "name", "label"} {
						if u, ok := t[key].(string); ok && u != "" {
							out = append(out, u)
							break
						}
					}
				}
			}
			if len(out) > 0 {
				return out
			}
		case string:
			var out []string
			for _, p := range strings.Split(raw, ",") {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}
	return nil
}

/********** plan mapper **********/

func mapPlan(p map[string]any) domain.Plan {
	pl := domain.Plan{
		Title:         firstNonEmptyAlias(p, planAliases, "title"),
		Category:      firstNonEmptyAlias(p, planAliases, "category"),
		PriceLabel:    firstNonEmptyAlias(p, planAliases, "price_label"),
		Description:   firstNonEmptyAlias(p, planAliases, "description"),
		Country:       firstNonEmptyAlias(p, planAliases, "country"),
		City:          firstNonEmptyAlias(p, planAliases, "city"),
		Regime:        domain.ParseRegime(firstNonEmptyAlias(p, planAliases, "regime")),
		DepartureDate: firstNonEmptyAlias(p, planAliases, "departure"),
		ReturnDate:    firstNonEmptyAlias(p, planAliases, "return"),
		Images:        firstSliceStrings(p, "images", "imagenes", "photos", "gallery"),
		Includes:      firstSliceStrings(p, "includes", "incluye", "included"),
		TravelerTypes: firstSliceStrings(p, "traveler_types", "travelerTypes", "tipo_viajero"),
		Amenities:     firstSliceStrings(p, "amenities", "comodidades", "facilities"),
		Visible:       true,
	}
	if v := firstInt64Flexible(p, "id", "plan_id", "planId"); v != nil {
		pl.ID = *v
	}
	if f := getFloatFlexible(p, "price_value", "priceValue", "precio_valor", "price", "precio"); f != nil {
		pl.Price = *f
	}
	if pl.PriceLabel == "" {
		// a string price is already a display label
		for _, k := range []string{"price", "precio"} {
			if s, ok := lookupAny(p, k).(string); ok && strings.TrimSpace(s) != "" {
				pl.PriceLabel = strings.TrimSpace(s)
				break
			}
		}
	}
	if pl.PriceLabel == "" && pl.Price > 0 {
		pl.PriceLabel = formatCOP(pl.Price)
	}
	if d := firstInt64Flexible(p, "duration_days", "durationDays", "duracion", "dias", "duration"); d != nil {
		pl.DurationDays = int(*d)
	}
	if b := firstBoolFlexible(p, "visible", "is_visible", "isVisible", "publicado"); b != nil {
		pl.Visible = *b
	}
	return pl
}

// planNeedsExtraction reports whether a mapped plan lacks the fields the
// assistant searches on and the payload carries free text to recover them from.
func planNeedsExtraction(pl domain.Plan, raw map[string]any) (string, bool) {
	text := firstNonEmptyAlias(raw, planAliases, "raw_text")
	if text == "" {
		text = pl.Description
	}
	if text == "" {
		return "", false
	}
	return text, pl.Title == "" || pl.City == "" || pl.Category == ""
}

// mergeDraft fills only the fields the mapper could not resolve.
func mergeDraft(pl domain.Plan, d domain.PlanDraft) domain.Plan {
	if pl.Title == "" {
		pl.Title = strings.TrimSpace(d.Title)
	}
	if pl.Category == "" {
		pl.Category = strings.TrimSpace(d.Category)
	}
	if pl.City == "" {
		pl.City = strings.TrimSpace(d.City)
	}
	if pl.Country == "" {
		pl.Country = strings.TrimSpace(d.Country)
	}
	if pl.Price == 0 && d.Price > 0 {
		pl.Price = d.Price
		if pl.PriceLabel == "" {
			pl.PriceLabel = formatCOP(d.Price)
		}
	}
	if pl.DurationDays == 0 && d.DurationDays > 0 {
		pl.DurationDays = d.DurationDays
	}
	if pl.Regime == domain.RegimeRoomOnly && d.Regime != "" {
		pl.Regime = domain.ParseRegime(d.Regime)
	}
	if len(pl.Includes) == 0 {
		pl.Includes = d.Includes
	}
	if len(pl.TravelerTypes) == 0 {
		pl.TravelerTypes = d.TravelerTypes
	}
	if len(pl.Amenities) == 0 {
		pl.Amenities = d.Amenities
	}
	return pl
}

// formatCOP renders 1250000 as "$ 1.250.000".
func formatCOP(v float64) string {
	s := strconv.FormatInt(int64(v), 10)
	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)
	return fmt.Sprintf("$ %s", strings.Join(groups, "."))
}

/********** faq / contact mappers **********/

func mapFAQ(f map[string]any) domain.FAQItem {
	item := domain.FAQItem{
		Question: firstNonEmptyAlias(f, faqAliases, "question"),
		Answer:   firstNonEmptyAlias(f, faqAliases, "answer"),
		Category: firstNonEmptyAlias(f, faqAliases, "category"),
	}
	if v := firstInt64Flexible(f, "id", "faq_id"); v != nil {
		item.ID = *v
	}
	if item.Category == "" {
		item.Category = "General"
	}
	return item
}

func mapContact(c map[string]any) domain.ContactInfo {
	return domain.ContactInfo{
		Phone:           firstNonEmptyAlias(c, contactAliases, "phone"),
		Email:           firstNonEmptyAlias(c, contactAliases, "email"),
		Address:         firstNonEmptyAlias(c, contactAliases, "address"),
		WhatsAppMessage: firstNonEmptyAlias(c, contactAliases, "message"),
	}
}
