package catalog

import (
	"strings"

	"travel_assistant/internal/domain"
	"travel_assistant/internal/textnorm"
)

// FAQCategories returns the distinct categories in first-seen order.
func FAQCategories(faqs []domain.FAQItem) []string {
	seen := make(map[string]struct{}, len(faqs))
	out := make([]string, 0)
	for _, f := range faqs {
		key := textnorm.Normalize(f.Category)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(f.Category))
	}
	return out
}

func FAQsByCategory(category string, faqs []domain.FAQItem) []domain.FAQItem {
	want := textnorm.Normalize(category)
	out := make([]domain.FAQItem, 0)
	if want == "" {
		return out
	}
	for _, f := range faqs {
		if textnorm.Normalize(f.Category) == want {
			out = append(out, f)
		}
	}
	return out
}

// MatchCategory resolves free text to one of the known categories: an exact
// normalized match first, then the first category mentioned inside the text.
func MatchCategory(text string, faqs []domain.FAQItem) (string, bool) {
	q := textnorm.Normalize(text)
	if q == "" {
		return "", false
	}
	cats := FAQCategories(faqs)
	for _, c := range cats {
		if textnorm.Normalize(c) == q {
			return c, true
		}
	}
	for _, c := range cats {
		if strings.Contains(q, textnorm.Normalize(c)) {
			return c, true
		}
	}
	return "", false
}

// FindFAQ picks the question in faqs that text names: exact normalized match
// first, then the first question containing the text or contained in it.
func FindFAQ(text string, faqs []domain.FAQItem) (domain.FAQItem, bool) {
	q := textnorm.Normalize(text)
	if q == "" {
		return domain.FAQItem{}, false
	}
	for _, f := range faqs {
		if textnorm.Normalize(f.Question) == q {
			return f, true
		}
	}
	for _, f := range faqs {
		fq := textnorm.Normalize(f.Question)
		if fq == "" {
			continue
		}
		if strings.Contains(fq, q) || strings.Contains(q, fq) {
			return f, true
		}
	}
	return domain.FAQItem{}, false
}
