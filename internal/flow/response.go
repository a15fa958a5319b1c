package flow

import "travel_assistant/internal/domain"

// BotResponse is everything the widget has to render for one turn.
type BotResponse struct {
	Text             string        `json:"text"`
	RecommendedPlans []domain.Plan `json:"recommendedPlans,omitempty"`
	ShowDatePicker   bool          `json:"showDatePicker,omitempty"`
	WhatsAppLink     string        `json:"whatsappLink,omitempty"`
	Options          []string      `json:"options,omitempty"`
	Media            string        `json:"media,omitempty"`
}

// Empty reports a response with nothing to render.
func (r BotResponse) Empty() bool {
	return r.Text == "" && len(r.RecommendedPlans) == 0 && r.WhatsAppLink == "" && len(r.Options) == 0
}
