package domain

type FAQItem struct {
	ID       int64  `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
}

// ContactInfo is the human-staffed channel the assistant hands off to.
type ContactInfo struct {
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	Address         string `json:"address,omitempty"`
	WhatsAppMessage string `json:"whatsappMessage,omitempty"`
}
