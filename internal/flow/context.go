package flow

// Slots are the pieces of information the conversation collects.
// An empty string means "not captured yet".
type Slots struct {
	Name        string `json:"name,omitempty"`
	Destination string `json:"destination,omitempty"`
	Dates       string `json:"dates,omitempty"`
	People      string `json:"people,omitempty"`
}

// Context is the only mutable state of a conversation.
type Context struct {
	Step Step  `json:"step"`
	Data Slots `json:"data"`

	// FAQ browsing bookkeeping; ReturnStep is where "Continuar" leads back to.
	FAQCategory string `json:"faqCategory,omitempty"`
	ReturnStep  Step   `json:"returnStep,omitempty"`
}

func NewContext() Context { return Context{Step: StepGreeting} }
