package domain

import (
	"strings"

	"travel_assistant/internal/textnorm"
)

// Regime is the accommodation board basis of a plan.
type Regime string

const (
	RegimeAllInclusive Regime = "todo_incluido"
	RegimeFullBoard    Regime = "pension_completa"
	RegimeHalfBoard    Regime = "media_pension"
	RegimeBreakfast    Regime = "desayuno"
	RegimeRoomOnly     Regime = "solo_alojamiento"
)

var regimes = []Regime{RegimeAllInclusive, RegimeFullBoard, RegimeHalfBoard, RegimeBreakfast, RegimeRoomOnly}

// ParseRegime maps loose spellings ("Todo Incluido", "media-pensión") onto the
// closed set. Unknown values fall back to RegimeRoomOnly.
func ParseRegime(s string) Regime {
	k := textnorm.Normalize(s)
	k = strings.NewReplacer(" ", "_", "-", "_").Replace(k)
	for _, r := range regimes {
		if string(r) == k {
			return r
		}
	}
	switch k {
	case "all_inclusive":
		return RegimeAllInclusive
	case "full_board":
		return RegimeFullBoard
	case "half_board":
		return RegimeHalfBoard
	case "breakfast", "bed_and_breakfast":
		return RegimeBreakfast
	}
	return RegimeRoomOnly
}

// Plan is a bookable travel offer owned by the host application.
type Plan struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	PriceLabel    string   `json:"price"`
	Price         float64  `json:"priceValue"`
	DurationDays  int      `json:"durationDays"`
	Description   string   `json:"description"`
	Images        []string `json:"images,omitempty"`
	Includes      []string `json:"includes,omitempty"`
	Visible       bool     `json:"isVisible"`
	DepartureDate string   `json:"departureDate,omitempty"`
	ReturnDate    string   `json:"returnDate,omitempty"`
	Country       string   `json:"country"`
	City          string   `json:"city"`
	Regime        Regime   `json:"regime"`
	TravelerTypes []string `json:"travelerTypes,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
}

// Catalog is the read-only snapshot a conversation is primed with.
type Catalog struct {
	Plans   []Plan      `json:"plans"`
	FAQs    []FAQItem   `json:"faqs"`
	Contact ContactInfo `json:"contact"`
}
