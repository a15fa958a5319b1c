package flow

import (
	"strings"

	"travel_assistant/internal/textnorm"
)

// DefaultMedia is shown when the destination matches no themed video.
const DefaultMedia = "travel-highlights"

// First keyword contained in the normalized destination wins, so longer or
// more specific keywords go first.
var destinationMedia = []struct{ keyword, media string }{
	{"san andres", "san-andres-caribe"},
	{"providencia", "san-andres-caribe"},
	{"cartagena", "cartagena-ciudad-amurallada"},
	{"santa marta", "santa-marta-tayrona"},
	{"tayrona", "santa-marta-tayrona"},
	{"eje cafetero", "eje-cafetero-paisaje"},
	{"medellin", "medellin-eterna-primavera"},
	{"amazonas", "amazonas-selva"},
	{"cancun", "cancun-riviera-maya"},
	{"punta cana", "punta-cana-playas"},
	{"europa", "europa-clasica"},
}

// MediaFor resolves a destination to its themed media cue.
func MediaFor(destination string) string {
	d := textnorm.Normalize(destination)
	if d == "" {
		return DefaultMedia
	}
	for _, m := range destinationMedia {
		if strings.Contains(d, m.keyword) {
			return m.media
		}
	}
	return DefaultMedia
}
