package catalog_test

import (
	"testing"

	"travel_assistant/internal/catalog"
	"travel_assistant/internal/domain"
)

// ---- fixtures ----

func samplePlans() []domain.Plan {
	return []domain.Plan{
		{ID: 1, Title: "Cartagena Colonial", Category: "Playa", City: "Cartagena", Country: "Colombia", Visible: true},
		{ID: 2, Title: "San Andrés Todo Incluido", Category: "Playa", City: "San Andrés", Country: "Colombia", Visible: true},
		{ID: 3, Title: "Cartagena Islas del Rosario", Category: "Aventura", City: "cartagena", Country: "Colombia", Visible: true},
		{ID: 4, Title: "Cartagena oculto", Category: "Playa", City: "Cartagena", Country: "Colombia", Visible: false},
		{ID: 5, Title: "Riviera Maya", Category: "Internacional", City: "Cancún", Country: "México", Visible: true},
		{ID: 6, Title: "Sin ciudad", Category: "Crucero", City: "", Country: "Caribe", Visible: true},
	}
}

func ids(ps []domain.Plan) []int64 {
	out := make([]int64, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func sameIDs(got []domain.Plan, want ...int64) bool {
	g := ids(got)
	if len(g) != len(want) {
		return false
	}
	for i := range g {
		if g[i] != want[i] {
			return false
		}
	}
	return true
}

// ---- tests ----

func TestUniqueCities_FirstSeenOrder(t *testing.T) {
	got := catalog.UniqueCities(samplePlans())
	want := []string{"Cartagena", "San Andrés", "Cancún"}
	if len(got) != len(want) {
		t.Fatalf("cities: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cities[%d]: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestPlansByCity_VisibleAndAccentInsensitive(t *testing.T) {
	got := catalog.PlansByCity("CARTÁGENA", samplePlans())
	if !sameIDs(got, 1, 3) {
		t.Fatalf("unexpected plans: %v", ids(got))
	}
	if got := catalog.PlansByCity("  ", samplePlans()); len(got) != 0 {
		t.Fatalf("blank city should match nothing, got %v", ids(got))
	}
}

func TestFindPlansByFreeText(t *testing.T) {
	plans := samplePlans()
	for _, q := range []string{"cartagena", "CARTAGENA", "cartágena"} {
		got := catalog.FindPlansByFreeText(q, plans)
		if !sameIDs(got, 1, 3) {
			t.Fatalf("%q: unexpected plans %v", q, ids(got))
		}
	}

	// city embedded in a longer sentence
	if got := catalog.FindPlansByFreeText("quiero ir a San Andres en octubre", plans); !sameIDs(got, 2) {
		t.Fatalf("sentence match: %v", ids(got))
	}
	// country and category fields
	if got := catalog.FindPlansByFreeText("méxico", plans); !sameIDs(got, 5) {
		t.Fatalf("country match: %v", ids(got))
	}
	if got := catalog.FindPlansByFreeText("crucero", plans); !sameIDs(got, 6) {
		t.Fatalf("category match: %v", ids(got))
	}
	// short text embedded in a longer city name
	if got := catalog.FindPlansByFreeText("andr", plans); !sameIDs(got, 2) {
		t.Fatalf("partial city match: %v", ids(got))
	}
}

func TestFindPlansByFreeText_NoMatchIsEmpty(t *testing.T) {
	got := catalog.FindPlansByFreeText("tokio", samplePlans())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if got := catalog.FindPlansByFreeText("", samplePlans()); len(got) != 0 {
		t.Fatalf("empty query should match nothing")
	}
	if got := catalog.FindPlansByFreeText("cartagena", nil); len(got) != 0 {
		t.Fatalf("empty catalog should match nothing")
	}
}

func TestVisiblePlans(t *testing.T) {
	if got := catalog.VisiblePlans(samplePlans()); !sameIDs(got, 1, 2, 3, 5, 6) {
		t.Fatalf("visible: %v", ids(got))
	}
}
