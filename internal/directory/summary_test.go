package directory

import (
	"strings"
	"testing"
)

func TestTopDrugsOrderingAndTies(t *testing.T) {
	p := Pharmacy{
		Prescriptions: []Prescription{
			{Drug: "A", Count: 10},
			{Drug: "B", Count: 30},
			{Drug: "C", Count: 10},
			{Drug: "D", Count: 20},
		},
	}

	top := TopDrugs(&p, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 drugs, got %d", len(top))
	}
	if top[0].Drug != "B" || top[1].Drug != "D" {
		t.Errorf("unexpected ordering: %+v", top)
	}
	// Tie between A and C keeps original order.
	if top[2].Drug != "A" {
		t.Errorf("expected tie to preserve original order, got %q", top[2].Drug)
	}

	// Source slice must not be reordered.
	if p.Prescriptions[0].Drug != "A" {
		t.Error("TopDrugs mutated the source prescription list")
	}
}

func TestSummary(t *testing.T) {
	p := Pharmacy{
		Name:  "Central Rx",
		City:  "Austin",
		State: "TX",
		Prescriptions: []Prescription{
			{Drug: "DrugX", Count: 60},
			{Drug: "DrugY", Count: 41},
		},
	}

	summary := Summary(&p)
	for _, want := range []string{
		"Central Rx",
		"Austin, TX",
		"101 prescriptions",
		"DrugX (60)",
		"High-volume pharmacy",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestSummaryLowVolumeNoBadge(t *testing.T) {
	p := Pharmacy{
		Name:          "Small Rx",
		City:          "Reno",
		State:         "NV",
		Prescriptions: []Prescription{{Drug: "DrugZ", Count: 5}},
	}
	if strings.Contains(Summary(&p), "High-volume") {
		t.Error("low-volume pharmacy should not get the high-volume line")
	}
}
