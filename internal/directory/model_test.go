package directory

import "testing"

func TestTotalRxVolume(t *testing.T) {
	p := Pharmacy{
		Prescriptions: []Prescription{
			{Drug: "DrugX", Count: 60},
			{Drug: "DrugY", Count: 41},
		},
	}
	if got := p.TotalRxVolume(); got != 101 {
		t.Errorf("expected total 101, got %d", got)
	}

	// Additive and order-independent.
	reversed := Pharmacy{
		Prescriptions: []Prescription{
			{Drug: "DrugY", Count: 41},
			{Drug: "DrugX", Count: 60},
		},
	}
	if reversed.TotalRxVolume() != p.TotalRxVolume() {
		t.Error("total volume should not depend on prescription order")
	}

	empty := Pharmacy{}
	if empty.TotalRxVolume() != 0 {
		t.Error("empty prescription list should sum to zero")
	}
}

func TestIsHighVolumeBoundary(t *testing.T) {
	at100 := Pharmacy{Prescriptions: []Prescription{{Drug: "A", Count: 100}}}
	if at100.IsHighVolume() {
		t.Error("exactly 100 prescriptions is not high-volume")
	}

	at101 := Pharmacy{Prescriptions: []Prescription{{Drug: "A", Count: 101}}}
	if !at101.IsHighVolume() {
		t.Error("101 prescriptions is high-volume")
	}
}

func TestLocation(t *testing.T) {
	p := Pharmacy{City: "Austin", State: "TX"}
	if got := p.Location(); got != "Austin, TX" {
		t.Errorf("unexpected location %q", got)
	}
}
