// Package directory holds the pharmacy directory entities and the client
// that fetches them from the remote directory service.
package directory

import "fmt"

// Prescription is a drug name with its fill count. Immutable value.
type Prescription struct {
	Drug  string `json:"drug"`
	Count int    `json:"count"`
}

// Pharmacy is a known pharmacy record from the directory. Constructed once
// from a fetch and read-only for the rest of the session.
type Pharmacy struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Phone         string         `json:"phone"`
	Email         string         `json:"email,omitempty"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	Prescriptions []Prescription `json:"prescriptions,omitempty"`
}

// TotalRxVolume is the total prescription count across all drugs.
func (p *Pharmacy) TotalRxVolume() int {
	total := 0
	for _, rx := range p.Prescriptions {
		total += rx.Count
	}
	return total
}

// Location returns the formatted "City, State" string.
func (p *Pharmacy) Location() string {
	return fmt.Sprintf("%s, %s", p.City, p.State)
}

// IsHighVolume reports whether the pharmacy fills more than 100 total
// prescriptions. Exactly 100 is not high-volume.
func (p *Pharmacy) IsHighVolume() bool {
	return p.TotalRxVolume() > 100
}
