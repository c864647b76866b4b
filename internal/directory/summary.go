package directory

import (
	"fmt"
	"sort"
	"strings"
)

// TopDrugs returns up to n prescriptions ordered by count descending.
// Ties keep their original directory order.
func TopDrugs(p *Pharmacy, n int) []Prescription {
	top := make([]Prescription, len(p.Prescriptions))
	copy(top, p.Prescriptions)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// Summary builds a human-friendly multi-line overview of a pharmacy for
// operator-facing output.
func Summary(p *Pharmacy) string {
	parts := []string{
		p.Name,
		fmt.Sprintf("Located in %s", p.Location()),
		fmt.Sprintf("Total Rx Volume: %d prescriptions", p.TotalRxVolume()),
	}

	if len(p.Prescriptions) > 0 {
		top := TopDrugs(p, 3)
		names := make([]string, len(top))
		for i, rx := range top {
			names[i] = fmt.Sprintf("%s (%d)", rx.Drug, rx.Count)
		}
		parts = append(parts, "Top medications: "+strings.Join(names, ", "))
	}

	if p.IsHighVolume() {
		parts = append(parts, "High-volume pharmacy")
	}

	return strings.Join(parts, "\n")
}
