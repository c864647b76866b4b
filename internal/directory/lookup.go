package directory

import "strings"

// NormalizePhone strips every non-digit character from a phone number,
// preserving digit order. Two numbers are considered equal iff their
// normalized forms are identical.
func NormalizePhone(phone string) string {
	var b strings.Builder
	b.Grow(len(phone))
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FindByPhone scans records for the first pharmacy whose normalized phone
// matches the normalized query. No fuzzy matching or country-code handling.
func FindByPhone(records []Pharmacy, phone string) (*Pharmacy, bool) {
	want := NormalizePhone(phone)
	for i := range records {
		if NormalizePhone(records[i].Phone) == want {
			return &records[i], true
		}
	}
	return nil, false
}
