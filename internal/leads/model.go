// Package leads models information collected about unrecognized callers.
package leads

// Lead accumulates information about a caller who is not in the pharmacy
// directory. Fields are only ever filled in, never cleared, so completeness
// is monotonic over a conversation.
type Lead struct {
	Phone             string  `json:"phone"`
	Name              *string `json:"name,omitempty"`
	ContactPerson     *string `json:"contact_person,omitempty"`
	City              *string `json:"city,omitempty"`
	State             *string `json:"state,omitempty"`
	EstimatedRxVolume *int    `json:"estimated_rx_volume,omitempty"`
	PreferredContact  *string `json:"preferred_contact,omitempty"`
}

// New creates an empty lead for the given caller phone.
func New(phone string) *Lead {
	return &Lead{Phone: phone}
}

// IsComplete reports whether the lead is qualified: name, contact person,
// city, and state are all present. Estimated volume and preferred contact
// method are asked about but not required for qualification.
func (l *Lead) IsComplete() bool {
	return present(l.Name) && present(l.ContactPerson) && present(l.City) && present(l.State)
}

// SetName fills the pharmacy name if not already set.
func (l *Lead) SetName(v string) {
	if !present(l.Name) && v != "" {
		l.Name = &v
	}
}

// SetContactPerson fills the contact person if not already set.
func (l *Lead) SetContactPerson(v string) {
	if !present(l.ContactPerson) && v != "" {
		l.ContactPerson = &v
	}
}

// SetCity fills the city if not already set.
func (l *Lead) SetCity(v string) {
	if !present(l.City) && v != "" {
		l.City = &v
	}
}

// SetState fills the state if not already set.
func (l *Lead) SetState(v string) {
	if !present(l.State) && v != "" {
		l.State = &v
	}
}

// SetEstimatedRxVolume fills the estimated monthly volume if not already
// set. Negative values are ignored.
func (l *Lead) SetEstimatedRxVolume(v int) {
	if l.EstimatedRxVolume == nil && v >= 0 {
		l.EstimatedRxVolume = &v
	}
}

// SetPreferredContact fills the preferred contact method if not already set.
func (l *Lead) SetPreferredContact(v string) {
	if !present(l.PreferredContact) && v != "" {
		l.PreferredContact = &v
	}
}

func present(s *string) bool {
	return s != nil && *s != ""
}

// StringOr returns the value of an optional string field, or fallback when
// the field is unset. Rendering of absent values happens only at the
// template-formatting boundary.
func StringOr(s *string, fallback string) string {
	if present(s) {
		return *s
	}
	return fallback
}
