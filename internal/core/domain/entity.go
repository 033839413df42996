package domain

import "time"

type EntityKind string

const (
	EntityPerson   EntityKind = "person"
	EntityBusiness EntityKind = "business"
)

// Entity is a person or business record in the directory. Tax identifiers
// are mutually exclusive by kind: a person carries a PAN, a business a GST
// registration number, never both.
type Entity struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Kind      EntityKind `json:"type"`
	Phone     string     `json:"phone,omitempty"`
	PAN       string     `json:"pan,omitempty"`
	GSTNumber string     `json:"gst_number,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Validate enforces the kind-conditional field invariant.
func (e Entity) Validate() error {
	switch e.Kind {
	case EntityPerson:
		if e.GSTNumber != "" {
			return WrapError(ErrInvalidInput, "validate entity", errPersonWithGST)
		}
	case EntityBusiness:
		if e.PAN != "" {
			return WrapError(ErrInvalidInput, "validate entity", errBusinessWithPAN)
		}
	default:
		return WrapError(ErrInvalidInput, "validate entity", errUnknownEntityKind)
	}
	return nil
}

// EntityPatch is a partial update for an entity record.
type EntityPatch struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	PAN       *string `json:"pan,omitempty"`
	GSTNumber *string `json:"gst_number,omitempty"`
}
