package domain

import "time"

// Advertisement is the persisted entity. ID and CreatedAt are assigned by
// the storage layer on insert and never change afterwards.
type Advertisement struct {
	ID          int64     `json:"id"`
	Header      string    `json:"header"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Owner       string    `json:"owner"`
}

// AdvFields carries a fully validated creation payload.
type AdvFields struct {
	Header      string
	Description string
	Owner       string
}

// Field names accepted in write payloads.
const (
	FieldHeader      = "header"
	FieldDescription = "description"
	FieldOwner       = "owner"
)

// AdvPatch holds only the fields that were present in an update payload.
// A key omitted from the request is absent from the map, which is what lets
// the repository leave the corresponding column untouched.
type AdvPatch map[string]string

// Has reports whether the payload supplied the named field.
func (p AdvPatch) Has(field string) bool {
	_, ok := p[field]
	return ok
}
