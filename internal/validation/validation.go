package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"adv-service/internal/domain"
)

// Violation kinds surfaced in 400 responses.
const (
	KindMissing   = "missing"
	KindWrongType = "wrong_type"
	KindEmpty     = "empty"
)

// Error describes the first offending field of a write payload.
type Error struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Message)
}

// Fields are checked in declaration order so the reported violation is
// deterministic regardless of payload key order.
var advFields = []string{domain.FieldHeader, domain.FieldDescription, domain.FieldOwner}

func decodeObject(raw []byte) (map[string]json.RawMessage, *Error) {
	var payload map[string]json.RawMessage
	// A JSON null unmarshals into a nil map without error, so it has to be
	// rejected alongside non-object payloads.
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		return nil, &Error{Field: "body", Kind: KindWrongType, Message: "request body must be a JSON object"}
	}
	return payload, nil
}

func stringField(payload map[string]json.RawMessage, field string) (string, *Error) {
	raw := payload[field]
	// Unmarshal treats a JSON null as a no-op on a string target, so it has
	// to be rejected explicitly.
	if string(bytes.TrimSpace(raw)) == "null" {
		return "", &Error{Field: field, Kind: KindWrongType, Message: fmt.Sprintf("%s must be a string", field)}
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", &Error{Field: field, Kind: KindWrongType, Message: fmt.Sprintf("%s must be a string", field)}
	}
	if value == "" {
		return "", &Error{Field: field, Kind: KindEmpty, Message: fmt.Sprintf("%s must not be empty", field)}
	}
	return value, nil
}

// ValidateCreate checks a creation payload: header, description and owner
// must all be present, string-typed and non-empty. Unknown keys are ignored.
func ValidateCreate(raw []byte) (domain.AdvFields, error) {
	payload, verr := decodeObject(raw)
	if verr != nil {
		return domain.AdvFields{}, verr
	}

	values := make(map[string]string, len(advFields))
	for _, field := range advFields {
		if _, ok := payload[field]; !ok {
			return domain.AdvFields{}, &Error{Field: field, Kind: KindMissing, Message: fmt.Sprintf("%s is required", field)}
		}
		value, verr := stringField(payload, field)
		if verr != nil {
			return domain.AdvFields{}, verr
		}
		values[field] = value
	}

	return domain.AdvFields{
		Header:      values[domain.FieldHeader],
		Description: values[domain.FieldDescription],
		Owner:       values[domain.FieldOwner],
	}, nil
}

// ValidateUpdate checks a partial-update payload. Every field is optional;
// the returned patch contains exactly the keys that were present in the
// payload, so an omitted field stays distinguishable from any supplied
// value. Unknown keys are ignored.
func ValidateUpdate(raw []byte) (domain.AdvPatch, error) {
	payload, verr := decodeObject(raw)
	if verr != nil {
		return nil, verr
	}

	patch := make(domain.AdvPatch, len(advFields))
	for _, field := range advFields {
		if _, ok := payload[field]; !ok {
			continue
		}
		value, verr := stringField(payload, field)
		if verr != nil {
			return nil, verr
		}
		patch[field] = value
	}

	return patch, nil
}
