package httputil

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// OptionalUUID tracks presence and value for JSON merge-patch semantics.
// This enables proper tri-state handling that Go's *uuid.UUID cannot
// express:
//   - Present=false: field absent from JSON (don't change)
//   - Present=true, Value=nil: field is JSON null (clear/set to NULL)
//   - Present=true, Value=&id: field has a value
type OptionalUUID struct {
	Present bool
	Value   *uuid.UUID
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (o *OptionalUUID) UnmarshalJSON(data []byte) error {
	o.Present = true

	// Check for JSON null
	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	o.Value = &id
	return nil
}

// MarshalJSON round-trips the field for logging and tests.
func (o OptionalUUID) MarshalJSON() ([]byte, error) {
	if !o.Present || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
