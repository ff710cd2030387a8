package store

import (
	"github.com/invopop/jsonschema"
)

// PersistedState describes what the store keeps in storage, one field per key
type PersistedState struct {
	Enrollments []Enrollment `json:"training-enrollments" jsonschema:"required"`
	Students    []Student    `json:"training-students" jsonschema:"required"`
}

// GenerateSchema returns JSON schema of the persisted layout
func GenerateSchema() *jsonschema.Schema {
	schema := jsonschema.Reflect(&PersistedState{})
	schema.Title = "Enrolls Storage Schema"
	schema.Description = "Values stored under training-enrollments and training-students keys"
	return schema
}
