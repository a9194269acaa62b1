package model

import (
	"github.com/pb33f/libopenapi/orderedmap"
)

type Schema struct {
	ID         string
	Properties *orderedmap.Map[string, Property]
}

// NewSchema returns an empty schema with the given ID.
func NewSchema(id string) Schema {
	return Schema{
		ID:         id,
		Properties: orderedmap.New[string, Property](),
	}
}

// Len returns the number of properties.
func (s Schema) Len() int {
	if s.Properties == nil {
		return 0
	}
	return s.Properties.Len()
}

// Property returns the named property.
func (s Schema) Property(name string) (Property, bool) {
	if s.Properties == nil {
		return Property{}, false
	}
	return s.Properties.Get(name)
}

// PropertyNames returns the property names in insertion order.
func (s Schema) PropertyNames() []string {
	var names []string
	if s.Properties == nil {
		return names
	}
	for name := range s.Properties.FromOldest() {
		names = append(names, name)
	}
	return names
}

// Property is either an enum property (Enum is non-nil) or a typed property.
type Property struct {
	Type        string
	ContainerOf string // element type of a generic container, if any
	Enum        []string
	Description string
}

func (p Property) IsEnum() bool {
	return p.Enum != nil
}

// SchemaSet accumulates schemas for a single extraction request. The first
// schema registered under an ID wins. It is not safe for concurrent use.
type SchemaSet struct {
	order []string
	byID  map[string]Schema
}

func NewSchemaSet() *SchemaSet {
	return &SchemaSet{byID: make(map[string]Schema)}
}

// Has reports whether a schema with the given ID is registered.
func (s *SchemaSet) Has(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Add registers schema unless its ID is taken or it has no properties.
func (s *SchemaSet) Add(schema Schema) bool {
	if schema.Len() == 0 || s.Has(schema.ID) {
		return false
	}
	s.order = append(s.order, schema.ID)
	s.byID[schema.ID] = schema
	return true
}

// AddAll registers every schema in order, keeping existing entries.
func (s *SchemaSet) AddAll(schemas []Schema) {
	for _, schema := range schemas {
		s.Add(schema)
	}
}

func (s *SchemaSet) Len() int {
	return len(s.order)
}

// Schemas returns the registered schemas in registration order.
func (s *SchemaSet) Schemas() []Schema {
	result := make([]Schema, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.byID[id])
	}
	return result
}
