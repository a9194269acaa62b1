package model

import "sync"

type Document struct {
	Resources []Resource
	Models    []Schema
}

// ModelByID returns a model by its ID. Returns nil if the model is not found.
func (d *Document) ModelByID(id string) *Schema {
	for i := range d.Models {
		if d.Models[i].ID == id {
			return &d.Models[i]
		}
	}
	return nil
}

// Endpoints returns the endpoints of all resources in document order.
func (d *Document) Endpoints() []Endpoint {
	var endpoints []Endpoint
	for _, r := range d.Resources {
		endpoints = append(endpoints, r.Endpoints...)
	}
	return endpoints
}

type Resource struct {
	Name        string
	Path        string
	Description string
	Endpoints   []Endpoint
}

// Catalog is the global model catalog that unions the schema sets of many
// extraction requests. Merging is insert-if-absent by ID and is safe for
// concurrent writers.
type Catalog struct {
	mu  sync.Mutex
	set *SchemaSet
}

func NewCatalog() *Catalog {
	return &Catalog{set: NewSchemaSet()}
}

// Merge registers every schema in order.
func (c *Catalog) Merge(schemas []Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set.AddAll(schemas)
}

func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Len()
}

// Schemas returns a snapshot of the catalog in registration order.
func (c *Catalog) Schemas() []Schema {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set.Schemas()
}
