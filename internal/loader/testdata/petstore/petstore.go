// Package petstore is an annotated API used by the loader tests.
package petstore

import (
	"context"
	"net/http"
	"net/textproto"
	"sync"
	"time"
)

// Status is the stock state of a pet.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
)

// Size is an integer enumeration.
type Size int

const (
	Small Size = iota
	Large
)

// Entity carries fields shared by stored records.
type Entity struct {
	// ID is the record identifier.
	ID      int64     `json:"id"`
	Created time.Time `json:"created"`
}

// Category groups pets.
type Category struct {
	Name   string    `json:"name"`
	Parent *Category `json:"parent,omitempty"`
}

// Owner of a pet.
type Owner struct {
	Email string `json:"email"`
}

// Pet is an animal for sale.
type Pet struct {
	Entity
	// Name of the pet.
	Name     string           `json:"name"`
	Status   Status           `json:"status"`
	Size     Size             `json:"size"`
	Tags     []string         `json:"tags"`
	Category *Category        `json:"category"`
	Owners   map[string]Owner `json:"owners"`
	Notes    string           `json:"-"`
	// Secret is only shown to staff.
	Secret string `json:"secret" view:"Admin"`
	//restdoc:ignore
	Revision int
	internal string
}

// DisplayName is the name shown in listings.
//
//restdoc:property
func (p Pet) DisplayName() string { return p.Name }

// Clone is a plain method and not a property.
func (p Pet) Clone() Pet { return p }

// Page is one page of results.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// Pets manages the pet inventory.
//
//restdoc:path /pets
//restdoc:roles admin
type Pets struct{}

// List returns all pets. Results are ordered by name.
//
// @HTTP 200 OK
// @HTTP 500 Storage failure
// @param status only pets in this state
//
//restdoc:get
//restdoc:permitall
//restdoc:param status query
//restdoc:param limit query max
func (Pets) List(ctx context.Context, status Status, limit int) ([]Pet, error) {
	return nil, nil
}

// Get returns one pet.
//
// @HTTP 404 Pet not found
//
//restdoc:get
//restdoc:path /{id}
//restdoc:param id path
func (Pets) Get(ctx context.Context, id int64) (*Pet, error) {
	return nil, nil
}

// Create adds a pet to the store.
//
// @param pet the pet to add
//
//restdoc:post
func (Pets) Create(w http.ResponseWriter, r *http.Request, pet Pet) error {
	return nil
}

// Upload attaches a photo.
//
//restdoc:post
//restdoc:path /{id}/photo
//restdoc:param id path
//restdoc:param photo form
//restdoc:param meta form photo
func (Pets) Upload(id int64, photo []byte, meta textproto.MIMEHeader) error {
	return nil
}

// Search pages through pets.
//
//restdoc:get
//restdoc:path /search
//restdoc:param term query q
func (Pets) Search(term string) (Page[Pet], error) {
	return Page[Pet]{}, nil
}

// Reset is not an endpoint.
func (Pets) Reset() {}

func (Pets) helper() {}

// Health has no path directive and is not a resource.
type Health struct{}

// Check reports liveness.
//
//restdoc:get
func (Health) Check() string { return "ok" }

// Limit caps a page size.
type Limit int

const MaxLimit Limit = 100

// Mode selects how a job runs.
//
//restdoc:enum
type Mode string

const ModeBatch Mode = "batch"

// Job is a scheduled task.
type Job struct {
	sync.Mutex
	Entity
	Timeout time.Duration `json:"timeout"`
	Limit   Limit         `json:"limit"`
	Mode    Mode          `json:"mode"`
}
