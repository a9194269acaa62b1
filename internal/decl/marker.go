package decl

import "strings"

// Marker names understood by the extractors.
const (
	MarkerGet     = "get"
	MarkerPost    = "post"
	MarkerPut     = "put"
	MarkerDelete  = "delete"
	MarkerHead    = "head"
	MarkerOptions = "options"
	MarkerPatch   = "patch"

	// MarkerPath is both the path segment of a resource or operation and the
	// path binding of a parameter.
	MarkerPath   = "path"
	MarkerQuery  = "query"
	MarkerHeader = "header"
	MarkerForm   = "form"

	MarkerRoles     = "roles"
	MarkerPermitAll = "permitall"
	MarkerView      = "view"

	MarkerProperty = "property"
	MarkerName     = "name"
	MarkerIgnore   = "ignore"
	MarkerInject   = "inject"
	MarkerJSON     = "json"

	// MarkerEnum declares a named basic type an enumeration even when it has
	// a single constant.
	MarkerEnum = "enum"
)

// Marker is a single metadata marker attached to a declaration.
type Marker struct {
	Name  string
	Value string
}

// Markers is an ordered marker set queried by name.
type Markers []Marker

// Has reports whether a marker with the given name is present.
func (m Markers) Has(name string) bool {
	for _, marker := range m {
		if marker.Name == name {
			return true
		}
	}
	return false
}

// Value returns the value of the first marker with the given name.
func (m Markers) Value(name string) (string, bool) {
	for _, marker := range m {
		if marker.Name == name {
			return marker.Value, true
		}
	}
	return "", false
}

// All returns the values of every marker with the given name.
func (m Markers) All(name string) []string {
	var values []string
	for _, marker := range m {
		if marker.Name == name {
			values = append(values, marker.Value)
		}
	}
	return values
}

// HasAny reports whether any of the named markers is present.
func (m Markers) HasAny(names ...string) bool {
	for _, name := range names {
		if m.Has(name) {
			return true
		}
	}
	return false
}

// List splits every value of the named marker on commas and returns the
// trimmed, non-empty items in order.
func (m Markers) List(name string) []string {
	var items []string
	for _, value := range m.All(name) {
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
	}
	return items
}
