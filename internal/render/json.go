package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pb33f/libopenapi/orderedmap"

	"github.com/kolah/restdoc/internal/model"
)

// JSON output mirrors the YAML layout. Models and properties are ordered
// maps so that declaration order survives marshaling.

type jsonDocument struct {
	Resources []jsonResource                     `json:"resources"`
	Models    *orderedmap.Map[string, jsonModel] `json:"models"`
}

type jsonModelList struct {
	Models *orderedmap.Map[string, jsonModel] `json:"models"`
}

type jsonResource struct {
	Name        string         `json:"name"`
	Path        string         `json:"path"`
	Description string         `json:"description,omitempty"`
	Endpoints   []jsonEndpoint `json:"endpoints"`
}

type jsonEndpoint struct {
	Method      model.Method    `json:"method"`
	Name        string          `json:"name"`
	Path        string          `json:"path"`
	Summary     string          `json:"summary,omitempty"`
	Description string          `json:"description,omitempty"`
	ReturnType  string          `json:"returnType,omitempty"`
	Parameters  []jsonParameter `json:"parameters,omitempty"`
	Responses   []jsonResponse  `json:"responses,omitempty"`
}

type jsonParameter struct {
	Kind        model.ParameterKind `json:"kind"`
	Name        string              `json:"name"`
	Type        string              `json:"type"`
	Description string              `json:"description,omitempty"`
}

type jsonResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type jsonModel struct {
	Properties *orderedmap.Map[string, jsonProperty] `json:"properties"`
}

type jsonProperty struct {
	Type        string   `json:"type,omitempty"`
	ContainerOf string   `json:"containerOf,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Description string   `json:"description,omitempty"`
}

func jsonDocumentOf(doc *model.Document) jsonDocument {
	out := jsonDocument{
		Resources: make([]jsonResource, 0, len(doc.Resources)),
		Models:    jsonModelsOf(doc.Models),
	}
	for _, r := range doc.Resources {
		res := jsonResource{
			Name:        r.Name,
			Path:        r.Path,
			Description: r.Description,
			Endpoints:   make([]jsonEndpoint, 0, len(r.Endpoints)),
		}
		for _, ep := range r.Endpoints {
			res.Endpoints = append(res.Endpoints, jsonEndpointOf(ep))
		}
		out.Resources = append(out.Resources, res)
	}
	return out
}

func jsonEndpointOf(ep model.Endpoint) jsonEndpoint {
	out := jsonEndpoint{
		Method:      ep.Method,
		Name:        ep.Name,
		Path:        ep.Path,
		Summary:     ep.Summary,
		Description: ep.Description,
		ReturnType:  ep.ReturnType,
	}
	for _, p := range ep.Parameters {
		out.Parameters = append(out.Parameters, jsonParameter{
			Kind:        p.Kind,
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
		})
	}
	for _, r := range ep.Responses {
		out.Responses = append(out.Responses, jsonResponse(r))
	}
	return out
}

func jsonModelsOf(schemas []model.Schema) *orderedmap.Map[string, jsonModel] {
	models := orderedmap.New[string, jsonModel]()
	for _, s := range schemas {
		props := orderedmap.New[string, jsonProperty]()
		for _, np := range Properties(s) {
			props.Set(np.Name, jsonProperty(np.Property))
		}
		models.Set(s.ID, jsonModel{Properties: props})
	}
	return models
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
