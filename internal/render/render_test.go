package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/kolah/restdoc/internal/model"
)

func testDocument() *model.Document {
	pet := model.NewSchema("Pet")
	pet.Properties.Set("name", model.Property{Type: "string", Description: "Name of the pet."})
	pet.Properties.Set("tags", model.Property{Type: "List", ContainerOf: "string"})
	pet.Properties.Set("status", model.Property{Enum: []string{"available", "sold"}})
	pet.Properties.Set("id", model.Property{Type: "int64", Description: "Line one\nVIEWS: Admin"})

	return &model.Document{
		Resources: []model.Resource{{
			Name:        "Pets",
			Path:        "/pets",
			Description: "Pets manages the pet inventory.",
			Endpoints: []model.Endpoint{{
				Method:      model.MethodGet,
				Name:        "List",
				Path:        "/pets",
				Summary:     "List returns all pets. Auth is required: No",
				Description: "ROLES: Any",
				ReturnType:  "List[Pet]",
				Parameters: []model.Parameter{
					{Kind: model.KindQuery, Name: "status", Type: "Status", Description: "only pets in this state"},
				},
				Responses: []model.Response{{Code: 200, Message: "OK"}, {Code: 500, Message: "Storage | failure"}},
			}, {
				Method:      model.MethodPost,
				Name:        "Create",
				Path:        "/pets",
				Summary:     "Auth is required: Yes",
				Description: "ROLES: admin",
			}},
		}},
		Models: []model.Schema{pet},
	}
}

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New("")
	require.NoError(t, err)
	return r
}

func mappingKeys(n *yaml.Node) []string {
	var keys []string
	for i := 0; i < len(n.Content); i += 2 {
		keys = append(keys, n.Content[i].Value)
	}
	return keys
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"yaml", FormatYAML, false},
		{"JSON", FormatJSON, false},
		{"markdown", FormatMarkdown, false},
		{"", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, f)
		})
	}
}

func TestFormatExtension(t *testing.T) {
	require.Equal(t, ".yaml", FormatYAML.Extension())
	require.Equal(t, ".json", FormatJSON.Extension())
	require.Equal(t, ".md", FormatMarkdown.Extension())
}

func TestDocumentYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).Document(&buf, FormatYAML, testDocument()))

	var root yaml.Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &root))
	doc := root.Content[0]
	require.Equal(t, []string{"resources", "models"}, mappingKeys(doc))

	resource := mappingValue(doc, "resources").Content[0]
	require.Equal(t, []string{"name", "path", "description", "endpoints"}, mappingKeys(resource))

	endpoints := mappingValue(resource, "endpoints").Content
	require.Len(t, endpoints, 2)
	require.Equal(t, []string{
		"method", "name", "path", "summary", "description", "returnType", "parameters", "responses",
	}, mappingKeys(endpoints[0]))
	require.Equal(t, []string{"method", "name", "path", "summary", "description"}, mappingKeys(endpoints[1]))

	code := mappingValue(mappingValue(endpoints[0], "responses").Content[0], "code")
	require.Equal(t, "200", code.Value)
	require.Equal(t, "!!int", code.ShortTag())

	pet := mappingValue(mappingValue(doc, "models"), "Pet")
	props := mappingValue(pet, "properties")
	require.Equal(t, []string{"name", "tags", "status", "id"}, mappingKeys(props))
	require.Equal(t, []string{"type", "containerOf"}, mappingKeys(mappingValue(props, "tags")))
	require.Equal(t, []string{"enum"}, mappingKeys(mappingValue(props, "status")))
	require.Equal(t, "Line one\nVIEWS: Admin", mappingValue(mappingValue(props, "id"), "description").Value)
}

func TestDocumentJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).Document(&buf, FormatJSON, testDocument()))
	out := buf.String()

	var decoded struct {
		Resources []struct {
			Name      string
			Endpoints []struct {
				Method     string
				ReturnType string
				Parameters []map[string]string
				Responses  []struct {
					Code    int
					Message string
				}
			}
		}
		Models map[string]struct {
			Properties map[string]struct {
				Type        string
				ContainerOf string
				Enum        []string
			}
		}
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	ep := decoded.Resources[0].Endpoints[0]
	require.Equal(t, "GET", ep.Method)
	require.Equal(t, "List[Pet]", ep.ReturnType)
	require.Equal(t, "query", ep.Parameters[0]["kind"])
	require.Equal(t, 500, ep.Responses[1].Code)
	require.Equal(t, "Storage | failure", ep.Responses[1].Message)
	require.Empty(t, decoded.Resources[0].Endpoints[1].Parameters)

	props := decoded.Models["Pet"].Properties
	require.Equal(t, "string", props["tags"].ContainerOf)
	require.Equal(t, []string{"available", "sold"}, props["status"].Enum)

	// Property order follows the schema, not key order.
	models := out[strings.Index(out, `"models"`):]
	require.Less(t, strings.Index(models, `"name"`), strings.Index(models, `"tags"`))
	require.Less(t, strings.Index(models, `"tags"`), strings.Index(models, `"status"`))
	require.Less(t, strings.Index(models, `"status"`), strings.Index(models, `"id"`))
	require.True(t, strings.HasSuffix(out, "}\n"))
}

func TestSchemasJSONKeepsOrder(t *testing.T) {
	zoo := model.NewSchema("Zoo")
	zoo.Properties.Set("zeta", model.Property{Type: "string"})
	zoo.Properties.Set("alpha", model.Property{Type: "List", ContainerOf: "Animal", Description: "Cage occupants"})
	animal := model.NewSchema("Animal")
	animal.Properties.Set("kind", model.Property{Enum: []string{"cat", "dog"}})

	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).Schemas(&buf, FormatJSON, []model.Schema{zoo, animal}))
	out := buf.String()

	require.Less(t, strings.Index(out, `"Zoo": {`), strings.Index(out, `"Animal": {`))
	require.Less(t, strings.Index(out, `"zeta"`), strings.Index(out, `"alpha"`))
	require.NotContains(t, out, `"enum": null`)

	var decoded struct {
		Models map[string]struct {
			Properties map[string]map[string]any
		}
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, map[string]any{"type": "List", "containerOf": "Animal", "description": "Cage occupants"},
		decoded.Models["Zoo"].Properties["alpha"])
	require.Equal(t, []any{"cat", "dog"}, decoded.Models["Animal"].Properties["kind"]["enum"])
}

func TestDocumentMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).Document(&buf, FormatMarkdown, testDocument()))
	out := buf.String()

	require.Contains(t, out, "# API Reference")
	require.Contains(t, out, "## Pets\n")
	require.Contains(t, out, "### `GET /pets`")
	require.Contains(t, out, "### `POST /pets`")
	require.Contains(t, out, "| status | query | `Status` | only pets in this state |")
	require.Contains(t, out, "| 500 | Storage \\| failure |")
	require.Contains(t, out, "Returns `List[Pet]`.")
	require.Contains(t, out, "## Models")
	require.Contains(t, out, "| tags | List[string] |  |")
	require.Contains(t, out, "| status | enum(available, sold) |  |")
	require.Contains(t, out, "| id | int64 | Line one<br>VIEWS: Admin |")
}

func TestSchemas(t *testing.T) {
	schemas := testDocument().Models

	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).Schemas(&buf, FormatYAML, schemas))

	var root yaml.Node
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &root))
	require.Equal(t, []string{"models"}, mappingKeys(root.Content[0]))
	require.Equal(t, []string{"Pet"}, mappingKeys(mappingValue(root.Content[0], "models")))

	buf.Reset()
	require.NoError(t, newRenderer(t).Schemas(&buf, FormatMarkdown, schemas))
	require.Contains(t, buf.String(), "### Pet")
	require.NotContains(t, buf.String(), "# API Reference")
}

func TestPropertyType(t *testing.T) {
	require.Equal(t, "string", PropertyType(model.Property{Type: "string"}))
	require.Equal(t, "Map[Owner]", PropertyType(model.Property{Type: "Map", ContainerOf: "Owner"}))
	require.Equal(t, "enum()", PropertyType(model.Property{Enum: []string{}}))
}
