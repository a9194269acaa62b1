package render

import (
	"fmt"
	"io"
	"strconv"

	"go.yaml.in/yaml/v4"

	"github.com/kolah/restdoc/internal/model"
)

const (
	strTag = "!!str"
	intTag = "!!int"
)

// The YAML form is built as a node tree to keep declaration order.

func documentNode(doc *model.Document) *yaml.Node {
	resources := sequence()
	for _, r := range doc.Resources {
		resources.Content = append(resources.Content, resourceNode(r))
	}
	return mapping(
		pair("resources", resources),
		pair("models", modelsNode(doc.Models)),
	)
}

func resourceNode(r model.Resource) *yaml.Node {
	endpoints := sequence()
	for _, ep := range r.Endpoints {
		endpoints.Content = append(endpoints.Content, endpointNode(ep))
	}
	return mapping(
		pair("name", str(r.Name)),
		pair("path", str(r.Path)),
		optional("description", r.Description),
		pair("endpoints", endpoints),
	)
}

func endpointNode(ep model.Endpoint) *yaml.Node {
	var params, responses *yaml.Node
	if len(ep.Parameters) > 0 {
		params = sequence()
		for _, p := range ep.Parameters {
			params.Content = append(params.Content, mapping(
				pair("kind", str(string(p.Kind))),
				pair("name", str(p.Name)),
				pair("type", str(p.Type)),
				optional("description", p.Description),
			))
		}
	}
	if len(ep.Responses) > 0 {
		responses = sequence()
		for _, r := range ep.Responses {
			responses.Content = append(responses.Content, mapping(
				pair("code", integer(r.Code)),
				pair("message", str(r.Message)),
			))
		}
	}

	return mapping(
		pair("method", str(string(ep.Method))),
		pair("name", str(ep.Name)),
		pair("path", str(ep.Path)),
		optional("summary", ep.Summary),
		optional("description", ep.Description),
		optional("returnType", ep.ReturnType),
		pair("parameters", params),
		pair("responses", responses),
	)
}

func modelsNode(schemas []model.Schema) *yaml.Node {
	var pairs [][2]*yaml.Node
	for _, s := range schemas {
		pairs = append(pairs, pair(s.ID, mapping(pair("properties", propertiesNode(s)))))
	}
	return mapping(pairs...)
}

func propertiesNode(s model.Schema) *yaml.Node {
	var pairs [][2]*yaml.Node
	for _, np := range Properties(s) {
		p := np.Property
		var enum *yaml.Node
		if p.IsEnum() {
			enum = sequence()
			for _, v := range p.Enum {
				enum.Content = append(enum.Content, str(v))
			}
		}
		pairs = append(pairs, pair(np.Name, mapping(
			optional("type", p.Type),
			optional("containerOf", p.ContainerOf),
			pair("enum", enum),
			optional("description", p.Description),
		)))
	}
	return mapping(pairs...)
}

// pair returns a key/value entry. Entries with a nil value are dropped by
// mapping.
func pair(key string, value *yaml.Node) [2]*yaml.Node {
	return [2]*yaml.Node{str(key), value}
}

func optional(key, value string) [2]*yaml.Node {
	if value == "" {
		return pair(key, nil)
	}
	return pair(key, str(value))
}

func mapping(pairs ...[2]*yaml.Node) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range pairs {
		if p[1] == nil {
			continue
		}
		n.Content = append(n.Content, p[0], p[1])
	}
	return n
}

func sequence() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: v}
}

func integer(v int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: intTag, Value: strconv.Itoa(v)}
}

func encodeYAML(w io.Writer, n *yaml.Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
