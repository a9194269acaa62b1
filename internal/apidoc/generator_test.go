package apidoc

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kolah/restdoc/internal/config"
	"github.com/kolah/restdoc/internal/decl"
	"github.com/kolah/restdoc/internal/decl/decltest"
	"github.com/kolah/restdoc/internal/loader"
	"github.com/kolah/restdoc/internal/model"
)

const pkg = "example.com/shop"

var str = decltest.Primitive("string")

func testConfig() *config.Config {
	return &config.Config{
		ParseModels:    true,
		ResponseTags:   []string{"HTTP"},
		ExcludeMarkers: []string{decl.MarkerInject, decl.MarkerIgnore},
		ShadowType:     "net/textproto.MIMEHeader",
		Naming:         config.NamingConfig{Convention: "camel"},
		Output:         config.OutputConfig{Format: "yaml"},
		Concurrency:    4,
	}
}

func newGenerator(t *testing.T, cfg *config.Config) *Generator {
	t.Helper()
	gen, err := New(cfg, nil)
	require.NoError(t, err)
	return gen
}

func modelIDs(schemas []model.Schema) []string {
	var ids []string
	for _, s := range schemas {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestNewRejectsUnknownConvention(t *testing.T) {
	cfg := testConfig()
	cfg.Naming.Convention = "pascal"
	_, err := New(cfg, nil)
	require.Error(t, err)
}

func TestGenerateMergesInDeclarationOrder(t *testing.T) {
	legacy := decltest.Struct("example.com/legacy", "Item", decltest.NewField("Code", str))
	item := decltest.Struct(pkg, "Item", decltest.NewField("Name", str))
	order := decltest.Struct(pkg, "Order", decltest.NewField("Item", item))

	var ops []*decltest.Operation
	for i := 0; i < 20; i++ {
		ops = append(ops, &decltest.Operation{
			OpName:  fmt.Sprintf("Op%d", i),
			Marks:   decl.Markers{{Name: decl.MarkerGet}, {Name: decl.MarkerPath, Value: fmt.Sprintf("/%d", i)}},
			Returns: legacy,
		})
	}
	// The first operation reaches the shop Item through Order.
	ops[0].Returns = order

	resources := []decl.Resource{
		&decltest.Resource{ResName: "Orders", Base: "/orders", Ops: ops},
	}

	for run := 0; run < 5; run++ {
		doc, err := newGenerator(t, testConfig()).Generate(context.Background(), resources)
		require.NoError(t, err)
		require.Equal(t, []string{"Order", "Item"}, modelIDs(doc.Models))
		require.Equal(t, []string{"name"}, doc.ModelByID("Item").PropertyNames())
		require.Len(t, doc.Resources[0].Endpoints, 20)
		require.Equal(t, "/orders/0", doc.Resources[0].Endpoints[0].Path)
		require.Equal(t, "/orders/19", doc.Resources[0].Endpoints[19].Path)
	}
}

func TestGenerateSkipsOperationsWithoutVerb(t *testing.T) {
	resources := []decl.Resource{
		&decltest.Resource{
			ResName: "Pets",
			Base:    "/pets",
			Doc:     "Pet inventory.",
			Ops: []*decltest.Operation{
				{OpName: "List", Marks: decl.Markers{{Name: decl.MarkerGet}}},
				{OpName: "helper"},
			},
		},
		&decltest.Resource{
			ResName: "Internal",
			Base:    "/internal",
			Ops:     []*decltest.Operation{{OpName: "Reset"}},
		},
	}

	doc, err := newGenerator(t, testConfig()).Generate(context.Background(), resources)
	require.NoError(t, err)
	require.Len(t, doc.Resources, 1)
	require.Equal(t, "Pets", doc.Resources[0].Name)
	require.Equal(t, "Pet inventory.", doc.Resources[0].Description)
	require.Len(t, doc.Endpoints(), 1)
}

func TestGenerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resources := []decl.Resource{
		&decltest.Resource{
			ResName: "Pets",
			Ops:     []*decltest.Operation{{OpName: "List", Marks: decl.Markers{{Name: decl.MarkerGet}}}},
		},
	}

	_, err := newGenerator(t, testConfig()).Generate(ctx, resources)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGenerateWithoutModels(t *testing.T) {
	pet := decltest.Struct(pkg, "Pet", decltest.NewField("Name", str))
	cfg := testConfig()
	cfg.ParseModels = false

	resources := []decl.Resource{
		&decltest.Resource{
			ResName: "Pets",
			Ops:     []*decltest.Operation{{OpName: "Get", Marks: decl.Markers{{Name: decl.MarkerGet}}, Returns: pet}},
		},
	}

	doc, err := newGenerator(t, cfg).Generate(context.Background(), resources)
	require.NoError(t, err)
	require.Empty(t, doc.Models)
	require.Equal(t, "Pet", doc.Endpoints()[0].ReturnType)
}

func TestSchemas(t *testing.T) {
	money := decltest.Struct(pkg, "Money", decltest.NewField("Cents", str))
	invoice := decltest.Struct(pkg, "Invoice", decltest.NewField("Total", money))

	cfg := testConfig()
	cfg.OpaqueTypes = []string{pkg + ".Money"}

	schemas := newGenerator(t, cfg).Schemas(invoice)
	require.Equal(t, []string{"Invoice"}, modelIDs(schemas))
}

func TestGeneratePetstore(t *testing.T) {
	result, err := loader.Load(context.Background(), loader.Options{
		Patterns: []string{"github.com/kolah/restdoc/internal/loader/testdata/petstore"},
	})
	require.NoError(t, err)

	doc, err := newGenerator(t, testConfig()).Generate(context.Background(), result.Resources)
	require.NoError(t, err)

	require.Len(t, doc.Resources, 1)
	endpoints := doc.Resources[0].Endpoints

	var names []string
	for _, ep := range endpoints {
		names = append(names, ep.Name)
	}
	require.Equal(t, []string{"List", "Get", "Create", "Upload", "Search"}, names)

	list := endpoints[0]
	require.Equal(t, model.MethodGet, list.Method)
	require.Equal(t, "/pets", list.Path)
	require.Equal(t, "List[Pet]", list.ReturnType)
	require.Equal(t, "List returns all pets. Auth is required: No", list.Summary)
	require.Equal(t, "Results are ordered by name.\nROLES: Any", list.Description)
	require.Equal(t, []model.Parameter{
		{Kind: model.KindQuery, Name: "status", Description: "only pets in this state", Type: "Status"},
		{Kind: model.KindQuery, Name: "max", Type: "int"},
	}, list.Parameters)
	require.Equal(t, []model.Response{
		{Code: 200, Message: "OK"},
		{Code: 500, Message: "Storage failure"},
	}, list.Responses)

	get := endpoints[1]
	require.Equal(t, "/pets/{id}", get.Path)
	require.Equal(t, "Pet", get.ReturnType)
	require.Equal(t, "Get returns one pet. Auth is required: Yes", get.Summary)
	require.Equal(t, "ROLES: admin", get.Description)
	require.Equal(t, []model.Response{{Code: 404, Message: "Pet not found"}}, get.Responses)

	create := endpoints[2]
	require.Equal(t, model.MethodPost, create.Method)
	require.Equal(t, []model.Parameter{
		{Kind: model.KindBody, Name: "pet", Description: "the pet to add", Type: "Pet"},
	}, create.Parameters)
	require.Empty(t, create.ReturnType)

	upload := endpoints[3]
	require.Equal(t, "/pets/{id}/photo", upload.Path)
	require.Equal(t, []model.Parameter{
		{Kind: model.KindPath, Name: "id", Type: "int64"},
		{Kind: model.KindForm, Name: "photo", Type: "[]byte"},
	}, upload.Parameters)

	search := endpoints[4]
	require.Equal(t, "Page", search.ReturnType)
	require.Equal(t, []model.Parameter{{Kind: model.KindQuery, Name: "q", Type: "string"}}, search.Parameters)

	require.Equal(t, []string{"Pet", "Category", "Owner", "Page"}, modelIDs(doc.Models))

	pet := doc.ModelByID("Pet")
	require.Equal(t, []string{
		"name", "status", "size", "tags", "category", "owners", "secret", "displayName", "id", "created",
	}, pet.PropertyNames())

	status, _ := pet.Property("status")
	require.Equal(t, []string{"available", "pending", "sold"}, status.Enum)

	tags, _ := pet.Property("tags")
	require.Equal(t, "List", tags.Type)
	require.Equal(t, "string", tags.ContainerOf)

	owners, _ := pet.Property("owners")
	require.Equal(t, "Map", owners.Type)
	require.Equal(t, "Owner", owners.ContainerOf)

	secret, _ := pet.Property("secret")
	require.Equal(t, "Secret is only shown to staff.\nVIEWS: Admin", secret.Description)

	display, _ := pet.Property("displayName")
	require.Equal(t, "DisplayName is the name shown in listings.", display.Description)

	id, _ := pet.Property("id")
	require.Equal(t, "ID is the record identifier.", id.Description)

	created, _ := pet.Property("created")
	require.Equal(t, "Time", created.Type)

	page := doc.ModelByID("Page")
	items, _ := page.Property("items")
	require.Equal(t, "Pet", items.ContainerOf)
}
