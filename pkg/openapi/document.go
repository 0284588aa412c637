package openapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/registry"
)

// Version is the OpenAPI version emitted by Build.
const Version = "3.0.3"

// Component schema names shared by every calculator.
const (
	SchemaCalculator = "Calculator"
	SchemaEvaluation = "Evaluation"
	SchemaOutput     = "Output"
	SchemaResult     = "Result"
	SchemaError      = "Error"
)

// Option customises the generated document.
type Option func(*config)

type config struct {
	title       string
	version     string
	description string
	servers     []string
}

// WithTitle overrides the document title.
func WithTitle(title string) Option {
	return func(c *config) {
		if title != "" {
			c.title = title
		}
	}
}

// WithVersion sets info.version.
func WithVersion(version string) Option {
	return func(c *config) {
		if version != "" {
			c.version = version
		}
	}
}

// WithDescription sets info.description.
func WithDescription(description string) Option {
	return func(c *config) { c.description = description }
}

// WithServer appends a server URL.
func WithServer(url string) Option {
	return func(c *config) {
		if url != "" {
			c.servers = append(c.servers, url)
		}
	}
}

// Build describes the API serving reg. The document is validated before it
// is returned.
func Build(ctx context.Context, reg *registry.Registry, opts ...Option) (*openapi3.T, error) {
	if reg == nil {
		return nil, errors.New("openapi: registry is nil")
	}
	cfg := config{title: "calckit API", version: "1.0.0"}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:       cfg.title,
			Version:     cfg.version,
			Description: cfg.description,
		},
		Paths: openapi3.NewPaths(),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{},
		},
	}
	for _, url := range cfg.servers {
		doc.Servers = append(doc.Servers, &openapi3.Server{URL: url})
	}

	refs := addSharedSchemas(doc)
	addCatalogPaths(doc, refs)

	for _, category := range model.Categories() {
		doc.Tags = append(doc.Tags, &openapi3.Tag{Name: string(category), Description: category.Label()})
	}
	for _, def := range reg.List() {
		addEvaluatePath(doc, def, refs)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("openapi: validate document: %w", err)
	}
	return doc, nil
}

type sharedRefs struct {
	calculator *openapi3.SchemaRef
	evaluation *openapi3.SchemaRef
	err        *openapi3.SchemaRef
}

func componentRef(doc *openapi3.T, name string, schema *openapi3.Schema) *openapi3.SchemaRef {
	doc.Components.Schemas[name] = openapi3.NewSchemaRef("", schema)
	return openapi3.NewSchemaRef("#/components/schemas/"+name, schema)
}

func addSharedSchemas(doc *openapi3.T) sharedRefs {
	result := componentRef(doc, SchemaResult, resultSchema())
	output := componentRef(doc, SchemaOutput, outputSchema(result))
	return sharedRefs{
		calculator: componentRef(doc, SchemaCalculator, summarySchema()),
		evaluation: componentRef(doc, SchemaEvaluation, evaluationSchema(output)),
		err:        componentRef(doc, SchemaError, errorSchema()),
	}
}

func jsonResponse(description string, schema *openapi3.SchemaRef) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription(description).WithJSONSchemaRef(schema)}
}

func addCatalogPaths(doc *openapi3.T, refs sharedRefs) {
	list := openapi3.NewArraySchema()
	list.Items = refs.calculator
	listRef := openapi3.NewSchemaRef("", list)

	localeParam := openapi3.NewQueryParameter("locale").
		WithSchema(openapi3.NewStringSchema()).
		WithDescription("Locale used for titles, labels and number formatting.")

	doc.Paths.Set("/api/calculators", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "listCalculators",
			Summary:     "List every calculator in catalog order",
			Parameters:  openapi3.Parameters{{Value: localeParam}},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, jsonResponse("Calculators", listRef)),
			),
		},
	})

	doc.Paths.Set("/api/calculators/{id}", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "getCalculator",
			Summary:     "Fetch one calculator definition",
			Parameters: openapi3.Parameters{
				{Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema())},
				{Value: localeParam},
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, jsonResponse("Calculator definition", openapi3.NewSchemaRef("", openapi3.NewObjectSchema()))),
				openapi3.WithStatus(http.StatusNotFound, jsonResponse("Unknown calculator", refs.err)),
			),
		},
	})

	doc.Paths.Set("/api/search", &openapi3.PathItem{
		Get: &openapi3.Operation{
			OperationID: "searchCalculators",
			Summary:     "Search titles, descriptions, categories and keywords",
			Parameters: openapi3.Parameters{
				{Value: openapi3.NewQueryParameter("q").WithSchema(openapi3.NewStringSchema()).WithRequired(true)},
				{Value: openapi3.NewQueryParameter("limit").WithSchema(openapi3.NewIntegerSchema().WithMin(1))},
				{Value: localeParam},
			},
			Responses: openapi3.NewResponses(
				openapi3.WithStatus(http.StatusOK, jsonResponse("Best matches, at most five by default", listRef)),
			),
		},
	})
}

func addEvaluatePath(doc *openapi3.T, def model.Definition, refs sharedRefs) {
	name := SchemaName(def.ID)
	input := componentRef(doc, name, InputSchema(def))

	op := &openapi3.Operation{
		OperationID: "evaluate" + name[:len(name)-len("Input")],
		Summary:     def.Title,
		Description: def.Description,
		Tags:        []string{string(def.Category)},
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(input),
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(http.StatusOK, jsonResponse("Evaluation outcome", refs.evaluation)),
			openapi3.WithStatus(http.StatusBadRequest, jsonResponse("Malformed request body", refs.err)),
		),
	}
	op.Extensions = map[string]any{ExtensionCategory: string(def.Category)}
	doc.Paths.Set("/api/calculators/"+def.ID+"/evaluate", &openapi3.PathItem{Post: op})
}
