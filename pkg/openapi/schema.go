package openapi

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-calckit/pkg/model"
)

const (
	timePattern = `^([01]\d|2[0-3]):[0-5]\d$`

	// ExtensionCategory carries the calculator category on operations.
	ExtensionCategory = "x-calckit-category"
	// ExtensionVisibleIf carries an input's visibility rule on its property.
	ExtensionVisibleIf = "x-calckit-visible-if"
	// ExtensionUnit carries the unit of an input or output.
	ExtensionUnit = "x-calckit-unit"
)

// SchemaName returns the component name of the request schema of calculator
// id, for example "SquareAreaInput" for "square-area".
func SchemaName(id string) string {
	var b strings.Builder
	for _, part := range strings.Split(id, "-") {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	b.WriteString("Input")
	return b.String()
}

// InputSchema builds the request schema of def: one property per input,
// with bounds, options and defaults carried over.
func InputSchema(def model.Definition) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Title = def.Title
	schema.Description = def.Description
	for _, input := range def.Inputs {
		schema.WithProperty(input.ID, inputProperty(input))
	}
	return schema
}

func inputProperty(input model.InputField) *openapi3.Schema {
	var prop *openapi3.Schema
	switch input.Type {
	case model.InputTypeNumber:
		prop = openapi3.NewFloat64Schema()
		if input.Min != nil {
			prop.WithMin(*input.Min)
		}
		if input.Max != nil {
			prop.WithMax(*input.Max)
		}
	case model.InputTypeCheckbox:
		prop = openapi3.NewBoolSchema()
	case model.InputTypeSelect:
		values := make([]any, 0, len(input.Options))
		for _, opt := range input.Options {
			values = append(values, opt.Value)
		}
		prop = openapi3.NewStringSchema().WithEnum(values...)
	case model.InputTypeDate:
		prop = openapi3.NewStringSchema().WithFormat("date")
	case model.InputTypeTime:
		prop = openapi3.NewStringSchema().WithPattern(timePattern)
	default:
		prop = openapi3.NewStringSchema()
	}

	prop.Title = input.Label
	prop.Description = input.HelpText
	if !input.Default.IsEmpty() {
		prop.Default = input.Default.Interface()
	}
	extensions := map[string]any{}
	if input.Unit != "" {
		extensions[ExtensionUnit] = input.Unit
	}
	if input.VisibleIf != "" {
		extensions[ExtensionVisibleIf] = input.VisibleIf
	}
	if len(extensions) > 0 {
		prop.Extensions = extensions
	}
	return prop
}

func resultSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("status", openapi3.NewStringSchema().WithEnum("pending", "valid", "invalid")).
		WithProperty("value", &openapi3.Schema{
			OneOf: openapi3.SchemaRefs{
				openapi3.NewSchemaRef("", openapi3.NewFloat64Schema()),
				openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
				openapi3.NewSchemaRef("", openapi3.NewBoolSchema()),
			},
		}).
		WithProperty("message", openapi3.NewStringSchema())
	schema.Required = []string{"status", "value"}
	return schema
}

func outputSchema(result *openapi3.SchemaRef) *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("display", openapi3.NewStringSchema()).
		WithProperty("unit", openapi3.NewStringSchema()).
		WithPropertyRef("result", result)
	schema.Required = []string{"id", "result"}
	return schema
}

func evaluationSchema(output *openapi3.SchemaRef) *openapi3.Schema {
	errorItem := openapi3.NewObjectSchema().WithProperty("message", openapi3.NewStringSchema())
	outputs := openapi3.NewArraySchema()
	outputs.Items = output
	schema := openapi3.NewObjectSchema().
		WithProperty("calculator", openapi3.NewStringSchema()).
		WithProperty("locale", openapi3.NewStringSchema()).
		WithProperty("visible", openapi3.NewObjectSchema().WithAdditionalProperties(openapi3.NewBoolSchema())).
		WithProperty("errors", openapi3.NewObjectSchema().WithAdditionalProperties(errorItem)).
		WithProperty("outputs", outputs)
	schema.Required = []string{"calculator", "outputs"}
	return schema
}

func summarySchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("title", openapi3.NewStringSchema()).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("category", openapi3.NewStringSchema().WithEnum(categoryValues()...)).
		WithProperty("url", openapi3.NewStringSchema())
	schema.Required = []string{"id", "title", "category"}
	return schema
}

func errorSchema() *openapi3.Schema {
	schema := openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("request_id", openapi3.NewStringSchema())
	schema.Required = []string{"error"}
	return schema
}

func categoryValues() []any {
	out := make([]any, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		out = append(out, string(c))
	}
	return out
}
