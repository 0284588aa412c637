package validation

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/registry"
	"github.com/goliatone/go-calckit/pkg/visibility/expr"
)

// Option configures a validation pass.
type Option func(*options)

type options struct {
	warnings     bool
	compileRule  func(string) (*expr.Program, error)
	strictInputs bool
}

// WithoutWarnings drops missing meta/content warnings from the report.
func WithoutWarnings() Option {
	return func(o *options) { o.warnings = false }
}

// WithLooseConditions accepts visibleIf rules that reference identifiers not
// declared as inputs. By default such rules are reported.
func WithLooseConditions() Option {
	return func(o *options) { o.strictInputs = false }
}

// ValidateRegistry validates the full source of reg, duplicates included.
func ValidateRegistry(reg *registry.Registry, opts ...Option) Report {
	return Validate(reg.Source(), opts...)
}

// Validate checks every entry of source.
func Validate(source []registry.Entry, opts ...Option) Report {
	cfg := options{warnings: true, compileRule: expr.Compile, strictInputs: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	report := Report{Stats: Stats{PerCategory: map[model.Category]int{}}}
	positions := map[string][]int{}
	var order []string

	for idx, entry := range source {
		def := entry.Definition
		report.Stats.Total++

		if _, seen := positions[def.ID]; !seen {
			order = append(order, def.ID)
			report.Stats.PerCategory[def.Category]++
		}
		positions[def.ID] = append(positions[def.ID], idx)

		if entry.Key != def.ID {
			report.add(Issue{
				Code:    CodeKeyIDMismatch,
				ID:      def.ID,
				Index:   idx,
				Message: fmt.Sprintf("stored under key %q but declares id %q", entry.Key, def.ID),
			})
		}
		checkDefinition(&report, cfg, idx, def)
	}

	for _, id := range order {
		indexes := positions[id]
		if len(indexes) < 2 {
			continue
		}
		report.Stats.Duplicates = append(report.Stats.Duplicates, Duplicate{ID: id, Indexes: indexes})
		for _, idx := range indexes[1:] {
			report.add(Issue{
				Code:    CodeDuplicateID,
				ID:      id,
				Index:   idx,
				Message: fmt.Sprintf("id declared %d times at positions %s; position %d is canonical", len(indexes), joinInts(indexes), indexes[0]),
			})
		}
	}
	report.Stats.Unique = len(order)
	return report
}

func checkDefinition(report *Report, cfg options, idx int, def model.Definition) {
	issue := func(code, path, format string, args ...any) {
		report.add(Issue{Code: code, ID: def.ID, Index: idx, Path: path, Message: fmt.Sprintf(format, args...)})
	}
	warn := func(code, format string, args ...any) {
		if cfg.warnings {
			report.add(Issue{Severity: SeverityWarning, Code: code, ID: def.ID, Index: idx, Message: fmt.Sprintf(format, args...)})
		}
	}

	switch {
	case def.ID == "":
		issue(CodeMissingField, "id", "id is required")
	case !model.IsKebabCase(def.ID):
		issue(CodeInvalidID, "id", "id %q is not kebab-case", def.ID)
	}
	if strings.TrimSpace(def.Title) == "" {
		issue(CodeMissingField, "title", "title is required")
	}
	if strings.TrimSpace(def.Description) == "" {
		issue(CodeMissingField, "description", "description is required")
	}
	if def.Category == "" {
		issue(CodeMissingField, "category", "category is required")
	} else if !def.Category.Valid() {
		issue(CodeInvalidCategory, "category", "unknown category %q", def.Category)
	}

	if len(def.Inputs) == 0 {
		issue(CodeMissingField, "inputs", "at least one input is required")
	}
	if len(def.Outputs) == 0 {
		issue(CodeMissingField, "outputs", "at least one output is required")
	}

	inputIDs := map[string]bool{}
	for i, input := range def.Inputs {
		path := fmt.Sprintf("inputs[%d]", i)
		if input.ID == "" {
			issue(CodeMissingField, path+".id", "input id is required")
		} else if inputIDs[input.ID] {
			issue(CodeDuplicateInputID, path+".id", "input id %q is declared more than once", input.ID)
		}
		inputIDs[input.ID] = true
		if strings.TrimSpace(input.Label) == "" {
			issue(CodeMissingField, path+".label", "input label is required")
		}
		if !input.Type.Valid() {
			issue(CodeInvalidInputType, path+".type", "unknown input type %q", input.Type)
		}
		if input.Type == model.InputTypeSelect && len(input.Options) == 0 {
			issue(CodeMissingOptions, path+".options", "select input %q needs at least one option", input.ID)
		}
		if input.Min != nil && input.Max != nil && *input.Min > *input.Max {
			issue(CodeInvalidRange, path, "min %v is greater than max %v", *input.Min, *input.Max)
		}
		if input.Step != nil && *input.Step <= 0 {
			issue(CodeInvalidRange, path+".step", "step must be positive, got %v", *input.Step)
		}
	}

	for i, input := range def.Inputs {
		if input.VisibleIf == "" {
			continue
		}
		path := fmt.Sprintf("inputs[%d].visibleIf", i)
		prog, err := cfg.compileRule(input.VisibleIf)
		if err != nil {
			issue(CodeInvalidCondition, path, "%v", err)
			continue
		}
		if !cfg.strictInputs {
			continue
		}
		for _, name := range prog.Identifiers() {
			if strings.HasPrefix(name, "extras.") || inputIDs[name] {
				continue
			}
			issue(CodeInvalidCondition, path, "rule references unknown input %q", name)
		}
	}

	outputKeys := map[string]bool{}
	for i, output := range def.Outputs {
		path := fmt.Sprintf("outputs[%d]", i)
		if strings.TrimSpace(output.Label) == "" {
			issue(CodeMissingField, path+".label", "output label is required")
		}
		if output.Calculate == nil {
			issue(CodeMissingField, path+".calculate", "output %q has no calculate function", output.Label)
		}
		if key := output.Key(); key != "" {
			if outputKeys[key] {
				issue(CodeDuplicateOutputID, path+".id", "output key %q is declared more than once", key)
			}
			outputKeys[key] = true
		}
	}

	if def.Meta == nil {
		warn(CodeMissingMeta, "no SEO meta block")
	}
	if def.Content.Empty() {
		warn(CodeMissingContent, "no explanatory content or FAQ")
	}
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
