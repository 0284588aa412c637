package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/registry"
	"github.com/goliatone/go-calckit/pkg/validation"
)

func validDefinition(id string) model.Definition {
	return model.Definition{
		ID:          id,
		Title:       "Title " + id,
		Description: "Description " + id,
		Category:    model.CategoryMath,
		Inputs: []model.InputField{
			{ID: "x", Label: "X", Type: model.InputTypeNumber},
		},
		Outputs: []model.OutputField{
			{Label: "Result", Calculate: func(model.Values, model.Results) model.Result { return model.Num(1) }},
		},
		Meta:    &model.Meta{Title: "meta"},
		Content: &model.Content{FAQ: []model.FAQ{{Question: "q", Answer: "a"}}},
	}
}

func codes(issues []validation.Issue) []string {
	var out []string
	for _, issue := range issues {
		out = append(out, issue.Code)
	}
	return out
}

func TestValidateCleanCatalog(t *testing.T) {
	reg := registry.FromDefinitions(validDefinition("a"), validDefinition("b"))
	report := validation.ValidateRegistry(reg)
	if !report.OK() {
		t.Fatalf("expected clean report, got %v", report.Errors)
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", report.Warnings)
	}
	if report.Stats.Total != 2 || report.Stats.Unique != 2 || report.Stats.PerCategory[model.CategoryMath] != 2 {
		t.Fatalf("unexpected stats %+v", report.Stats)
	}
}

func TestValidateDuplicateIDs(t *testing.T) {
	first := validDefinition("foo")
	first.Title = "First"
	second := validDefinition("foo")
	second.Title = "Second"

	reg := registry.New(
		registry.Entry{Key: "foo", Definition: first},
		registry.Entry{Key: "bar", Definition: validDefinition("bar")},
		registry.Entry{Key: "foo", Definition: second},
	)
	report := validation.ValidateRegistry(reg)

	if report.OK() {
		t.Fatalf("expected duplicate id to fail validation")
	}
	want := []validation.Duplicate{{ID: "foo", Indexes: []int{0, 2}}}
	if diff := cmp.Diff(want, report.Stats.Duplicates); diff != "" {
		t.Fatalf("duplicates mismatch (-want +got):\n%s", diff)
	}
	if report.Stats.Duplicates[0].Canonical() != 0 {
		t.Fatalf("expected first occurrence to be canonical")
	}
	if diff := cmp.Diff([]string{validation.CodeDuplicateID}, codes(report.Errors)); diff != "" {
		t.Fatalf("error codes mismatch (-want +got):\n%s", diff)
	}
	if report.Errors[0].Index != 2 {
		t.Fatalf("expected the later occurrence to be flagged, got index %d", report.Errors[0].Index)
	}
	canonical, _ := reg.Get("foo")
	if canonical.Title != "First" {
		t.Fatalf("expected lookup to return the canonical entry, got %q", canonical.Title)
	}
	if report.Stats.Total != 3 || report.Stats.Unique != 2 {
		t.Fatalf("unexpected stats %+v", report.Stats)
	}
}

func TestValidateReportsEverything(t *testing.T) {
	broken := model.Definition{
		ID:       "Bad_ID",
		Category: model.Category("astrology"),
		Inputs: []model.InputField{
			{ID: "a", Label: "A", Type: model.InputTypeNumber, Min: model.Float(10), Max: model.Float(1)},
			{ID: "a", Type: "slider"},
			{ID: "", Label: "Pick", Type: model.InputTypeSelect},
			{ID: "b", Label: "B", Type: model.InputTypeText, VisibleIf: "a = 1"},
			{ID: "c", Label: "C", Type: model.InputTypeText, VisibleIf: `ghost == "x"`},
		},
		Outputs: []model.OutputField{
			{ID: "out", Label: "Out"},
			{ID: "out", Label: "", Calculate: func(model.Values, model.Results) model.Result { return model.Pending() }},
		},
	}
	report := validation.Validate([]registry.Entry{{Key: "other", Definition: broken}})

	want := []string{
		validation.CodeKeyIDMismatch,
		validation.CodeInvalidID,
		validation.CodeMissingField, // title
		validation.CodeMissingField, // description
		validation.CodeInvalidCategory,
		validation.CodeInvalidRange,
		validation.CodeDuplicateInputID,
		validation.CodeMissingField, // inputs[1].label
		validation.CodeInvalidInputType,
		validation.CodeMissingField, // inputs[2].id
		validation.CodeMissingOptions,
		validation.CodeInvalidCondition,
		validation.CodeInvalidCondition,
		validation.CodeMissingField, // outputs[0].calculate
		validation.CodeMissingField, // outputs[1].label
		validation.CodeDuplicateOutputID,
	}
	if diff := cmp.Diff(want, codes(report.Errors)); diff != "" {
		t.Fatalf("error codes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{validation.CodeMissingMeta, validation.CodeMissingContent}, codes(report.Warnings)); diff != "" {
		t.Fatalf("warning codes mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateOptions(t *testing.T) {
	def := validDefinition("loose")
	def.Meta = nil
	def.Content = nil
	def.Inputs = append(def.Inputs, model.InputField{ID: "y", Label: "Y", Type: model.InputTypeNumber, VisibleIf: "extras.locale == fr || mode"})

	strict := validation.Validate([]registry.Entry{{Key: "loose", Definition: def}}, validation.WithoutWarnings())
	if len(strict.Warnings) != 0 {
		t.Fatalf("expected warnings to be suppressed")
	}
	if diff := cmp.Diff([]string{validation.CodeInvalidCondition}, codes(strict.Errors)); diff != "" {
		t.Fatalf("strict codes mismatch (-want +got):\n%s", diff)
	}

	loose := validation.Validate([]registry.Entry{{Key: "loose", Definition: def}}, validation.WithoutWarnings(), validation.WithLooseConditions())
	if !loose.OK() {
		t.Fatalf("expected loose validation to pass, got %v", loose.Errors)
	}
}
