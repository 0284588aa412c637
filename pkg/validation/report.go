package validation

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-calckit/pkg/model"
)

// Severity distinguishes build-breaking issues from informational ones.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Stable issue codes.
const (
	CodeKeyIDMismatch     = "key_id_mismatch"
	CodeDuplicateID       = "duplicate_id"
	CodeInvalidID         = "invalid_id"
	CodeMissingField      = "missing_field"
	CodeInvalidCategory   = "invalid_category"
	CodeInvalidInputType  = "invalid_input_type"
	CodeDuplicateInputID  = "duplicate_input_id"
	CodeDuplicateOutputID = "duplicate_output_id"
	CodeMissingOptions    = "missing_options"
	CodeInvalidRange      = "invalid_range"
	CodeInvalidCondition  = "invalid_condition"
	CodeMissingMeta       = "missing_meta"
	CodeMissingContent    = "missing_content"
)

// Issue is a single finding. Index is the position of the offending entry in
// the registry source; Path points inside the definition (for example
// "inputs[1].label") and is empty for definition level issues.
type Issue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	ID       string   `json:"id"`
	Index    int      `json:"index"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	location := i.ID
	if location == "" {
		location = fmt.Sprintf("#%d", i.Index)
	}
	if i.Path != "" {
		location += "." + i.Path
	}
	return fmt.Sprintf("%s [%s] %s", location, i.Code, i.Message)
}

// Duplicate lists every source position claiming the same id. The first
// index is the canonical occurrence used for lookup.
type Duplicate struct {
	ID      string `json:"id"`
	Indexes []int  `json:"indexes"`
}

// Canonical returns the index of the occurrence that wins lookup.
func (d Duplicate) Canonical() int {
	if len(d.Indexes) == 0 {
		return -1
	}
	return d.Indexes[0]
}

// Stats aggregates the catalog shape.
type Stats struct {
	Total       int                    `json:"total"`
	Unique      int                    `json:"unique"`
	PerCategory map[model.Category]int `json:"perCategory"`
	Duplicates  []Duplicate            `json:"duplicates,omitempty"`
}

// Report is the outcome of a validation pass.
type Report struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
	Stats    Stats   `json:"stats"`
}

// OK reports whether the catalog is releasable.
func (r Report) OK() bool { return len(r.Errors) == 0 }

// Codes returns the distinct error and warning codes, sorted, for quick
// assertions and summaries.
func (r Report) Codes() []string {
	seen := map[string]bool{}
	for _, issue := range append(append([]Issue(nil), r.Errors...), r.Warnings...) {
		seen[issue.Code] = true
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ByCode groups issues of one severity by code for categorised output.
func ByCode(issues []Issue) map[string][]Issue {
	out := make(map[string][]Issue)
	for _, issue := range issues {
		out[issue.Code] = append(out[issue.Code], issue)
	}
	return out
}

func (r *Report) add(issue Issue) {
	if issue.Severity == SeverityWarning {
		r.Warnings = append(r.Warnings, issue)
		return
	}
	issue.Severity = SeverityError
	r.Errors = append(r.Errors, issue)
}
