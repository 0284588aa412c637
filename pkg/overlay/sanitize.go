package overlay

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-calckit/pkg/model"
)

var (
	policyOnce sync.Once
	bodyPolicy *bluemonday.Policy
	textPolicy *bluemonday.Policy
)

// SanitizeBody keeps the small set of formatting tags allowed in section
// bodies and FAQ answers.
func SanitizeBody(raw string) string {
	body, _ := policies()
	return strings.TrimSpace(body.Sanitize(strings.TrimSpace(raw)))
}

// SanitizeText strips all markup from single line strings. The result is
// plain text; entities are decoded because templates escape on output.
func SanitizeText(raw string) string {
	_, text := policies()
	return strings.TrimSpace(html.UnescapeString(text.Sanitize(strings.TrimSpace(raw))))
}

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	policyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("p", "br", "strong", "em", "b", "i", "ul", "ol", "li", "code", "sup", "sub", "blockquote")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		bodyPolicy = policy

		textPolicy = bluemonday.StrictPolicy()
	})
	return bodyPolicy, textPolicy
}

func sanitize(ov Overlay) Overlay {
	out := ov
	out.Title = SanitizeText(ov.Title)
	out.Description = SanitizeText(ov.Description)
	out.Keywords = sanitizeList(ov.Keywords)

	if ov.Meta != nil {
		out.Meta = &model.Meta{
			Title:       SanitizeText(ov.Meta.Title),
			Description: SanitizeText(ov.Meta.Description),
			Keywords:    sanitizeList(ov.Meta.Keywords),
		}
	}
	if ov.Content != nil {
		content := cloneContent(ov.Content)
		for i, section := range content.Sections {
			content.Sections[i] = model.Section{Heading: SanitizeText(section.Heading), Body: SanitizeBody(section.Body)}
		}
		for i, faq := range content.FAQ {
			content.FAQ[i] = model.FAQ{Question: SanitizeText(faq.Question), Answer: SanitizeBody(faq.Answer)}
		}
		out.Content = content
	}
	out.Inputs = sanitizeFields(ov.Inputs)
	out.Outputs = sanitizeFields(ov.Outputs)
	return out
}

func sanitizeList(values []string) []string {
	var out []string
	for _, v := range values {
		if cleaned := SanitizeText(v); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

func sanitizeFields(fields map[string]FieldOverride) map[string]FieldOverride {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]FieldOverride, len(fields))
	for id, f := range fields {
		out[id] = FieldOverride{
			Label:       SanitizeText(f.Label),
			Placeholder: SanitizeText(f.Placeholder),
			HelpText:    SanitizeText(f.HelpText),
		}
	}
	return out
}
