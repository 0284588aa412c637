package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-calckit/pkg/compute"
)

// ErrorMapping splits the problems of an evaluation into per-input messages
// and page level messages, already localised.
type ErrorMapping struct {
	Fields map[string]string
	Form   []string
}

// Empty reports whether there is nothing to show.
func (m ErrorMapping) Empty() bool {
	return len(m.Fields) == 0 && len(m.Form) == 0
}

// MapEvaluationErrors localises the input errors of eval. Invalid results
// whose message is not the generic "fix inputs" notice are surfaced at page
// level once each, in output order.
func MapEvaluationErrors(eval *compute.Evaluation, l Localizer) ErrorMapping {
	var mapping ErrorMapping
	if eval == nil {
		return mapping
	}

	if len(eval.Errors) > 0 {
		mapping.Fields = make(map[string]string, len(eval.Errors))
		for _, id := range sortedErrorKeys(eval.Errors) {
			e := eval.Errors[id]
			mapping.Fields[id] = l.Messagef(e.Message, e.Args...)
		}
		mapping.Form = append(mapping.Form, l.Message(compute.MsgFixInputs))
	}

	for _, out := range eval.Outputs {
		msg := out.Result.Message
		if out.Result.Valid() || msg == "" || msg == compute.MsgFixInputs {
			continue
		}
		mapping.Form = append(mapping.Form, l.Message(msg))
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortedErrorKeys(errs map[string]compute.InputError) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
