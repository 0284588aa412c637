package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goliatone/go-calckit/pkg/i18n"
	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/orchestrator"
	"github.com/goliatone/go-calckit/pkg/render"
	"github.com/goliatone/go-calckit/pkg/renderers/html"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap := s.state.Load()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"calculators": snap.catalog.Len(),
		"loaded_at":   snap.loaded.UTC(),
	})
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(s.state.Load().openapi)
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFileFS(w, r, html.AssetsFS(), r.PathValue("file"))
}

type summary struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Category    model.Category `json:"category"`
	URL         string         `json:"url"`
}

func summarize(defs []model.Definition, locale string) []summary {
	out := make([]summary, 0, len(defs))
	for _, def := range defs {
		out = append(out, summary{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Category:    def.Category,
			URL:         render.CalculatorPath("", locale, def.ID),
		})
	}
	return out
}

func (s *Server) apiLocale(r *http.Request) string {
	return s.bundle.Match(r.URL.Query().Get("locale"), r.Header.Get("Accept-Language"))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	locale := s.apiLocale(r)
	defs, err := s.orch.List(r.Context(), locale)
	if err != nil {
		s.apiError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, summarize(defs, locale))
}

func (s *Server) handleDefinition(w http.ResponseWriter, r *http.Request) {
	def, err := s.orch.Definition(r.Context(), r.PathValue("id"), s.apiLocale(r))
	if err != nil {
		s.apiError(w, r, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, def)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.apiError(w, r, http.StatusBadRequest, fmt.Errorf("limit %q must be a positive integer", raw))
			return
		}
		limit = n
	}
	locale := s.apiLocale(r)
	defs, err := s.orch.Search(r.Context(), query, limit, locale)
	if err != nil {
		s.apiError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, summarize(defs, locale))
}

type inputErrorPayload struct {
	Message string `json:"message"`
}

type outputPayload struct {
	ID      string       `json:"id"`
	Label   string       `json:"label"`
	Display string       `json:"display,omitempty"`
	Unit    string       `json:"unit,omitempty"`
	Result  model.Result `json:"result"`
}

type evaluationPayload struct {
	Calculator string                       `json:"calculator"`
	Locale     string                       `json:"locale"`
	Visible    map[string]bool              `json:"visible,omitempty"`
	Errors     map[string]inputErrorPayload `json:"errors,omitempty"`
	Outputs    []outputPayload              `json:"outputs"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	raw, err := decodeInputs(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.apiError(w, r, http.StatusBadRequest, err)
		return
	}
	locale := s.apiLocale(r)
	outcome, err := s.orch.Evaluate(r.Context(), orchestrator.Request{
		CalculatorID: r.PathValue("id"),
		Locale:       locale,
		Raw:          raw,
		Submitted:    true,
	})
	if err != nil {
		s.apiError(w, r, statusFor(err), err)
		return
	}

	opts, _ := s.orch.RenderOptions(locale, "", "")
	l := render.NewLocalizer(opts)
	eval := outcome.Evaluation
	out := evaluationPayload{
		Calculator: outcome.Definition.ID,
		Locale:     l.Locale(),
		Visible:    eval.Visible,
		Outputs:    make([]outputPayload, 0, len(eval.Outputs)),
	}
	mapping := render.MapEvaluationErrors(&eval, l)
	if len(mapping.Fields) > 0 {
		out.Errors = make(map[string]inputErrorPayload, len(mapping.Fields))
		for id, msg := range mapping.Fields {
			out.Errors[id] = inputErrorPayload{Message: msg}
		}
	}
	for _, o := range eval.Outputs {
		result := o.Result
		if result.Message != "" {
			result.Message = l.Message(result.Message)
		}
		out.Outputs = append(out.Outputs, outputPayload{
			ID:      o.Key,
			Label:   o.Label,
			Display: i18n.FormatResult(l.Locale(), o.Output, o.Result),
			Unit:    o.Output.Unit,
			Result:  result,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// decodeInputs accepts a flat JSON object. Numbers keep their literal text so
// coercion sees exactly what the client sent.
func decodeInputs(body io.Reader) (map[string]string, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("decode body: %w", err)
	}
	raw := make(map[string]string, len(payload))
	for key, value := range payload {
		switch v := value.(type) {
		case nil:
		case string:
			raw[key] = v
		case json.Number:
			raw[key] = v.String()
		case bool:
			raw[key] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("input %q must be a string, number or boolean", key)
		}
	}
	return raw, nil
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	locale := s.bundle.Match(r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	target := render.IndexPath("", locale)
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		target = render.SearchPath("", locale, q)
	}
	w.Header().Set("Vary", "Accept-Language")
	http.Redirect(w, r, target, http.StatusFound)
}

// pageLocale resolves the {locale} path segment. Unsupported locales are
// redirected to the closest supported one.
func (s *Server) pageLocale(w http.ResponseWriter, r *http.Request, rest string) (string, bool) {
	locale := r.PathValue("locale")
	if s.bundle.Supports(locale) {
		return locale, true
	}
	best := s.bundle.Match(locale, r.Header.Get("Accept-Language"))
	target := render.IndexPath("", best) + rest
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	http.Redirect(w, r, target, http.StatusFound)
	return "", false
}

func (s *Server) indexRequest(r *http.Request, locale string) orchestrator.IndexRequest {
	query := r.URL.Query()
	return orchestrator.IndexRequest{
		Locale:       locale,
		Query:        strings.TrimSpace(query.Get("q")),
		ThemeName:    query.Get("theme"),
		ThemeVariant: query.Get("variant"),
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	locale, ok := s.pageLocale(w, r, "")
	if !ok {
		return
	}
	out, contentType, err := s.orch.Index(r.Context(), s.indexRequest(r, locale))
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	writeBody(w, http.StatusOK, contentType, out)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	locale, ok := s.pageLocale(w, r, id)
	if !ok {
		return
	}

	req := orchestrator.Request{
		CalculatorID: id,
		Locale:       locale,
		ThemeName:    r.URL.Query().Get("theme"),
		ThemeVariant: r.URL.Query().Get("variant"),
	}
	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form payload", http.StatusBadRequest)
			return
		}
		req.Raw = formValues(r)
		req.Submitted = true
	} else if len(r.URL.Query()) > 0 {
		// GET links may prefill inputs, e.g. /en/square-area?side=5
		req.Raw = formValues(r)
	}

	out, contentType, err := s.orch.Generate(r.Context(), req)
	if errors.Is(err, orchestrator.ErrNotFound) {
		page, pageType, nfErr := s.orch.NotFound(r.Context(), id, s.indexRequest(r, locale))
		if nfErr != nil {
			s.pageError(w, r, nfErr)
			return
		}
		writeBody(w, http.StatusNotFound, pageType, page)
		return
	}
	if err != nil {
		s.pageError(w, r, err)
		return
	}
	writeBody(w, http.StatusOK, contentType, out)
}

func formValues(r *http.Request) map[string]string {
	raw := make(map[string]string, len(r.Form))
	values := r.Form
	if values == nil {
		values = r.URL.Query()
	}
	for key, list := range values {
		if key == "theme" || key == "variant" || len(list) == 0 {
			continue
		}
		raw[key] = list[len(list)-1]
	}
	return raw
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, orchestrator.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, render.ErrUnknownTheme), errors.Is(err, render.ErrUnknownVariant):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) apiError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("request_id", RequestID(r.Context())).Msg("api error")
	}
	writeJSON(w, status, map[string]string{
		"error":      err.Error(),
		"request_id": RequestID(r.Context()),
	})
}

func (s *Server) pageError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("request_id", RequestID(r.Context())).Msg("page error")
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, fmt.Sprintf("encode response: %v", err), http.StatusInternalServerError)
		return
	}
	writeBody(w, status, "application/json", data)
}

func writeBody(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
