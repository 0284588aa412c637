package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/goliatone/go-calckit/pkg/calculators"
	"github.com/goliatone/go-calckit/pkg/i18n"
	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/registry"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	bundle, err := i18n.Load(i18n.EmbeddedFS())
	require.NoError(t, err)
	srv, err := New(calculators.Registry(), bundle, nil)
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, h http.Handler, method, target string, body io.Reader, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, len(calculators.All()), body["calculators"])
}

func TestRequestIDIsEchoed(t *testing.T) {
	h := newTestServer(t).Handler()
	id := "3f1c2b9e-8d5a-4c1e-9f7a-2b6d8e0c4a11"

	rec := do(t, h, http.MethodGet, "/healthz", nil, map[string]string{RequestIDHeader: id})
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
}

func TestRootRedirectsByAcceptLanguage(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/", nil, map[string]string{"Accept-Language": "es-ES,es;q=0.9"})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/es/", rec.Header().Get("Location"))

	rec = do(t, h, http.MethodGet, "/?q=circle", nil, nil)
	assert.Equal(t, "/en/?q=circle", rec.Header().Get("Location"))
}

func TestIndexPage(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/en/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `href="/en/square-area"`)
}

func TestUnsupportedLocaleRedirects(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/fr/square-area?side=2", nil, nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/en/square-area?side=2", rec.Header().Get("Location"))
}

func TestCalculatorPagePost(t *testing.T) {
	h := newTestServer(t).Handler()
	form := url.Values{"side": {"5"}}

	rec := do(t, h, http.MethodPost, "/en/square-area", strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ">25</dd>")
}

func TestCalculatorPageShowsErrorsOnlyWhenSubmitted(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/en/square-area?side=-1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Value must be at least 0")

	form := url.Values{"side": {"-1"}}
	rec = do(t, h, http.MethodPost, "/en/square-area", strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	assert.Contains(t, rec.Body.String(), "Value must be at least 0")
}

func TestCalculatorPageCheckboxLastValueWins(t *testing.T) {
	h := newTestServer(t).Handler()
	headers := map[string]string{"Content-Type": "application/x-www-form-urlencoded"}
	checked := `name="inclusive" value="true" checked`

	form := url.Values{"amount": {"100"}, "inclusive": {"false", "true"}}
	rec := do(t, h, http.MethodPost, "/en/sales-tax", strings.NewReader(form.Encode()), headers)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), checked)

	form = url.Values{"amount": {"100"}, "inclusive": {"false"}}
	rec = do(t, h, http.MethodPost, "/en/sales-tax", strings.NewReader(form.Encode()), headers)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), checked)
}

func TestCalculatorPageNotFound(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/en/warp-drive", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestUnknownThemeIsBadRequest(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/en/square-area?theme=neon", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStaticStylesheet(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/static/calckit.css", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "--brand")
}

func TestAPIList(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/api/calculators?locale=es", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, len(calculators.All()))
	assert.Equal(t, "/es/"+items[0].ID, items[0].URL)
}

func TestAPIDefinition(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/api/calculators/square-area", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var def model.Definition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &def))
	assert.Equal(t, "square-area", def.ID)
	require.NotEmpty(t, def.Inputs)
	assert.Equal(t, "side", def.Inputs[0].ID)

	rec = do(t, h, http.MethodGet, "/api/calculators/nope", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var apiErr map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.NotEmpty(t, apiErr["request_id"])
}

func TestAPISearch(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/api/search?q=circle", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.NotEmpty(t, items)
	assert.LessOrEqual(t, len(items), registry.DefaultSearchLimit)

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	assert.Contains(t, ids, "circle-area")

	rec = do(t, h, http.MethodGet, "/api/search?q=circle&limit=zero", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type evalResponse struct {
	Calculator string `json:"calculator"`
	Errors     map[string]struct {
		Message string `json:"message"`
	} `json:"errors"`
	Outputs []struct {
		ID      string `json:"id"`
		Display string `json:"display"`
		Result  struct {
			Status string `json:"status"`
			Value  any    `json:"value"`
		} `json:"result"`
	} `json:"outputs"`
}

func TestAPIEvaluate(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodPost, "/api/calculators/circle-area/evaluate", strings.NewReader(`{"radius": 10}`), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body evalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "circle-area", body.Calculator)
	require.NotEmpty(t, body.Outputs)
	assert.Equal(t, "area", body.Outputs[0].ID)
	assert.Equal(t, "valid", body.Outputs[0].Result.Status)
	assert.InDelta(t, 314.16, body.Outputs[0].Result.Value, 1e-9)
}

func TestAPIEvaluateInputErrors(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodPost, "/api/calculators/square-area/evaluate?locale=es", strings.NewReader(`{"side": "-3"}`), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body evalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body.Errors, "side")
	for _, out := range body.Outputs {
		assert.NotEqual(t, "valid", out.Result.Status)
	}
}

func TestAPIEvaluateBadBody(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodPost, "/api/calculators/square-area/evaluate", strings.NewReader(`{"side": [1]}`), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/calculators/square-area/evaluate", strings.NewReader(`not json`), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOpenAPIDocument(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := do(t, h, http.MethodGet, "/openapi.json", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Contains(t, doc.Paths, "/api/calculators/square-area/evaluate")
}

func TestSwapReplacesCatalog(t *testing.T) {
	srv := newTestServer(t)
	h := srv.Handler()

	def, ok := calculators.Registry().Get("percentage")
	require.True(t, ok)
	require.NoError(t, srv.Swap(context.Background(), registry.FromDefinitions(def)))

	rec := do(t, h, http.MethodGet, "/api/calculators", nil, nil)
	var items []summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "percentage", items[0].ID)

	rec = do(t, h, http.MethodGet, "/en/square-area", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln, time.Second) }()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestNewRejectsNil(t *testing.T) {
	bundle, err := i18n.Load(i18n.EmbeddedFS())
	require.NoError(t, err)
	_, err = New(nil, bundle, nil)
	require.Error(t, err)
	_, err = New(calculators.Registry(), nil, nil)
	require.Error(t, err)
}
