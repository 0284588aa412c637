package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-calckit/pkg/renderers/tui"
)

// scriptedDriver answers text prompts in order and picks the default
// everywhere else.
type scriptedDriver struct {
	answers []string
	asked   []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	d.asked = append(d.asked, cfg.Message)
	if len(d.answers) == 0 {
		if cfg.Default != "" {
			return cfg.Default, nil
		}
		return "", errors.New("no answer scripted")
	}
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	return cfg.Default, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func (d *scriptedDriver) TextArea(ctx context.Context, cfg tui.TextAreaConfig) (string, error) {
	return d.Input(ctx, tui.InputConfig{Message: cfg.Message, Default: cfg.Default})
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

// execute runs the CLI in an empty working directory so no local config
// file leaks into the test.
func execute(t *testing.T, driver tui.PromptDriver, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out, errOut bytes.Buffer
	a := newApp(strings.NewReader(""), &out, &errOut)
	a.driver = driver
	cmd := a.command()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestValidateText(t *testing.T) {
	out, _, err := execute(t, nil, "validate", "--no-warnings")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog")
	assert.Contains(t, out, "OK")
}

func TestValidateJSON(t *testing.T) {
	out, _, err := execute(t, nil, "validate", "--format", "json", "--no-warnings")
	require.NoError(t, err)

	var report struct {
		OK    bool `json:"ok"`
		Stats struct {
			Total  int `json:"total"`
			Unique int `json:"unique"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.OK)
	assert.Equal(t, report.Stats.Total, report.Stats.Unique)
}

func TestValidateUnknownFormat(t *testing.T) {
	_, _, err := execute(t, nil, "validate", "--format", "xml")
	require.Error(t, err)
}

func TestList(t *testing.T) {
	out, _, err := execute(t, nil, "list", "--category", "geometry")
	require.NoError(t, err)
	assert.Contains(t, out, "square-area")
	assert.Contains(t, out, "circle-area")
	assert.NotContains(t, out, "percentage")

	_, _, err = execute(t, nil, "list", "--category", "astrology")
	require.Error(t, err)
}

func TestSearch(t *testing.T) {
	out, _, err := execute(t, nil, "search", "circle")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.LessOrEqual(t, len(lines), 5)
	assert.Contains(t, out, "circle-area")

	out, _, err = execute(t, nil, "search", "zzzz-nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "no calculators match")
}

func TestShowRaw(t *testing.T) {
	out, _, err := execute(t, nil, "show", "square-area", "--raw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# "))
	assert.Contains(t, out, "`square-area`")
	assert.Contains(t, out, "## Inputs")
}

func TestShowStyled(t *testing.T) {
	out, _, err := execute(t, nil, "show", "circle-area", "--style", "notty", "--locale", "es")
	require.NoError(t, err)
	assert.Contains(t, out, "circle-area")

	_, _, err = execute(t, nil, "show", "warp-drive", "--raw")
	require.Error(t, err)
}

func TestRunJSON(t *testing.T) {
	driver := &scriptedDriver{answers: []string{"5"}}
	out, _, err := execute(t, driver, "run", "square-area", "--format", "json")
	require.NoError(t, err)

	var payload struct {
		Calculator string `json:"calculator"`
		Results    []struct {
			ID     string  `json:"id"`
			Status string  `json:"status"`
			Value  float64 `json:"value"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "square-area", payload.Calculator)
	require.NotEmpty(t, payload.Results)
	assert.Equal(t, "valid", payload.Results[0].Status)
	assert.InDelta(t, 25, payload.Results[0].Value, 1e-9)
}

func TestRunPrefill(t *testing.T) {
	// no scripted answers: the prompt accepts the prefilled default
	driver := &scriptedDriver{}
	out, _, err := execute(t, driver, "run", "cube-surface-area", "--format", "form", "--set", "edge=5")
	require.NoError(t, err)
	assert.Contains(t, out, "edge=5")
	require.Len(t, driver.asked, 1)
}

func TestRunUnknownFormat(t *testing.T) {
	_, _, err := execute(t, &scriptedDriver{}, "run", "square-area", "--format", "xml")
	require.Error(t, err)
}

func TestOpenAPI(t *testing.T) {
	out, _, err := execute(t, nil, "openapi")
	require.NoError(t, err)
	var doc struct {
		OpenAPI string         `json:"openapi"`
		Paths   map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.True(t, strings.HasPrefix(doc.OpenAPI, "3."))
	assert.Contains(t, doc.Paths, "/api/calculators/circle-area/evaluate")

	out, _, err = execute(t, nil, "openapi", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "openapi: 3.")
}

func TestOverlayImportExport(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "geo.yaml"),
		[]byte("calculators:\n  square-area:\n    title: Squares\n"), 0o644))
	db := filepath.Join(t.TempDir(), "overlays.db")

	out, _, err := execute(t, nil, "overlay", "import", src, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 overlays")

	out, _, err = execute(t, nil, "overlay", "export", "--db", db, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"square-area"`)
	assert.Contains(t, out, "Squares")

	out, _, err = execute(t, nil, "--overlay-db", db, "search", "squares")
	require.NoError(t, err)
	assert.Contains(t, out, "square-area")
}

func TestOverlayExportEmbedded(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "overlays.toml")

	out, _, err := execute(t, nil, "overlay", "export", "--output", target)
	require.NoError(t, err)
	assert.Contains(t, out, target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[calculators.")
}

func TestOverlayImportRequiresDB(t *testing.T) {
	_, _, err := execute(t, nil, "overlay", "import", t.TempDir())
	require.Error(t, err)
}
