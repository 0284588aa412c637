// Package testsupport collects helpers shared by package tests: golden file
// assertions, catalog fixtures and output capture.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"

	"github.com/goliatone/go-calckit/pkg/calculators"
	"github.com/goliatone/go-calckit/pkg/model"
	"github.com/goliatone/go-calckit/pkg/registry"
)

// GoldenDir is the fixture directory, relative to the package under test.
const GoldenDir = "testdata/golden"

// Golden returns a goldie instance reading testdata/golden/<name>.golden.
// Run the tests with -update to rewrite the fixtures.
func Golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir(GoldenDir),
		goldie.WithNameSuffix(".golden"),
	)
}

// AssertGolden compares data against the named golden file.
func AssertGolden(t *testing.T, name string, data []byte) {
	t.Helper()
	Golden(t).Assert(t, name, data)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// Catalog returns a registry over the built-in calculators.
func Catalog(t *testing.T) *registry.Registry {
	t.Helper()
	reg := calculators.Registry()
	if reg.Len() == 0 {
		t.Fatalf("built-in catalog is empty")
	}
	return reg
}

// MustDefinition looks up id in reg or fails the test.
func MustDefinition(t *testing.T, reg *registry.Registry, id string) model.Definition {
	t.Helper()
	def, ok := reg.Get(id)
	if !ok {
		t.Fatalf("calculator %q not found", id)
	}
	return def
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}
