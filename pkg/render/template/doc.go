// Package template defines the engine seam HTML renderers depend on. The
// concrete pongo2 engine lives in the gotemplate subpackage.
package template
