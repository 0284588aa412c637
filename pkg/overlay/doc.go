// Package overlay loads editorial content (SEO meta, explanatory sections,
// FAQ, extra keywords and label overrides) that decorates Go authored
// calculator definitions. Overlays keep long-form copy out of the formula
// code and can be edited without recompiling: files are read from any fs.FS
// in JSON, YAML or TOML, or from a SQLite database (see sqlstore).
//
// Rich text bodies are sanitised with bluemonday before they reach templates.
package overlay
