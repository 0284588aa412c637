// Package i18n loads message catalogs, negotiates the page locale and formats
// numbers the way the visitor's locale expects.
//
// Catalog files are YAML documents named after a BCP 47 tag (en.yaml,
// es.yaml, pt-BR.yaml). Nested maps are flattened into dotted keys such as
// calculators.square-area.title. The top-level messages map is special: its
// keys are the English message formats emitted by the compute package and
// are registered verbatim so they can carry printf verbs.
package i18n
