// Package orchestrator wires the catalog → localisation → decorators →
// compute → theme → renderer pipeline behind a single entry point used by the
// HTTP server and the CLI.
package orchestrator
