// Package openapi describes the calculator HTTP API as an OpenAPI 3 document
// built with kin-openapi. Every calculator gets its own evaluate operation
// whose request schema mirrors the calculator inputs.
package openapi
