// Package model defines the declarative calculator definition consumed by the
// registry, validator, compute engine and renderers. Types live in
// internal/model and are re-exported here as aliases.
//
// A Definition holds ordered InputFields and OutputFields. Each output carries
// a pure CalculateFunc receiving the coerced input Values and the Results of
// earlier outputs. Results are tri-state: the zero Result is pending and
// renders as the neutral value, StatusValid carries a number or text, and
// StatusInvalid carries a message for the user.
package model
