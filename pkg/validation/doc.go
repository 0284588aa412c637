// Package validation statically checks a calculator catalog before release.
// Every problem is recorded; the pass never stops at the first issue, so one
// run surfaces the complete list of defects. Errors block release, warnings
// are informational.
package validation
