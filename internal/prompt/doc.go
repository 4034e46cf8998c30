// Package prompt provides the prompt compiler and the read-only template
// lookup boundary the pipeline consumes. Templates live in an external
// store; the compiler substitutes {name} placeholders on a best-effort
// basis, leaving unresolved placeholders literal.
package prompt
