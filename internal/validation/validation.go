// Package validation turns incoming requests into validated payloads.
//
// Request bodies are decoded into a raw mapping and handed to the schema
// package, which applies defaults and field rules. Path and query parameters
// are bound by Echo and checked with go-playground/validator tags. Either
// way, failures come back as a 400 *errs.HTTPError listing every offending
// field.
package validation
