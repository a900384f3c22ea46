// Package errs defines the error shapes the API returns to clients.
//
// Every failure that reaches the HTTP layer ends up as an *HTTPError:
// a stable machine code, a message, the status, and for validation
// failures one FieldError per offending field.
package errs
