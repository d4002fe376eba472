// Package errs provides the error taxonomy shared by the orders service.
//
// Each error type follows one pattern: a sentinel (ErrObjectNotFound, ErrValidation, ...),
// a struct carrying the details, constructors, and an Unwrap that returns the sentinel so
// callers classify failures with errors.Is and inspect details with errors.As.
//
// The HTTP adapter maps the sentinels onto status codes:
//   - ErrValidation, ErrValueIsRequired, ErrValueIsInvalid, ErrProcessing: 400
//   - ErrObjectNotFound: 404
//   - ErrConflict: 409
package errs
