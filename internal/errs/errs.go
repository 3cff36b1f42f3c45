// Package errs defines the error shapes the catalog returns to its callers.
//
// Every failure that leaves the service layer is either an *HTTPError (validation,
// not found, bad request) or a raw storage error that the global error handler
// converts through sqlerr. Field-level errors make validation failures renderable
// next to the form input that caused them.
package errs
