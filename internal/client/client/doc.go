// Package client talks to the agency backend REST API.
//
// # Overview
//
// The package provides:
//  1. Transport-agnostic contracts: AuthAPI for the /api/auth/* endpoints,
//     ContentAPI for read-only dashboard content, and Client combining both.
//  2. HTTPClient, the concrete implementation over net/http. It prefixes
//     endpoints with the configured base URL, attaches the bearer token from a
//     TokenSource, tags each request with an X-Request-ID, decodes the
//     {status, message, token, data} envelope and classifies failures.
//
// # Error Handling
//
// Failures are matched with errors.Is against the sentinel kinds
// ErrUnauthorized, ErrUnavailable, ErrTimeout, ErrRejected and
// ErrMalformedResponse. Server-side rejections are *APIError values carrying
// the HTTP status and the server's message; their Error() is the message,
// suitable for showing to the user.
package client
