// Package http implements the HTTP transport layer of the sync backend.
//
// It exposes route wiring, request handlers, and middleware for the sync
// API. Cross-cutting concerns such as authentication, request tracing,
// access logging, and response compression are handled in this package
// before requests are delegated to the service layer.
package http
