// Package http implements the REST and Server-Sent Events surface of the
// lending records server.
//
// Routes are wired on chi. Requests pass through trace id, access logging and
// gzip middleware, and everything under /api/records requires a bearer token.
// Handlers decode the payload, call the service layer and map service and
// store sentinels onto status codes with the messages in package app.
package http
