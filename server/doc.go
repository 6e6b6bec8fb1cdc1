// Package server exposes the containers of a registry over HTTP for
// inspection. It runs Gin behind an h2c handler so HTTP/2 cleartext clients
// are served on the same port.
//
// # Routes
//
//   - GET /health: service health with one component per container
//   - GET /version: build information
//   - GET /containers: ids of the registered containers
//   - GET /containers/:id: humanized snapshot of a container
//   - GET /containers/:id/entries/:name: property value or resolved object;
//     query parameters are passed to factories as args
//
// Failures are rendered as application/problem+json documents.
package server
