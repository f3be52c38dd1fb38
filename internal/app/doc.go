// Package app wires configuration, logging, metrics and the HTTP server into
// a runnable process. Both binaries under cmd/ delegate to Run.
package app
