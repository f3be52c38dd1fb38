// Package bootstrap loads secrets mounted by an external secret manager.
//
// The file format is the shell-export style written by the Vault agent injector:
// one `export KEY="VALUE"` per line. Everything else in the file is ignored.
package bootstrap
