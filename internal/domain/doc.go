// Package domain holds the service's value types. It has no dependencies on
// transport or configuration packages.
package domain
