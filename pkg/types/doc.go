// Package types defines the backend-agnostic persistence contracts for
// reflected entities: the Config used to attach a backend, the Backend and
// Store interfaces, and the standard errors they return.
package types
