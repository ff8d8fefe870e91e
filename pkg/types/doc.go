// Package types defines the Store and table interfaces, the entity types of
// the cooperative ledger, and the error kinds returned by every backend.
//
// Entities validate themselves (Validate) before a backend persists them;
// backends add the checks that need the store, such as uniqueness and
// reference resolution.
package types
