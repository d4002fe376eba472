// Package kernel holds the value objects shared by every aggregate of the orders domain:
// identifiers (UUID) and shipping weights (Weight).
//
// Both are immutable. Their zero values are invalid and rejected by Validate, so an
// identifier that was never assigned cannot reach a repository.
package kernel
