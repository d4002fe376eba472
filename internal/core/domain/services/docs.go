// Package services provides domain services that coordinate several aggregates
// of the ordering domain. It implements business steps that don't naturally
// belong to a single aggregate root.
//
// The package includes:
//   - ShipmentBuilder: turns the ship-enabled lines of an order into shipment items
//
// Domain services are pure: they never touch persistence, the application
// layer loads and saves the aggregates they work on.
package services
