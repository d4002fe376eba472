// Package shipment models the physical dispatch of order lines.
//
// A Shipment references its order by id only; it owns its items. Under the
// ship-complete workflow an order has at most one shipment, which is enforced
// by the application layer before a Shipment is created.
package shipment
