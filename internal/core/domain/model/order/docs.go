// Package order provides the Order aggregate of the storefront: its lifecycle status,
// its line items and the internal notes attached to it.
//
// Key business rules:
//   - an order belongs to exactly one customer and one store
//   - status follows Pending -> Processing -> Complete, with Cancelled reachable
//     from Pending and Processing; Complete and Cancelled are final
//   - partial updates go through Patch, which only touches fields the client supplied
//   - deleted orders are kept (soft delete) and hidden from queries
package order
