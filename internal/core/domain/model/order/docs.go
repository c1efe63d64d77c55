// Package order implements the Order aggregate of the logistics service: a
// set of line items that is placed once and then either approved or
// cancelled.
//
// The package includes:
//   - Order: the aggregate root, built with NewOrder or RestoreOrder
//   - Item: the immutable line item value object
//   - Status: the Pending -> Approved | Cancelled state machine
//   - Snapshot: a detached read model handed to callers
//   - Event: facts recorded on placement and on every accepted transition
//
// Key business rules:
//   - an order has at least one item, and its items never change
//   - only a Pending order can be approved or cancelled
//   - Approved and Cancelled are terminal; repeating a transition is an error
package order
