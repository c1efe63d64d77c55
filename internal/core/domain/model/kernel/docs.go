// Package kernel holds the domain primitives shared by the logistics
// aggregates. Today that is UUID, the immutable identifier value object used
// for order identity.
package kernel
