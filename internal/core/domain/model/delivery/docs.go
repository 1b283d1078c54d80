// Package delivery implements the Delivery aggregate, the logistics record that
// carries a collected donation from its center to a recipient.
//
//	ASSIGNED ──pickup──> PICKED_UP ──in transit──> IN_TRANSIT ──complete──> DELIVERED
//	    │                    │  └──────────────complete───────────────────────^
//	    └────────────────────┴──────────cancel──────────> CANCELLED <──cancel─ IN_TRANSIT
//
// DELIVERED and CANCELLED are terminal. A delivery in a non-terminal status is
// "active"; a donation has at most one active delivery.
package delivery
