// Package donation implements the Donation aggregate and its lifecycle.
//
// A donation is pledged by a donor, optionally linked to a collection center,
// accepted or rejected by the center's staff and then carried to a recipient
// by a delivery. Its status is kept in lockstep with the status of the
// delivery that currently holds it:
//
//	PENDING ──accept──> COLLECTED ──create delivery──> ASSIGNED ──pickup──> IN_TRANSIT ──complete──> DELIVERED ──process──> PROCESSED
//	   │                    ^                              │                     │
//	   └──reject──> REJECTED└─────────── cancel ───────────┴─────────────────────┘
//
// Deleting a delivery resets the donation to COLLECTED from any status that
// can hold a delivery.
package donation
