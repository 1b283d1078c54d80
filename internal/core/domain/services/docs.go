// Package services holds the domain services that coordinate several
// aggregates in one transition:
//   - CapacityTracker links donations to collection centers and keeps the
//     center load in step with the linked quantities
//   - AccessPolicy decides whether a principal may act on a center, a
//     delivery or a donor
//   - DonationLifecycle applies staff decisions on donations (accept, reject,
//     assign to center, process)
//   - DeliveryLifecycle couples delivery transitions to the donation status
//     and to driver availability
//
// Services only mutate the aggregates they are given. Loading, locking and
// persisting them is the job of the command handlers.
package services
