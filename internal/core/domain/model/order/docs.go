// Package order contains the ProductionOrder aggregate: line items,
// append-only delivery history, and the issue arena with chained
// resolutions. The aggregate is the consistency boundary for fulfillment
// state; its status is always derived, never assigned, and its version
// counter backs optimistic concurrency at the repository.
package order
