// Package order models the purchase order lifecycle as a guarded finite state machine.
//
// Two engines implement the same Lifecycle contract:
//   - Order runs the transitions as direct conditional branches. Confirming an
//     unpaid Pending order always fails.
//   - Facade declares the transitions as a guarded table executed by the
//     statemachine engine. Unpaid confirmations are retried twice and the
//     third one cancels the order.
//
// The two policies intentionally differ for unpaid confirmations and are kept
// as separate, independently tested strategies.
//
// Lifecycle:
//
//	           Confirm [paid]
//	Pending ─────────────────> Processing ──Confirm──> Completed
//	   │ ↺ Confirm [unpaid, <2]      │
//	   │                             │ Cancel
//	   ├──Cancel─────────────────────┴──────────────> Canceled
//	   └──Confirm [unpaid, ≥2] (Facade only) ───────> Canceled
//
// Completed and Canceled are terminal: every trigger fails with
// errs.ErrInvalidTransition and leaves the order unchanged.
//
// Orders are not safe for concurrent use. Callers serialize access per order.
package order
